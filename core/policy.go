package core

import "strings"

// AccessRequirement is what a route demands from a request.
type AccessRequirement int

const (
	// Public routes are reachable without any token.
	Public AccessRequirement = iota
	// RequiresIdentity routes demand a resolved identity on the request.
	RequiresIdentity
)

// RouteRule maps a path pattern to its access requirement. A pattern is
// either a literal path or a prefix followed by "/**".
type RouteRule struct {
	Pattern     string
	Requirement AccessRequirement
}

// RoutePolicy is the static access table evaluated once per request.
// An exact literal match wins over any wildcard; among wildcard matches the
// longest prefix wins; unmatched paths require an identity.
type RoutePolicy struct {
	rules []RouteRule
}

func NewRoutePolicy(rules []RouteRule) *RoutePolicy {
	return &RoutePolicy{rules: append([]RouteRule(nil), rules...)}
}

// Requirement resolves the access requirement for a request path.
func (p *RoutePolicy) Requirement(path string) AccessRequirement {
	bestLen := -1
	req := RequiresIdentity
	for _, r := range p.rules {
		if prefix, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				if len(prefix) > bestLen {
					bestLen = len(prefix)
					req = r.Requirement
				}
			}
			continue
		}
		if r.Pattern == path {
			return r.Requirement
		}
	}
	return req
}

// IsPublic reports whether path is reachable without a token.
func (p *RoutePolicy) IsPublic(path string) bool {
	return p.Requirement(path) == Public
}

// DefaultRouteRules lists the routes reachable without a token: the login
// endpoint, liveness, and the documentation surface. Everything else falls
// through to the requires-identity default.
func DefaultRouteRules() []RouteRule {
	return []RouteRule{
		{Pattern: "/authenticate", Requirement: Public},
		{Pattern: "/healthz", Requirement: Public},
		{Pattern: "/docs", Requirement: Public},
		{Pattern: "/docs/**", Requirement: Public},
		{Pattern: "/api/v1/**", Requirement: RequiresIdentity},
	}
}
