package core

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// BearerAuthMiddleware is the per-request authentication gate, run before
// every handler. Public routes pass through untouched. For the rest it
// extracts the bearer token, verifies it, resolves the full identity from
// the user store, and attaches it to the request context. On any failure it
// attaches nothing and forwards; rejection belongs to the policy layer.
func BearerAuthMiddleware(codec *TokenCodec, users UserRepository, policy *RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.IsPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		subject, err := codec.Verify(token)
		if err != nil {
			log.Printf("rejected token on %s: %v", c.Request.URL.Path, err)
			c.Next()
			return
		}

		u, err := users.FindByUsername(c.Request.Context(), subject)
		if err != nil || u == nil {
			log.Printf("token subject %q not in user store", subject)
			c.Next()
			return
		}

		c.Set(identityKey, User{
			ID:        u.ID,
			Username:  u.Username,
			Roles:     u.Roles,
			CreatedAt: u.CreatedAt,
		})
		c.Next()
	}
}

// AccessPolicyMiddleware enforces the route policy right after the gate:
// protected routes with no resolved identity are answered 403 and the
// handler never runs.
func AccessPolicyMiddleware(policy *RoutePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.Requirement(c.Request.URL.Path) == Public {
			c.Next()
			return
		}
		if _, ok := CurrentUser(c); !ok {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity the gate attached to this request, if any.
func CurrentUser(c *gin.Context) (User, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
