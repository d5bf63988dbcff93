package core

import (
	"context"
	"errors"
	"time"
)

// User represents an authenticated principal returned to handlers.
type User struct {
	ID        int64
	Username  string
	Roles     []string
	CreatedAt time.Time
}

var (
	// ErrInvalidCredentials is the single outcome for every authentication
	// failure. Callers cannot tell an unknown user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Internal failure kinds, kept distinct for logging only.
	errUnknownUser = errors.New("unknown user")
	errBadPassword = errors.New("password mismatch")
)

// CredentialVerifier checks a username/password pair against the user store.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (User, error)
}
