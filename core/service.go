package core

import (
	"context"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// RepositoryCredentialVerifier verifies credentials against the user
// repository using bcrypt hash comparison.
type RepositoryCredentialVerifier struct {
	users UserRepository
}

func NewRepositoryCredentialVerifier(users UserRepository) *RepositoryCredentialVerifier {
	return &RepositoryCredentialVerifier{users: users}
}

// Verify returns the stored identity when username/password match. The
// returned errors wrap ErrInvalidCredentials; the distinct kinds exist for
// logging at the authenticator boundary only.
func (s *RepositoryCredentialVerifier) Verify(ctx context.Context, username, password string) (User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return User{}, errUnknownUser
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil || u == nil {
		return User{}, errUnknownUser
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, errBadPassword
	}
	return User{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
	}, nil
}

// Authenticator exchanges verified credentials for a signed access token.
// It is the only producer of tokens in the process.
type Authenticator struct {
	verifier CredentialVerifier
	codec    *TokenCodec
}

func NewAuthenticator(verifier CredentialVerifier, codec *TokenCodec) *Authenticator {
	return &Authenticator{verifier: verifier, codec: codec}
}

// Authenticate mints a token for valid credentials. Every failure collapses
// into ErrInvalidCredentials before it leaves this method; the real cause
// goes to the log only.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := a.verifier.Verify(ctx, username, password)
	if err != nil {
		log.Printf("authentication rejected for %q: %v", username, err)
		return "", ErrInvalidCredentials
	}
	return a.codec.Mint(user.Username)
}
