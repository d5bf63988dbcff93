package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]UserRecord
	finds int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]UserRecord{}}
}

func (f *fakeUserRepo) add(t *testing.T, username, password string, roles ...string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	f.users[username] = UserRecord{
		ID:           int64(len(f.users) + 1),
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    time.Now(),
	}
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*UserRecord, error) {
	f.finds++
	u, ok := f.users[username]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return &u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, username, passwordHash string, roles ...string) (int64, error) {
	id := int64(len(f.users) + 1)
	f.users[username] = UserRecord{ID: id, Username: username, PasswordHash: passwordHash, Roles: roles}
	return id, nil
}

func (f *fakeUserRepo) HasUsers(ctx context.Context) (bool, error) {
	return len(f.users) > 0, nil
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(t, "alice", "s3cret", "admin")

	codec := NewTokenCodec("test-secret", 10*time.Hour)
	authn := NewAuthenticator(NewRepositoryCredentialVerifier(repo), codec)

	token, err := authn.Authenticate(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	subject, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify minted token: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("subject mismatch: got %q", subject)
	}
}

// Unknown usernames and wrong passwords must be indistinguishable to callers.
func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(t, "alice", "s3cret")

	codec := NewTokenCodec("test-secret", 10*time.Hour)
	authn := NewAuthenticator(NewRepositoryCredentialVerifier(repo), codec)

	_, errUnknown := authn.Authenticate(context.Background(), "nobody", "whatever")
	_, errWrongPw := authn.Authenticate(context.Background(), "alice", "wrong")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("failure shapes differ: %q vs %q", errUnknown, errWrongPw)
	}
}

func TestVerifierEmptyInputs(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(t, "alice", "s3cret")

	v := NewRepositoryCredentialVerifier(repo)
	if _, err := v.Verify(context.Background(), "", "s3cret"); err == nil {
		t.Fatal("empty username should fail")
	}
	if _, err := v.Verify(context.Background(), "alice", ""); err == nil {
		t.Fatal("empty password should fail")
	}
	if repo.finds != 0 {
		t.Fatalf("empty inputs must not hit the store, got %d lookups", repo.finds)
	}
}
