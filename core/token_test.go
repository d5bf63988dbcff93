package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClockCodec(secret string, ttl time.Duration, at time.Time) *TokenCodec {
	c := NewTokenCodec(secret, ttl)
	c.now = func() time.Time { return at }
	return c
}

func TestMintVerifyRoundTrip(t *testing.T) {
	for _, ttl := range []time.Duration{time.Minute, time.Hour, 10 * time.Hour} {
		c := NewTokenCodec("test-secret", ttl)
		for _, subject := range []string{"alice", "bob", "admin"} {
			token, err := c.Mint(subject)
			if err != nil {
				t.Fatalf("mint %s: %v", subject, err)
			}
			got, err := c.Verify(token)
			if err != nil {
				t.Fatalf("verify %s: %v", subject, err)
			}
			if got != subject {
				t.Fatalf("subject mismatch: got %q want %q", got, subject)
			}
		}
	}
}

func TestVerifyWithinLifetime(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	c := fixedClockCodec("test-secret", 10*time.Hour, t0)

	token, err := c.Mint("alice")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	c.now = func() time.Time { return t0.Add(time.Hour) }
	got, err := c.Verify(token)
	if err != nil {
		t.Fatalf("verify at t0+1h: %v", err)
	}
	if got != "alice" {
		t.Fatalf("subject mismatch: got %q", got)
	}
}

func TestVerifyExpired(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	c := fixedClockCodec("test-secret", 10*time.Hour, t0)

	token, err := c.Mint("alice")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	for _, at := range []time.Time{
		t0.Add(10 * time.Hour),             // exactly at expiry
		t0.Add(10*time.Hour + time.Second), // one second past
		t0.Add(24 * time.Hour),             // well past
	} {
		c.now = func() time.Time { return at }
		if _, err := c.Verify(token); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("verify at %v: got %v, want ErrTokenExpired", at, err)
		}
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	c := NewTokenCodec("test-secret", time.Hour)
	token, err := c.Mint("alice")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}

	sig := []byte(parts[2])
	if sig[10] == 'A' {
		sig[10] = 'B'
	} else {
		sig[10] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := c.Verify(tampered); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("tampered signature: got %v, want ErrTokenSignature", err)
	}
}

func TestVerifyPayloadSwap(t *testing.T) {
	c := NewTokenCodec("test-secret", time.Hour)
	tokenAlice, err := c.Mint("alice")
	if err != nil {
		t.Fatalf("mint alice: %v", err)
	}
	tokenBob, err := c.Mint("bob")
	if err != nil {
		t.Fatalf("mint bob: %v", err)
	}

	alice := strings.Split(tokenAlice, ".")
	bob := strings.Split(tokenBob, ".")

	// bob's payload with alice's signature must not verify
	spliced := bob[0] + "." + bob[1] + "." + alice[2]
	if _, err := c.Verify(spliced); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("spliced token: got %v, want ErrTokenSignature", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	minted := NewTokenCodec("secret-one", time.Hour)
	token, err := minted.Mint("alice")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := NewTokenCodec("secret-two", time.Hour)
	if _, err := other.Verify(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("wrong secret: got %v, want ErrTokenSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	c := NewTokenCodec("test-secret", time.Hour)
	for _, input := range []string{"", "garbage", "a.b", "a.b.c", "...."} {
		if _, err := c.Verify(input); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("verify %q: got %v, want ErrTokenMalformed", input, err)
		}
	}
}
