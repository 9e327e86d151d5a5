package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	token, err := codec.Issue("admin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	subject, err := codec.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if subject != "admin@example.com" {
		t.Errorf("subject: got %q, want %q", subject, "admin@example.com")
	}
}

func TestTokenRejectsNonPositiveTTL(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	if _, err := codec.Issue("admin@example.com", 0); err == nil {
		t.Error("expected error for zero ttl")
	}
	if _, err := codec.Issue("admin@example.com", -time.Minute); err == nil {
		t.Error("expected error for negative ttl")
	}
}

func TestTokenExpiry(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	// Just inside the window: still valid.
	token, err := codec.Issue("admin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := codec.Validate(token); err != nil {
		t.Errorf("token inside its window should validate, got %v", err)
	}

	// Build an already-expired token by signing with a tiny ttl and waiting
	// past it (jwt's validator allows no leeway by default).
	expired, err := codec.Issue("admin@example.com", time.Millisecond)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, err = codec.Validate(expired)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	token, err := codec.Issue("admin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip one character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Validate(tampered)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed for tampered signature, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenCodec("secret-one").Issue("admin@example.com", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = NewTokenCodec("secret-two").Validate(token)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed across secrets, got %v", err)
	}
}

func TestTokenGarbageInput(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	for _, in := range []string{"", "garbage", "a.b.c", "ey.ey.ey"} {
		if _, err := codec.Validate(in); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("Validate(%q): expected ErrTokenMalformed, got %v", in, err)
		}
	}
}
