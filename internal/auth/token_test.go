package auth

import (
	"testing"
	"time"

	apperr "linkup/pkg/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Parse returned %q, want %q", userID, "user-1")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, err := tm.Parse("not-a-token")
	if err == nil {
		t.Fatal("expected an error for a malformed token")
	}
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized kind, got %v", apperr.KindOf(err))
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("expected a token signed with another secret to be rejected")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = tm.Parse(token)
	if err == nil {
		t.Fatal("expected an expired token to be rejected")
	}
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Errorf("expected unauthorized kind, got %v", apperr.KindOf(err))
	}
}
