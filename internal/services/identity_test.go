package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTIdentityVerifierRoundTrip(t *testing.T) {
	v, err := NewJWTIdentityVerifier("test-secret")
	if err != nil {
		t.Fatalf("NewJWTIdentityVerifier: %v", err)
	}
	token, err := IssueIdentityToken("test-secret", "learner-1", time.Hour)
	if err != nil {
		t.Fatalf("IssueIdentityToken: %v", err)
	}
	uid, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if uid != "learner-1" {
		t.Fatalf("uid: want=learner-1 got=%s", uid)
	}
}

func TestJWTIdentityVerifierRejects(t *testing.T) {
	v, err := NewJWTIdentityVerifier("test-secret")
	if err != nil {
		t.Fatalf("NewJWTIdentityVerifier: %v", err)
	}
	wrongKey, _ := IssueIdentityToken("other-secret", "learner-1", time.Hour)
	noUID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("test-secret"))
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"uid": "learner-1"}).SignedString([]byte("test-secret"))

	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("empty credential: want ErrMissingCredential got=%v", err)
	}
	for name, token := range map[string]string{
		"garbage":   "not-a-token",
		"wrong key": wrongKey,
		"no uid":    noUID,
		"hs512":     hs512,
	} {
		if _, err := v.Verify(context.Background(), token); !errors.Is(err, ErrInvalidCredential) {
			t.Fatalf("%s: want ErrInvalidCredential got=%v", name, err)
		}
	}
	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, IdentityClaims{
		UID: "learner-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	if _, err := v.Verify(context.Background(), expired); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expired: want ErrInvalidCredential got=%v", err)
	}
}

func TestNewJWTIdentityVerifierRequiresSecret(t *testing.T) {
	if _, err := NewJWTIdentityVerifier(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
