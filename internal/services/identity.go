package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
)

// IdentityVerifier resolves an opaque session credential to the caller's uid.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// IdentityClaims is the payload of a session token. Only uid is required.
type IdentityClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type jwtIdentityVerifier struct {
	secret []byte
	leeway time.Duration
}

// NewJWTIdentityVerifier verifies HS256 session tokens signed with secret.
func NewJWTIdentityVerifier(secret string) (IdentityVerifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return &jwtIdentityVerifier{secret: []byte(secret), leeway: 30 * time.Second}, nil
}

func (v *jwtIdentityVerifier) Verify(ctx context.Context, credential string) (string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", ErrMissingCredential
	}
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if !token.Valid {
		return "", ErrInvalidCredential
	}
	uid := strings.TrimSpace(claims.UID)
	if uid == "" {
		return "", fmt.Errorf("%w: missing uid claim", ErrInvalidCredential)
	}
	return uid, nil
}

// IssueIdentityToken signs a session token for uid. Used by the seed tool and tests.
func IssueIdentityToken(secret, uid string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", fmt.Errorf("secret required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	claims := IdentityClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
