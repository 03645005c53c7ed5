// Package auth provides session token signing, password hashing, and the
// bearer-token middleware for protected routes.
//
// SESSION MODEL:
// A login issues a signed JWT whose Subject is the user's email. The
// server stores nothing — signature plus expiry are the whole session
// state, and the subject is re-resolved against the credential store on
// every authenticated request so a token outlives its account by nothing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the session lifetime. A token issued at T verifies until
// T+24h and is rejected afterwards.
const tokenTTL = 24 * time.Hour

const issuer = "gitcompare"

// TokenService signs and verifies session tokens with an HMAC secret.
// The same secret must be used for both operations.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production,
// e.g. JWT_SECRET=$(openssl rand -hex 32).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds jwt.RegisteredClaims; the "sub" claim carries the email.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given email,
// expiring 24 hours from now.
func (s *TokenService) Generate(email string) (string, error) {
	return s.GenerateWithDuration(email, tokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Exported for tests that need already-expired or near-expiry tokens.
func (s *TokenService) GenerateWithDuration(email string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the email it
// encodes.
//
// The jwt library checks signature, expiry and issuer; WithValidMethods
// pins the algorithm to HS256 so a token claiming alg "none" (or an
// asymmetric algorithm) is rejected outright.
//
// Callers must not forward the reason for a failure to API clients — the
// service layer collapses every failure here into one unauthorized error.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
