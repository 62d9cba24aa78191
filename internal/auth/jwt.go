// Package auth provides bearer token issuance, password hashing and the
// request identity helpers used by protected routes.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "linkcut"

// ErrInvalidToken is returned when a bearer token fails signature,
// expiry or claim validation.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and validates signed bearer tokens. The same HMAC
// secret is used for both operations.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	const op = "auth.NewTokenService"

	if len(secret) < 16 {
		return nil, fmt.Errorf("%s: secret must be at least 16 characters", op)
	}

	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Generate creates a signed token asserting the given user's identity.
// The token expires after the service's configured TTL.
func (s *TokenService) Generate(userID int64) (string, error) {
	const op = "auth.TokenService.Generate"

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%s: failed to sign token: %w", op, err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning the user ID from
// the subject claim.
func (s *TokenService) Validate(tokenStr string) (int64, error) {
	const op = "auth.TokenService.Validate"

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return userID, nil
}
