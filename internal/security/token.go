package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token parse failures surfaced to callers.
var (
	// ErrTokenInvalid indicates a malformed token or bad signature.
	ErrTokenInvalid = errors.New("security: invalid token")
	// ErrTokenExpired indicates a structurally valid but expired token.
	ErrTokenExpired = errors.New("security: expired token")
)

// Claims are the identity claims embedded in a bearer token.
type Claims struct {
	UserID   uint64 `json:"uid"`      // Authenticated user ID.
	Username string `json:"username"` // Login name at issue time.
	Role     string `json:"role"`     // Role tag at issue time.
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 bearer token embedding the principal's claims.
func IssueToken(secret string, expiry time.Duration, userID uint64, username, role string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", fmt.Errorf("security: empty jwt secret")
	}
	now := time.Now().UTC()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, errSign := token.SignedString([]byte(secret))
	if errSign != nil {
		return "", fmt.Errorf("security: sign token: %w", errSign)
	}
	return signed, nil
}

// ParseToken verifies a bearer token and returns its claims.
func ParseToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	token, errParse := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if errParse != nil {
		if errors.Is(errParse, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
