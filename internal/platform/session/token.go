// Package session issues and verifies the signed token that identifies a visitor's session.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired, or not signed by us.
var ErrInvalidToken = errors.New("invalid session token")

// Issuer defines the interface for session token handling.
type Issuer interface {
	// Issue creates a signed token for the given session ID.
	Issue(sessionID string) (string, error)
	// Parse verifies a token and returns the session ID it carries.
	Parse(token string) (string, error)
}

// issuer implements Issuer with HS256 JWTs.
type issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates a token issuer with the provided secret and lifetime.
func NewIssuer(secret string, ttl time.Duration) Issuer {
	return &issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token with sid, iat and exp claims.
func (i *issuer) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry and extracts the sid claim.
func (i *issuer) Parse(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidToken
	}
	return sid, nil
}

// NewSecret returns a random 32-byte hex secret for processes started without one.
func NewSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
