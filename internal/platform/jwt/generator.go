package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is written into every service token and checked by AuthRequired.
const Issuer = "advisor_backend"

// ScopeTransform grants access to the /v1 research endpoints.
const ScopeTransform = "transform"

// Generator defines the interface for service token generation.
type Generator interface {
	// GenerateToken creates a signed JWT for the given API client.
	GenerateToken(clientID string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed HS256 token whose subject is the client id.
func (g *generator) GenerateToken(clientID string) (string, error) {
	if clientID == "" {
		return "", errors.New("client id is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   clientID,
		"iss":   Issuer,
		"scope": ScopeTransform,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
