package jwtmw

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the token signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given player.
	GenerateToken(playerID uint) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret []byte
}

// NewGenerator creates a new JWT generator with the provided secret.
func NewGenerator(secret string) Generator {
	return &generator{secret: []byte(secret)}
}

// GenerateToken creates a signed JWT token carrying the player id.
// The token carries no exp claim: a session lives until the client discards
// the token, matching the documented logout model.
func (g *generator) GenerateToken(playerID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": playerID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
