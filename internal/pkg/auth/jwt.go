// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/your-org/storefront-backend/internal/config"
)

// Claims represents the JWT claims issued by the identity provider.
// Tokens are minted elsewhere; this package only validates them.
type Claims struct {
	Email    string            `json:"email"`
	Metadata map[string]string `json:"user_metadata"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.Subject
}

// Role reads the role marker from user metadata, defaulting to customer
func (c *Claims) Role() string {
	if c.Metadata != nil {
		if role, ok := c.Metadata["role"]; ok && role != "" {
			return role
		}
	}
	return "customer"
}

// JWTManager handles JWT validation
type JWTManager struct {
	config *config.Config
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{
		config: cfg,
	}
}

// ValidateAccessToken validates and parses an access token
func (j *JWTManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if j.config.Auth.Issuer != "" && claims.Issuer != j.config.Auth.Issuer {
		return nil, fmt.Errorf("unexpected token issuer: %s", claims.Issuer)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject")
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
