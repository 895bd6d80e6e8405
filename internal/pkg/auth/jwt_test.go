// internal/pkg/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-backend/internal/config"
)

const testSecret = "test-secret-key-for-jwt-validation"

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: testSecret,
			Issuer:    "storefront-idp",
		},
	}
}

func mintToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() *Claims {
	now := time.Now().UTC()
	return &Claims{
		Email:    "shopper@example.com",
		Metadata: map[string]string{"role": "admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "b7f9c1d2-3e4a-4b5c-8d6e-7f8a9b0c1d2e",
			Issuer:    "storefront-idp",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestValidateAccessToken(t *testing.T) {
	manager := NewJWTManager(testConfig())
	tokenString := mintToken(t, validClaims(), testSecret)

	claims, err := manager.ValidateAccessToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "b7f9c1d2-3e4a-4b5c-8d6e-7f8a9b0c1d2e", claims.UserID())
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role())
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testConfig())
	tokenString := mintToken(t, validClaims(), "some-other-secret")

	_, err := manager.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	manager := NewJWTManager(testConfig())

	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().UTC().Add(-time.Minute))
	tokenString := mintToken(t, claims, testSecret)

	_, err := manager.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsWrongIssuer(t *testing.T) {
	manager := NewJWTManager(testConfig())

	claims := validClaims()
	claims.Issuer = "someone-else"
	tokenString := mintToken(t, claims, testSecret)

	_, err := manager.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsMissingSubject(t *testing.T) {
	manager := NewJWTManager(testConfig())

	claims := validClaims()
	claims.Subject = ""
	tokenString := mintToken(t, claims, testSecret)

	_, err := manager.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestRoleDefaultsToCustomer(t *testing.T) {
	claims := &Claims{}
	assert.Equal(t, "customer", claims.Role())

	claims.Metadata = map[string]string{"plan": "premium"}
	assert.Equal(t, "customer", claims.Role())
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic dXNlcjpwYXNz"))
}
