package testutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is a test-only HS256 secret long enough for config
// validation.
const TestJWTSecret = "test-jwt-secret-that-is-32-chars-long"

// TestTokenLifetime is the expiry applied by PermissionClaims.
const TestTokenLifetime = 15 * time.Minute

// PermissionClaims builds claims for subject granting perms. With no perms
// the permissions claim is omitted entirely.
func PermissionClaims(subject string, perms ...string) jwt.MapClaims {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(TestTokenLifetime).Unix(),
	}
	if perms != nil {
		claims["permissions"] = perms
	}
	return claims
}

// MintHS256 signs claims with secret.
func MintHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err, "failed to sign test token")
	return token
}
