package mocks

import (
	"context"
	"net/http"

	"github.com/fullstack-nd/trivia-coffee-api/internal/auth"
)

// MockVerifier implements auth.Verifier. By default it maps each token
// string to the permissions in Tokens and rejects unknown tokens.
type MockVerifier struct {
	VerifyFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Tokens maps a token to its permissions claim. A nil slice means the
	// claim is absent.
	Tokens map[string][]string
}

var _ auth.Verifier = (*MockVerifier)(nil)

// Verify implements auth.Verifier.
func (m *MockVerifier) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	perms, ok := m.Tokens[token]
	if !ok {
		return nil, auth.NewError(auth.CodeInvalidSignature, "Token signature is invalid.", http.StatusUnauthorized)
	}
	claims := &auth.Claims{Permissions: perms}
	claims.Subject = "mock|" + token
	return claims, nil
}
