package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api/shared"
	"github.com/fullstack-nd/trivia-coffee-api/internal/auth"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
)

type claimsKey struct{}

// AuthMiddleware guards routes with the bearer-token permission gate.
type AuthMiddleware struct {
	verifier auth.Verifier
}

// NewAuthMiddleware creates a new AuthMiddleware with the given verifier.
func NewAuthMiddleware(verifier auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequirePermissions admits requests whose token grants every permission in
// perms. Rejections always render as 401.
func (m *AuthMiddleware) RequirePermissions(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r)
			if err != nil {
				respondAuthError(w, r, err)
				return
			}

			claims, err := m.verifier.Verify(r.Context(), token)
			if err != nil {
				respondAuthError(w, r, err)
				return
			}

			if err := auth.CheckPermissions(claims, perms...); err != nil {
				respondAuthError(w, r, err)
				return
			}

			logger.FromContext(r.Context()).Debug("request authorized",
				slog.String("subject", claims.Subject),
				slog.Any("permissions", perms))

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	authErr, ok := auth.AsError(err)
	if !ok {
		authErr = auth.NewError(auth.CodeInvalidToken, "Token is invalid.", http.StatusUnauthorized)
	}
	shared.RespondWithAuthError(w, r, authErr.Code, authErr.Description, authErr.Status)
}

// ClaimsFromContext returns the verified claims stored by RequirePermissions.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}
