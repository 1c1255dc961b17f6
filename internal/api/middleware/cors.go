package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api/shared"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
)

const (
	corsAllowHeaders = "Content-Type, Authorization"
	corsAllowMethods = "GET, POST, PATCH, DELETE, OPTIONS"
)

// CORSPolicy is an origin allow list. An empty list allows any origin.
type CORSPolicy struct {
	allowed map[string]struct{}
}

// NewCORSPolicy normalizes origins into a policy.
func NewCORSPolicy(origins []string) (CORSPolicy, error) {
	policy := CORSPolicy{allowed: make(map[string]struct{})}
	for _, origin := range origins {
		if strings.TrimSpace(origin) == "*" {
			return CORSPolicy{allowed: map[string]struct{}{}}, nil
		}
		normalized, err := normalizeOrigin(origin)
		if err != nil {
			return CORSPolicy{}, fmt.Errorf("parse origin %q: %w", origin, err)
		}
		if normalized != "" {
			policy.allowed[normalized] = struct{}{}
		}
	}
	return policy, nil
}

func normalizeOrigin(origin string) (string, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return "", nil
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("origin must include scheme and host")
	}
	return fmt.Sprintf("%s://%s", strings.ToLower(parsed.Scheme), strings.ToLower(parsed.Host)), nil
}

// AllowsAny reports whether the policy is open to every origin. Open
// policies answer with a wildcard and never allow credentials.
func (p CORSPolicy) AllowsAny() bool {
	return len(p.allowed) == 0
}

// Allows reports whether origin may call the API.
func (p CORSPolicy) Allows(origin string) bool {
	if p.AllowsAny() {
		return true
	}
	normalized, err := normalizeOrigin(origin)
	if err != nil || normalized == "" {
		return false
	}
	_, ok := p.allowed[normalized]
	return ok
}

// CORS applies policy to cross-origin requests and answers preflights.
func CORS(policy CORSPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !policy.Allows(origin) {
				logger.FromContext(r.Context()).Warn("blocked CORS origin",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path))
				shared.RespondWithError(w, r, http.StatusForbidden)
				return
			}

			h := w.Header()
			if policy.AllowsAny() {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
