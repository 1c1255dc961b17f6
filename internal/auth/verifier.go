package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fullstack-nd/trivia-coffee-api/internal/config"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
)

// Verifier validates bearer tokens.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// JWTVerifier verifies tokens with golang-jwt, either against a JWKS key set
// (RS256) or a shared secret (HS256).
type JWTVerifier struct {
	keys      *KeySet
	secret    []byte
	issuer    string
	audience  string
	clockSkew time.Duration
	timeFunc  func() time.Time
	logger    *slog.Logger
}

var _ Verifier = (*JWTVerifier)(nil)

// NewVerifier creates a verifier from the auth configuration. A configured
// JWT secret selects HS256; otherwise the JWKS document of the configured
// domain is used.
func NewVerifier(cfg config.AuthConfig, client *http.Client, logger *slog.Logger) (*JWTVerifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	v := &JWTVerifier{
		issuer:    cfg.Issuer(),
		audience:  cfg.Audience,
		clockSkew: 30 * time.Second,
		timeFunc:  time.Now,
		logger:    logger.With(slog.String("component", "auth")),
	}

	switch {
	case cfg.JWTSecret != "":
		v.secret = []byte(cfg.JWTSecret)
	case cfg.KeySetURL() != "":
		v.keys = NewKeySet(cfg.KeySetURL(), client, cfg.JWKSCacheTTL, logger)
	default:
		return nil, errors.New("auth requires either a jwt secret or an identity provider domain")
	}
	return v, nil
}

// Verify implements Verifier.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	opts := []jwt.ParserOption{
		jwt.WithLeeway(v.clockSkew),
		jwt.WithTimeFunc(v.timeFunc),
	}
	if v.secret != nil {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.key(ctx, t)
	}, opts...)
	if err != nil {
		authErr := classify(err)
		log.Debug("token verification failed",
			slog.String("code", authErr.Code),
			slog.String("error", err.Error()))
		return nil, authErr
	}
	return claims, nil
}

func (v *JWTVerifier) key(ctx context.Context, t *jwt.Token) (interface{}, error) {
	if v.secret != nil {
		return v.secret, nil
	}
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, errMalformed
	}
	return v.keys.Key(ctx, kid)
}

func classify(err error) *Error {
	if authErr, ok := AsError(err); ok {
		return authErr
	}
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return errBadClaims
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errUnparseable
	}
	return errInvalid
}
