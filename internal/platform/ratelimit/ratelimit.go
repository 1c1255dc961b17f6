package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fullstack-nd/trivia-coffee-api/internal/config"
)

// Limiter decides whether a request identified by key may proceed. When it
// may not, retryAfter estimates when the budget frees up.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// New builds the limiter described by cfg. It returns nil when limiting is
// disabled.
func New(cfg config.RateLimitConfig, prefix string, logger *slog.Logger) (Limiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	if cfg.RedisURL != "" {
		l, err := NewRedisLimiter(cfg.RedisURL, prefix, cfg.Requests, window)
		if err != nil {
			return nil, fmt.Errorf("failed to configure redis rate limiter: %w", err)
		}
		logger.Info("rate limiting enabled",
			slog.String("backend", "redis"),
			slog.Int("requests", cfg.Requests),
			slog.Duration("window", window))
		return l, nil
	}

	logger.Info("rate limiting enabled",
		slog.String("backend", "memory"),
		slog.Int("requests", cfg.Requests),
		slog.Duration("window", window))
	return NewMemoryLimiter(cfg.Requests, window), nil
}
