package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
)

// Beginner starts transactions. *sql.DB satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// TxFn is the unit of work run by RunInTransaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxOption adjusts how RunInTransaction opens its transaction.
type TxOption func(*txConfig)

type txConfig struct {
	opts  sql.TxOptions
	label string
}

// WithIsolation sets the isolation level. The default is the driver's.
func WithIsolation(level sql.IsolationLevel) TxOption {
	return func(c *txConfig) { c.opts.Isolation = level }
}

// WithLabel names the unit of work in log lines.
func WithLabel(label string) TxOption {
	return func(c *txConfig) { c.label = label }
}

// RunInTransaction commits when fn returns nil and rolls back otherwise.
// When the rollback itself fails both errors are returned joined, so callers
// can still match on fn's error. A panic in fn rolls back and is re-raised.
func RunInTransaction(ctx context.Context, db Beginner, fn TxFn, options ...TxOption) error {
	cfg := txConfig{label: "transaction"}
	for _, opt := range options {
		opt(&cfg)
	}
	log := logger.FromContext(ctx).With(slog.String("tx", cfg.label))

	tx, err := db.BeginTx(ctx, &cfg.opts)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin %s: %w", cfg.label, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			}
			// ALLOW-PANIC: propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("cause", err.Error()))
			return errors.Join(err, fmt.Errorf("roll back %s: %w", cfg.label, rbErr))
		}
		log.Debug("rolled back", slog.String("cause", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit", slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit %s: %w", cfg.label, err)
	}
	return nil
}
