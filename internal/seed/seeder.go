package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// ErrAlreadySeeded is returned by Apply when categories already exist and
// Force is not set.
var ErrAlreadySeeded = errors.New("database already contains categories")

// Result summarizes a seed run.
type Result struct {
	Categories int
	Questions  int
}

// Seeder writes fixtures through the trivia stores.
type Seeder struct {
	db         *sql.DB
	questions  store.QuestionStore
	categories store.CategoryStore
	logger     *slog.Logger

	// Force seeds even when categories already exist. Categories whose id
	// is present are skipped; questions are always inserted.
	Force bool
}

// NewSeeder creates a Seeder. It panics if db or a store is nil.
func NewSeeder(
	db *sql.DB,
	questions store.QuestionStore,
	categories store.CategoryStore,
	logger *slog.Logger,
) *Seeder {
	if db == nil || questions == nil || categories == nil {
		panic("seed: db and stores cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		db:         db,
		questions:  questions,
		categories: categories,
		logger:     logger.With(slog.String("component", "seeder")),
	}
}

// Apply inserts the fixture in one serializable transaction, so the empty
// check and the inserts see the same snapshot.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	var res Result

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		categories := s.categories.WithTx(tx)
		questions := s.questions.WithTx(tx)

		existing, err := categories.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if len(existing) > 0 && !s.Force {
			return ErrAlreadySeeded
		}
		present := make(map[int]struct{}, len(existing))
		for _, c := range existing {
			present[c.ID] = struct{}{}
		}

		for i := range f.Categories {
			c := f.Categories[i]
			if _, ok := present[c.ID]; ok {
				continue
			}
			if err := categories.Create(ctx, &c); err != nil {
				return fmt.Errorf("failed to create category %q: %w", c.Type, err)
			}
			res.Categories++
		}

		for i, qf := range f.Questions {
			q := qf.toDomain()
			if err := questions.Create(ctx, &q); err != nil {
				return fmt.Errorf("failed to create question %d: %w", i, err)
			}
			res.Questions++
		}
		return nil
	}, store.WithIsolation(sql.LevelSerializable), store.WithLabel("seed"))
	if err != nil {
		return Result{}, err
	}

	log.Info("seed applied",
		slog.Int("categories", res.Categories),
		slog.Int("questions", res.Questions))
	return res, nil
}
