package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// PostgresDrinkStore implements the store.DrinkStore interface. Recipes are
// stored as JSON text.
type PostgresDrinkStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDrinkStore creates a new DrinkStore. If logger is nil, a
// default logger will be used.
func NewPostgresDrinkStore(db store.DBTX, logger *slog.Logger) *PostgresDrinkStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDrinkStore{
		db:     db,
		logger: logger.With(slog.String("component", "drink_store")),
	}
}

var _ store.DrinkStore = (*PostgresDrinkStore)(nil)

// List implements store.DrinkStore.List
func (s *PostgresDrinkStore) List(ctx context.Context) ([]domain.Drink, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, recipe FROM drinks ORDER BY id`)
	if err != nil {
		log.Error("failed to query drinks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	drinks := []domain.Drink{}
	for rows.Next() {
		d, err := scanDrink(rows)
		if err != nil {
			log.Error("failed to scan drink row", slog.String("error", err.Error()))
			return nil, err
		}
		drinks = append(drinks, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return drinks, nil
}

// GetByID implements store.DrinkStore.GetByID
func (s *PostgresDrinkStore) GetByID(ctx context.Context, id int) (*domain.Drink, error) {
	d, err := scanDrink(s.db.QueryRowContext(ctx, `SELECT id, title, recipe FROM drinks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDrinkNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get drink",
			slog.String("error", err.Error()),
			slog.Int("drink_id", id))
		return nil, MapError(err)
	}
	return d, nil
}

// CountByTitle implements store.DrinkStore.CountByTitle
func (s *PostgresDrinkStore) CountByTitle(ctx context.Context, title string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM drinks WHERE title = $1`, title).Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// Create implements store.DrinkStore.Create
func (s *PostgresDrinkStore) Create(ctx context.Context, d *domain.Drink) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recipe, err := domain.MarshalRecipe(d.Recipe)
	if err != nil {
		return err
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO drinks (title, recipe) VALUES ($1, $2) RETURNING id`,
		d.Title, recipe).Scan(&d.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("drink title already taken", slog.String("title", d.Title))
			return fmt.Errorf("%w: %v", store.ErrTitleExists, err)
		}
		log.Error("failed to create drink", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("drink created", slog.Int("drink_id", d.ID))
	return nil
}

// Update implements store.DrinkStore.Update
func (s *PostgresDrinkStore) Update(ctx context.Context, d *domain.Drink) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	recipe, err := domain.MarshalRecipe(d.Recipe)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE drinks SET title = $1, recipe = $2 WHERE id = $3`,
		d.Title, recipe, d.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", store.ErrTitleExists, err)
		}
		log.Error("failed to update drink",
			slog.String("error", err.Error()),
			slog.Int("drink_id", d.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrDrinkNotFound); err != nil {
		return err
	}

	log.Info("drink updated", slog.Int("drink_id", d.ID))
	return nil
}

// Delete implements store.DrinkStore.Delete
func (s *PostgresDrinkStore) Delete(ctx context.Context, id int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM drinks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete drink",
			slog.String("error", err.Error()),
			slog.Int("drink_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrDrinkNotFound); err != nil {
		return err
	}

	log.Info("drink deleted", slog.Int("drink_id", id))
	return nil
}

// Reset implements store.DrinkStore.Reset
func (s *PostgresDrinkStore) Reset(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, `TRUNCATE TABLE drinks RESTART IDENTITY`); err != nil {
		log.Error("failed to reset drinks", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Warn("drinks table reset")
	return nil
}

func scanDrink(row rowScanner) (*domain.Drink, error) {
	var (
		d      domain.Drink
		recipe string
	)
	if err := row.Scan(&d.ID, &d.Title, &recipe); err != nil {
		return nil, err
	}
	ingredients, err := domain.UnmarshalRecipe(recipe)
	if err != nil {
		return nil, fmt.Errorf("drink %d: %w", d.ID, err)
	}
	d.Recipe = ingredients
	return &d, nil
}
