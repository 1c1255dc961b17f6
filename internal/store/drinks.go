package store

import (
	"context"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
)

// DrinkStore defines persistence for coffee-shop drinks.
type DrinkStore interface {
	// List returns every drink ordered by id.
	List(ctx context.Context) ([]domain.Drink, error)

	// GetByID retrieves a drink. Returns ErrDrinkNotFound if absent.
	GetByID(ctx context.Context, id int) (*domain.Drink, error)

	// CountByTitle returns how many drinks carry exactly this title.
	CountByTitle(ctx context.Context, title string) (int, error)

	// Create inserts d and sets d.ID. Returns ErrTitleExists when the
	// title is already taken.
	Create(ctx context.Context, d *domain.Drink) error

	// Update replaces title and recipe of an existing drink.
	// Returns ErrDrinkNotFound if absent and ErrTitleExists on collision.
	Update(ctx context.Context, d *domain.Drink) error

	// Delete removes a drink. Returns ErrDrinkNotFound if absent.
	Delete(ctx context.Context, id int) error

	// Reset empties the drinks table and restarts id allocation.
	Reset(ctx context.Context) error
}
