package service

import (
	"context"
	"log/slog"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// DrinkPatch carries the fields of a partial drink update. Nil fields are
// left unchanged.
type DrinkPatch struct {
	Title  *string
	Recipe []domain.Ingredient
}

// DrinkService provides the coffee-shop menu operations.
type DrinkService interface {
	ListDrinks(ctx context.Context) ([]domain.Drink, error)

	// CreateDrink stores a new drink. A title already in use yields
	// ErrDuplicateTitle.
	CreateDrink(ctx context.Context, title string, recipe []domain.Ingredient) (*domain.Drink, error)

	// UpdateDrink applies patch to an existing drink.
	UpdateDrink(ctx context.Context, id int, patch DrinkPatch) (*domain.Drink, error)

	DeleteDrink(ctx context.Context, id int) error

	// ClearAll removes every drink and restarts id assignment.
	ClearAll(ctx context.Context) error
}

type drinkService struct {
	drinks store.DrinkStore
	logger *slog.Logger
}

var _ DrinkService = (*drinkService)(nil)

// NewDrinkService creates a DrinkService.
func NewDrinkService(drinks store.DrinkStore, logger *slog.Logger) (DrinkService, error) {
	if drinks == nil {
		return nil, domain.NewValidationError("drinks", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &drinkService{
		drinks: drinks,
		logger: logger.With(slog.String("component", "drink_service")),
	}, nil
}

func (s *drinkService) ListDrinks(ctx context.Context) ([]domain.Drink, error) {
	drinks, err := s.drinks.List(ctx)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list drinks",
			slog.String("error", err.Error()))
		return nil, NewServiceError("list_drinks", "failed to load drinks", err)
	}
	return drinks, nil
}

func (s *drinkService) CreateDrink(
	ctx context.Context,
	title string,
	recipe []domain.Ingredient,
) (*domain.Drink, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d := &domain.Drink{Title: title, Recipe: recipe}
	if err := d.Validate(); err != nil {
		log.Debug("drink rejected", slog.String("error", err.Error()))
		return nil, err
	}

	n, err := s.drinks.CountByTitle(ctx, title)
	if err != nil {
		return nil, NewServiceError("create_drink", "failed to check title", err)
	}
	if n > 0 {
		log.Info("drink title already in use", slog.String("title", title))
		return nil, ErrDuplicateTitle
	}

	if err := s.drinks.Create(ctx, d); err != nil {
		if store.IsDuplicateError(err) {
			return nil, ErrDuplicateTitle
		}
		log.Error("failed to create drink", slog.String("error", err.Error()))
		return nil, NewServiceError("create_drink", "failed to save drink", err)
	}
	return d, nil
}

func (s *drinkService) UpdateDrink(ctx context.Context, id int, patch DrinkPatch) (*domain.Drink, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := s.drinks.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("update_drink", "failed to load drink", err)
	}

	if patch.Title != nil && *patch.Title != d.Title {
		n, err := s.drinks.CountByTitle(ctx, *patch.Title)
		if err != nil {
			return nil, NewServiceError("update_drink", "failed to check title", err)
		}
		if n > 0 {
			log.Info("drink title already in use", slog.String("title", *patch.Title))
			return nil, ErrDuplicateTitle
		}
		d.Title = *patch.Title
	}
	if patch.Recipe != nil {
		d.Recipe = patch.Recipe
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := s.drinks.Update(ctx, d); err != nil {
		if store.IsDuplicateError(err) {
			return nil, ErrDuplicateTitle
		}
		log.Error("failed to update drink", slog.String("error", err.Error()), slog.Int("drink_id", id))
		return nil, NewServiceError("update_drink", "failed to save drink", err)
	}
	return d, nil
}

func (s *drinkService) DeleteDrink(ctx context.Context, id int) error {
	if err := s.drinks.Delete(ctx, id); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to delete drink",
			slog.String("error", err.Error()),
			slog.Int("drink_id", id))
		return NewServiceError("delete_drink", "failed to delete drink", err)
	}
	return nil
}

func (s *drinkService) ClearAll(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if err := s.drinks.Reset(ctx); err != nil {
		log.Error("failed to clear drinks", slog.String("error", err.Error()))
		return NewServiceError("clear_all", "failed to reset drinks", err)
	}
	log.Warn("all drinks cleared")
	return nil
}
