package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api/shared"
	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/service"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// DrinkHandler serves the coffee-shop menu endpoints.
type DrinkHandler struct {
	drinks service.DrinkService
	logger *slog.Logger
}

// NewDrinkHandler creates a new DrinkHandler.
func NewDrinkHandler(drinks service.DrinkService, logger *slog.Logger) *DrinkHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DrinkHandler{
		drinks: drinks,
		logger: logger.With(slog.String("component", "drink_handler")),
	}
}

// ListDrinks handles GET /drinks with the short projection.
func (h *DrinkHandler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.drinks.ListDrinks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err)
		return
	}

	out := make([]domain.DrinkShort, 0, len(drinks))
	for i := range drinks {
		out = append(out, drinks[i].Short())
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DrinksShortResponse{Success: true, Drinks: out})
}

// ListDrinkDetails handles GET /drinks-detail with the long projection.
func (h *DrinkHandler) ListDrinkDetails(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.drinks.ListDrinks(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err)
		return
	}

	out := make([]domain.DrinkLong, 0, len(drinks))
	for i := range drinks {
		out = append(out, drinks[i].Long())
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DrinksLongResponse{Success: true, Drinks: out})
}

// CreateDrink handles POST /drinks. A duplicate title, an invalid payload
// or any other failure is reported as 406.
func (h *DrinkHandler) CreateDrink(w http.ResponseWriter, r *http.Request) {
	var req DrinkRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotAcceptable, err)
		return
	}

	title := ""
	if req.Title != nil {
		title = *req.Title
	}
	recipe, err := domain.DecodeRecipe(req.Recipe)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotAcceptable, err)
		return
	}

	d, err := h.drinks.CreateDrink(r.Context(), title, recipe)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotAcceptable, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("drink created",
		slog.Int("drink_id", d.ID),
		slog.String("title", d.Title))
	shared.RespondWithJSON(w, r, http.StatusOK, DrinksLongResponse{
		Success: true,
		Drinks:  []domain.DrinkLong{d.Long()},
	})
}

// UpdateDrink handles PATCH /drinks/{id}.
func (h *DrinkHandler) UpdateDrink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, err)
		return
	}

	var req DrinkRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	patch := service.DrinkPatch{Title: req.Title}
	if len(req.Recipe) > 0 {
		recipe, err := domain.DecodeRecipe(req.Recipe)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err)
			return
		}
		patch.Recipe = recipe
	}

	d, err := h.drinks.UpdateDrink(r.Context(), id, patch)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DrinksLongResponse{
		Success: true,
		Drinks:  []domain.DrinkLong{d.Long()},
	})
}

// DeleteDrink handles DELETE /drinks/{id}. An unknown id is 404; any other
// failure is 422.
func (h *DrinkHandler) DeleteDrink(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, err)
		return
	}

	if err := h.drinks.DeleteDrink(r.Context(), id); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, store.ErrNotFound) {
			status = http.StatusNotFound
		}
		shared.RespondWithErrorAndLog(w, r, status, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DrinkDeletedResponse{Success: true, Drink: id})
}

// ClearAll handles GET /clearall.
func (h *DrinkHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.drinks.ClearAll(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Success: true, Message: "all db cleared"})
}
