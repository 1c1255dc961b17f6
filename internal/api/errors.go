package api

import (
	"errors"
	"net/http"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/service"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// MapErrorToStatusCode maps service, store and domain errors to HTTP status
// codes so internal error types never reach clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Not found errors
	case errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Unprocessable: the request was understood but cannot be applied
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRecipe),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrDuplicateTitle),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}
