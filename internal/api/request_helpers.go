package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
)

// pathID extracts an integer id from the URL path parameter name.
func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, domain.NewValidationError(name, "is required", nil)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", nil)
	}
	return id, nil
}

// pageParam reads the page query parameter. Missing or non-integer values
// fall back to 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}
