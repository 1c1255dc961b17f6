package auth

import (
	"net/http"
	"strings"
)

// BearerToken extracts the token from the Authorization header of r.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errHeaderMissing
	}

	parts := strings.Fields(header)
	switch {
	case len(parts) == 0 || !strings.EqualFold(parts[0], "bearer"):
		return "", errNotBearer
	case len(parts) == 1:
		return "", errTokenNotFound
	case len(parts) > 2:
		return "", errNotSingle
	}
	return parts[1], nil
}
