package domain

import "strconv"

// Category groups questions. Categories are read-only through the API.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CategoryMap renders categories the way the trivia frontend consumes them:
// an object keyed by category id.
func CategoryMap(categories []Category) map[string]string {
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[strconv.Itoa(c.ID)] = c.Type
	}
	return out
}
