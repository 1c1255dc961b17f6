package domain

import "strings"

// Difficulty bounds accepted for a question.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is a single trivia question.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Validate checks the fields a client supplies on create. The category is
// only checked for being positive; existence is enforced by the schema.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewValidationError("question", "cannot be empty", nil)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return NewValidationError("answer", "cannot be empty", nil)
	}
	if q.Category <= 0 {
		return NewValidationError("category", "must be a positive id", nil)
	}
	if q.Difficulty < MinDifficulty || q.Difficulty > MaxDifficulty {
		return NewValidationError("difficulty", "must be between 1 and 5", nil)
	}
	return nil
}
