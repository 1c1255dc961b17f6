package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
)

// FlexInt accepts a JSON number or a numeric string.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// CreateQuestionRequest is the body of POST /questions.
type CreateQuestionRequest struct {
	Question   string  `json:"question"   validate:"required"`
	Answer     string  `json:"answer"     validate:"required"`
	Category   FlexInt `json:"category"   validate:"gt=0"`
	Difficulty FlexInt `json:"difficulty" validate:"min=1,max=5"`
}

// SearchQuestionsRequest is the body of POST /questions/search.
type SearchQuestionsRequest struct {
	SearchTerm *string `json:"searchTerm" validate:"required"`
}

// QuizCategory identifies the quiz category; ID 0 means all categories.
type QuizCategory struct {
	ID   FlexInt `json:"id"   validate:"gte=0"`
	Type string  `json:"type"`
}

// QuizRequest is the body of POST /quizzes.
type QuizRequest struct {
	PreviousQuestions []int         `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
}

// DrinkRequest is the body of POST /drinks and PATCH /drinks/{id}. Recipe
// may be a single ingredient object or a list of them.
type DrinkRequest struct {
	Title  *string         `json:"title"`
	Recipe json.RawMessage `json:"recipe"`
}

// QuestionsResponse lists a page of questions with the category map.
type QuestionsResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[string]string `json:"categories"`
	CurrentCategory *string           `json:"current_category"`
}

// QuestionMutationResponse answers create and delete with the refreshed
// first page.
type QuestionMutationResponse struct {
	Success        bool              `json:"success"`
	Created        int               `json:"created,omitempty"`
	Deleted        int               `json:"deleted,omitempty"`
	Questions      []domain.Question `json:"questions"`
	TotalQuestions int               `json:"total_questions"`
}

// SearchResponse lists questions matching a search or a category.
type SearchResponse struct {
	Success         bool              `json:"success"`
	Questions       []domain.Question `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CurrentCategory *string           `json:"current_category"`
}

// CategoriesResponse lists every category as id → type.
type CategoriesResponse struct {
	Success    bool              `json:"success"`
	Categories map[string]string `json:"categories"`
}

// QuizResponse carries the next quiz question, null when none remain.
type QuizResponse struct {
	Success  bool             `json:"success"`
	Question *domain.Question `json:"question"`
}

// DrinksShortResponse lists drinks in the short projection.
type DrinksShortResponse struct {
	Success bool                `json:"success"`
	Drinks  []domain.DrinkShort `json:"drinks"`
}

// DrinksLongResponse lists drinks in the long projection.
type DrinksLongResponse struct {
	Success bool               `json:"success"`
	Drinks  []domain.DrinkLong `json:"drinks"`
}

// DrinkDeletedResponse reports the id of a deleted drink.
type DrinkDeletedResponse struct {
	Success bool `json:"success"`
	Drink   int  `json:"drink"`
}

// MessageResponse is a success envelope with a message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Success  bool   `json:"success"`
	Status   string `json:"status"`
	Database string `json:"database"`
}
