package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api"
	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
)

func TestListQuestions(t *testing.T) {
	f := newTriviaFixture(t, 19, api.RouterDeps{})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCount  int
	}{
		{"default page", "/questions", http.StatusOK, 10},
		{"first page", "/questions?page=1", http.StatusOK, 10},
		{"last partial page", "/questions?page=2", http.StatusOK, 9},
		{"non-integer page falls back to 1", "/questions?page=abc", http.StatusOK, 10},
		{"beyond last page", "/questions?page=3", http.StatusNotFound, 0},
		{"page zero", "/questions?page=0", http.StatusNotFound, 0},
		{"negative page", "/questions?page=-1", http.StatusNotFound, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := do(t, f.handler, http.MethodGet, tc.path, nil, "")
			require.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus != http.StatusOK {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, float64(http.StatusNotFound), body["error"])
				assert.Equal(t, "resource not found", body["message"])
				return
			}

			assert.Equal(t, true, body["success"])
			assert.Equal(t, tc.wantCount, listLen(t, body["questions"]))
			assert.Equal(t, float64(19), body["total_questions"])
			categories, ok := body["categories"].(map[string]interface{})
			require.True(t, ok)
			assert.Len(t, categories, len(testCategories))
			assert.Equal(t, "Science", categories["1"])
			assert.Contains(t, body, "current_category")
			assert.Nil(t, body["current_category"])
		})
	}
}

func TestListQuestions_StoreFailure(t *testing.T) {
	f := newTriviaFixture(t, 3, api.RouterDeps{})
	f.questions.ListFn = func(context.Context, int, int) ([]domain.Question, error) {
		return nil, errors.New("connection refused")
	}

	rec, body := do(t, f.handler, http.MethodGet, "/questions", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestDeleteQuestion(t *testing.T) {
	t.Run("existing question", func(t *testing.T) {
		f := newTriviaFixture(t, 12, api.RouterDeps{})

		rec, body := do(t, f.handler, http.MethodDelete, "/questions/2", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(2), body["deleted"])
		assert.Equal(t, float64(11), body["total_questions"])
		assert.Equal(t, 10, listLen(t, body["questions"]))

		rec, _ = do(t, f.handler, http.MethodDelete, "/questions/2", nil, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("last question leaves an empty page", func(t *testing.T) {
		f := newTriviaFixture(t, 1, api.RouterDeps{})

		rec, body := do(t, f.handler, http.MethodDelete, "/questions/1", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 0, listLen(t, body["questions"]))
		assert.Equal(t, float64(0), body["total_questions"])
	})

	tests := []struct {
		name string
		path string
	}{
		{"nonexistent id", "/questions/1000"},
		{"non-integer id", "/questions/abc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTriviaFixture(t, 5, api.RouterDeps{})
			rec, body := do(t, f.handler, http.MethodDelete, tc.path, nil, "")
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "unprocessable", body["message"])
		})
	}
}

func TestCreateQuestion(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name: "valid payload",
			body: map[string]interface{}{
				"question": "What is the capital of Peru?", "answer": "Lima",
				"category": 3, "difficulty": 2,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "category as numeric string",
			body: map[string]interface{}{
				"question": "Who painted the Mona Lisa?", "answer": "Leonardo",
				"category": "2", "difficulty": 1,
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing answer",
			body:       map[string]interface{}{"question": "Q?", "category": 1, "difficulty": 1},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "difficulty out of range",
			body: map[string]interface{}{
				"question": "Q?", "answer": "A", "category": 1, "difficulty": 9,
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown category",
			body: map[string]interface{}{
				"question": "Q?", "answer": "A", "category": 99, "difficulty": 1,
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "non-numeric category",
			body: map[string]interface{}{
				"question": "Q?", "answer": "A", "category": "art", "difficulty": 1,
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed JSON",
			body:       `{"question": `,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTriviaFixture(t, 5, api.RouterDeps{})

			rec, body := do(t, f.handler, http.MethodPost, "/questions", tc.body, "")
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			if tc.wantStatus != http.StatusOK {
				assert.Equal(t, false, body["success"])
				return
			}
			assert.Equal(t, true, body["success"])
			assert.Equal(t, float64(6), body["created"])
			assert.Equal(t, float64(6), body["total_questions"])
			assert.Equal(t, 6, listLen(t, body["questions"]))
		})
	}
}

func TestSearchQuestions(t *testing.T) {
	f := newTriviaFixture(t, 19, api.RouterDeps{})

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantCount  int
	}{
		{"matching term", map[string]string{"searchTerm": "entitled"}, http.StatusOK, 1},
		{"case insensitive", map[string]string{"searchTerm": "ENTITLED"}, http.StatusOK, 1},
		{"no matches", map[string]string{"searchTerm": "xyzzy-not-there"}, http.StatusOK, 0},
		{"empty term matches everything", map[string]string{"searchTerm": ""}, http.StatusOK, 19},
		{"missing term", map[string]string{}, http.StatusBadRequest, 0},
		{"malformed JSON", `{"searchTerm"`, http.StatusBadRequest, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := do(t, f.handler, http.MethodPost, "/questions/search", tc.body, "")
			require.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus != http.StatusOK {
				assert.Equal(t, "bad request", body["message"])
				return
			}
			assert.Equal(t, true, body["success"])
			assert.Equal(t, tc.wantCount, listLen(t, body["questions"]))
			assert.Equal(t, float64(tc.wantCount), body["total_questions"])
			assert.Nil(t, body["current_category"])
		})
	}
}

func TestListCategories(t *testing.T) {
	f := newTriviaFixture(t, 3, api.RouterDeps{})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"default page", "/categories", http.StatusOK},
		{"first page", "/categories?page=1", http.StatusOK},
		{"beyond last page", "/categories?page=2", http.StatusNotFound},
		{"page zero", "/categories?page=0", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := do(t, f.handler, http.MethodGet, tc.path, nil, "")
			require.Equal(t, tc.wantStatus, rec.Code)

			if tc.wantStatus != http.StatusOK {
				assert.Equal(t, false, body["success"])
				return
			}
			assert.Equal(t, true, body["success"])
			categories, ok := body["categories"].(map[string]interface{})
			require.True(t, ok)
			assert.Len(t, categories, len(testCategories))
		})
	}
}

func TestQuestionsByCategory(t *testing.T) {
	f := newTriviaFixture(t, 12, api.RouterDeps{})

	t.Run("existing category", func(t *testing.T) {
		rec, body := do(t, f.handler, http.MethodGet, "/categories/1/questions", nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Science", body["current_category"])
		assert.Equal(t, 2, listLen(t, body["questions"]))
		for _, q := range body["questions"].([]interface{}) {
			assert.Equal(t, float64(1), q.(map[string]interface{})["category"])
		}
	})

	t.Run("missing category", func(t *testing.T) {
		rec, body := do(t, f.handler, http.MethodGet, "/categories/42/questions", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, body["success"])
	})
}

func TestNextQuizQuestion(t *testing.T) {
	f := newTriviaFixture(t, 12, api.RouterDeps{})

	t.Run("excludes previous questions", func(t *testing.T) {
		previous := []int{}
		for i := 0; i < 2; i++ {
			rec, body := do(t, f.handler, http.MethodPost, "/quizzes", map[string]interface{}{
				"previous_questions": previous,
				"quiz_category":      map[string]interface{}{"id": 1, "type": "Science"},
			}, "")
			require.Equal(t, http.StatusOK, rec.Code)
			q, ok := body["question"].(map[string]interface{})
			require.True(t, ok)
			id := int(q["id"].(float64))
			assert.NotContains(t, previous, id)
			assert.Equal(t, float64(1), q["category"])
			previous = append(previous, id)
		}

		rec, body := do(t, f.handler, http.MethodPost, "/quizzes", map[string]interface{}{
			"previous_questions": previous,
			"quiz_category":      map[string]interface{}{"id": "1", "type": "Science"},
		}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Contains(t, body, "question")
		assert.Nil(t, body["question"])
	})

	t.Run("all categories", func(t *testing.T) {
		rec, body := do(t, f.handler, http.MethodPost, "/quizzes", map[string]interface{}{
			"previous_questions": []int{1, 2, 3},
			"quiz_category":      map[string]interface{}{"id": 0, "type": "click"},
		}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		q := body["question"].(map[string]interface{})
		assert.Equal(t, float64(4), q["id"])
	})

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"unknown category", map[string]interface{}{
			"previous_questions": []int{},
			"quiz_category":      map[string]interface{}{"id": 77},
		}, http.StatusNotFound},
		{"missing quiz category", map[string]interface{}{"previous_questions": []int{}}, http.StatusBadRequest},
		{"malformed JSON", `not json`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := do(t, f.handler, http.MethodPost, "/quizzes", tc.body, "")
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, false, body["success"])
		})
	}
}
