package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api"
	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/mocks"
	"github.com/fullstack-nd/trivia-coffee-api/internal/service"
)

var testCategories = []domain.Category{
	{Type: "Science"},
	{Type: "Art"},
	{Type: "Geography"},
	{Type: "History"},
	{Type: "Entertainment"},
	{Type: "Sports"},
}

// testQuestions returns n questions spread over the test categories. The
// fourth question contains "entitled".
func testQuestions(n int) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		text := fmt.Sprintf("Question number %d?", i)
		if i == 4 {
			text = "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?"
		}
		out = append(out, domain.Question{
			Question:   text,
			Answer:     fmt.Sprintf("answer %d", i),
			Category:   (i-1)%len(testCategories) + 1,
			Difficulty: (i-1)%5 + 1,
		})
	}
	return out
}

type triviaFixture struct {
	questions  *mocks.MockQuestionStore
	categories *mocks.MockCategoryStore
	handler    http.Handler
}

func newTriviaFixture(t *testing.T, questionCount int, deps api.RouterDeps) *triviaFixture {
	t.Helper()

	categories := mocks.NewMockCategoryStore(testCategories...)
	questions := mocks.NewMockQuestionStore(testQuestions(questionCount)...)
	questions.Categories = categories

	svc, err := service.NewTriviaService(questions, categories, nil)
	require.NoError(t, err)

	return &triviaFixture{
		questions:  questions,
		categories: categories,
		handler:    api.NewTriviaRouter(svc, deps),
	}
}

const (
	tokenReader   = "reader"
	tokenBarista  = "barista"
	tokenManager  = "manager"
	tokenNoClaims = "no-claims"
)

type coffeeFixture struct {
	drinks  *mocks.MockDrinkStore
	handler http.Handler
}

func newCoffeeFixture(t *testing.T, deps api.RouterDeps, drinks ...domain.Drink) *coffeeFixture {
	t.Helper()

	store := mocks.NewMockDrinkStore(drinks...)
	svc, err := service.NewDrinkService(store, nil)
	require.NoError(t, err)

	verifier := &mocks.MockVerifier{Tokens: map[string][]string{
		tokenReader:  {api.PermGetDrinksDetail},
		tokenBarista: {api.PermGetDrinksDetail, api.PermPostDrinks},
		tokenManager: {
			api.PermGetDrinksDetail,
			api.PermPostDrinks,
			api.PermPatchDrinks,
			api.PermDeleteDrinks,
		},
		tokenNoClaims: nil,
	}}

	return &coffeeFixture{
		drinks:  store,
		handler: api.NewCoffeeRouter(svc, verifier, deps),
	}
}

// do sends a request and decodes the JSON response body into a map.
func do(
	t *testing.T,
	h http.Handler,
	method, path string,
	body interface{},
	token string,
) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func listLen(t *testing.T, v interface{}) int {
	t.Helper()
	if v == nil {
		return 0
	}
	list, ok := v.([]interface{})
	require.True(t, ok, "expected a JSON array, got %T", v)
	return len(list)
}
