package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/mocks"
	"github.com/fullstack-nd/trivia-coffee-api/internal/service"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

func seededTrivia(t *testing.T, n int) (service.TriviaService, *mocks.MockQuestionStore, *mocks.MockCategoryStore) {
	t.Helper()
	categories := mocks.NewMockCategoryStore(
		domain.Category{Type: "Science"},
		domain.Category{Type: "Art"},
		domain.Category{Type: "Geography"},
	)
	questions := mocks.NewMockQuestionStore()
	questions.Categories = categories
	for i := 1; i <= n; i++ {
		require.NoError(t, questions.Create(context.Background(), &domain.Question{
			Question:   fmt.Sprintf("question %d", i),
			Answer:     "answer",
			Category:   i%3 + 1,
			Difficulty: i%5 + 1,
		}))
	}
	svc, err := service.NewTriviaService(questions, categories, nil)
	require.NoError(t, err)
	return svc, questions, categories
}

func TestNewTriviaService_NilDependencies(t *testing.T) {
	_, err := service.NewTriviaService(nil, mocks.NewMockCategoryStore(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.NewTriviaService(mocks.NewMockQuestionStore(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTriviaService_ListQuestions(t *testing.T) {
	svc, _, _ := seededTrivia(t, 19)
	ctx := context.Background()

	tests := []struct {
		name    string
		page    int
		wantLen int
		wantErr error
	}{
		{name: "first page is full", page: 1, wantLen: 10},
		{name: "second page holds the rest", page: 2, wantLen: 9},
		{name: "past the end", page: 3, wantErr: service.ErrPageNotFound},
		{name: "far past the end", page: 1000, wantErr: service.ErrPageNotFound},
		{name: "zero page", page: 0, wantErr: service.ErrPageNotFound},
		{name: "negative page", page: -2, wantErr: service.ErrPageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, categories, err := svc.ListQuestions(ctx, tt.page)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, page.Questions, tt.wantLen)
			assert.Equal(t, 19, page.Total)
			assert.Len(t, categories, 3)
		})
	}
}

func TestTriviaService_ListQuestionsEmptyStore(t *testing.T) {
	svc, _, _ := seededTrivia(t, 0)

	_, _, err := svc.ListQuestions(context.Background(), 1)

	assert.ErrorIs(t, err, service.ErrPageNotFound)
}

func TestTriviaService_DeleteQuestion(t *testing.T) {
	svc, questions, _ := seededTrivia(t, 12)
	ctx := context.Background()

	page, err := svc.DeleteQuestion(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 11, page.Total)
	assert.Len(t, page.Questions, 10)
	for _, q := range page.Questions {
		assert.NotEqual(t, 5, q.ID)
	}

	_, err = questions.GetByID(ctx, 5)
	assert.ErrorIs(t, err, store.ErrQuestionNotFound)

	_, err = svc.DeleteQuestion(ctx, 5)
	assert.ErrorIs(t, err, store.ErrQuestionNotFound)
}

func TestTriviaService_DeleteLastQuestionReturnsEmptyPage(t *testing.T) {
	svc, _, _ := seededTrivia(t, 1)

	page, err := svc.DeleteQuestion(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Zero(t, page.Total)
}

func TestTriviaService_CreateQuestion(t *testing.T) {
	svc, _, _ := seededTrivia(t, 3)
	ctx := context.Background()

	q := &domain.Question{Question: "how dy?", Answer: "cool", Category: 3, Difficulty: 2}
	page, err := svc.CreateQuestion(ctx, q)

	require.NoError(t, err)
	assert.Equal(t, 4, q.ID)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, q.ID, page.Questions[len(page.Questions)-1].ID)

	dup := &domain.Question{Question: "how dy?", Answer: "cool", Category: 3, Difficulty: 2}
	_, err = svc.CreateQuestion(ctx, dup)
	require.NoError(t, err, "questions are not unique")
}

func TestTriviaService_CreateQuestionRejected(t *testing.T) {
	svc, questions, _ := seededTrivia(t, 2)
	ctx := context.Background()

	tests := []struct {
		name    string
		q       domain.Question
		wantErr error
	}{
		{name: "empty question", q: domain.Question{Answer: "a", Category: 1, Difficulty: 1}, wantErr: domain.ErrValidation},
		{name: "difficulty too high", q: domain.Question{Question: "q", Answer: "a", Category: 1, Difficulty: 6}, wantErr: domain.ErrValidation},
		{name: "unknown category", q: domain.Question{Question: "q", Answer: "a", Category: 42, Difficulty: 1}, wantErr: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.q
			_, err := svc.CreateQuestion(ctx, &q)
			assert.ErrorIs(t, err, tt.wantErr)

			n, _ := questions.Count(ctx)
			assert.Equal(t, 2, n)
		})
	}
}

func TestTriviaService_SearchQuestions(t *testing.T) {
	svc, questions, _ := seededTrivia(t, 0)
	ctx := context.Background()
	require.NoError(t, questions.Create(ctx, &domain.Question{
		Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", Category: 1, Difficulty: 2,
	}))
	require.NoError(t, questions.Create(ctx, &domain.Question{
		Question: "What is the heaviest organ?", Answer: "The Liver", Category: 1, Difficulty: 4,
	}))

	found, err := svc.SearchQuestions(ctx, "ENTITLED")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Maya Angelou", found[0].Answer)

	none, err := svc.SearchQuestions(ctx, "applejacks")
	require.NoError(t, err)
	assert.Empty(t, none)

	questions.SearchFn = func(context.Context, string) ([]domain.Question, error) {
		return nil, errors.New("connection reset")
	}
	_, err = svc.SearchQuestions(ctx, "x")
	var svcErr *service.ServiceError
	assert.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "search_questions", svcErr.Operation)
}

func TestTriviaService_ListCategories(t *testing.T) {
	svc, _, _ := seededTrivia(t, 0)
	ctx := context.Background()

	categories, err := svc.ListCategories(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	_, err = svc.ListCategories(ctx, 2)
	assert.ErrorIs(t, err, service.ErrPageNotFound)

	_, err = svc.ListCategories(ctx, 0)
	assert.ErrorIs(t, err, service.ErrPageNotFound)
}

func TestTriviaService_QuestionsByCategory(t *testing.T) {
	svc, _, _ := seededTrivia(t, 9)
	ctx := context.Background()

	category, questions, err := svc.QuestionsByCategory(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Art", category.Type)
	assert.Len(t, questions, 3)
	for _, q := range questions {
		assert.Equal(t, 2, q.Category)
	}

	_, _, err = svc.QuestionsByCategory(ctx, 99)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}

func TestTriviaService_NextQuizQuestion(t *testing.T) {
	svc, _, _ := seededTrivia(t, 6)
	ctx := context.Background()

	var previous []int
	for {
		q, err := svc.NextQuizQuestion(ctx, 1, previous)
		require.NoError(t, err)
		if q == nil {
			break
		}
		assert.Equal(t, 1, q.Category)
		assert.NotContains(t, previous, q.ID)
		previous = append(previous, q.ID)
	}
	assert.Len(t, previous, 2)

	q, err := svc.NextQuizQuestion(ctx, 0, []int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 6, q.ID)

	_, err = svc.NextQuizQuestion(ctx, 77, nil)
	assert.ErrorIs(t, err, store.ErrCategoryNotFound)
}
