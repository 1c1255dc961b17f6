package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// MockQuestionStore implements store.QuestionStore over an in-memory map.
// Random returns the lowest eligible id so tests stay deterministic.
type MockQuestionStore struct {
	ListFn    func(ctx context.Context, limit, offset int) ([]domain.Question, error)
	CountFn   func(ctx context.Context) (int, error)
	SearchFn  func(ctx context.Context, term string) ([]domain.Question, error)
	RandomFn  func(ctx context.Context, categoryID int, exclude []int) (*domain.Question, error)
	CreateFn  func(ctx context.Context, q *domain.Question) error
	DeleteFn  func(ctx context.Context, id int) error
	GetByIDFn func(ctx context.Context, id int) (*domain.Question, error)

	// Categories, when set, makes Create reject unknown category ids the way
	// the foreign key does.
	Categories *MockCategoryStore

	mu        sync.Mutex
	questions map[int]domain.Question
	nextID    int
}

// NewMockQuestionStore creates a store preloaded with the given questions.
// Questions with a zero ID get one assigned.
func NewMockQuestionStore(questions ...domain.Question) *MockQuestionStore {
	m := &MockQuestionStore{questions: make(map[int]domain.Question), nextID: 1}
	for _, q := range questions {
		q := q
		_ = m.insert(&q)
	}
	return m
}

var _ store.QuestionStore = (*MockQuestionStore)(nil)

func (m *MockQuestionStore) insert(q *domain.Question) error {
	if q.ID == 0 {
		q.ID = m.nextID
	}
	if q.ID >= m.nextID {
		m.nextID = q.ID + 1
	}
	m.questions[q.ID] = *q
	return nil
}

func (m *MockQuestionStore) sorted(keep func(domain.Question) bool) []domain.Question {
	out := []domain.Question{}
	for _, q := range m.questions {
		if keep == nil || keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// List implements store.QuestionStore.
func (m *MockQuestionStore) List(ctx context.Context, limit, offset int) ([]domain.Question, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.sorted(nil)
	if offset < 0 || offset >= len(all) {
		return []domain.Question{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Count implements store.QuestionStore.
func (m *MockQuestionStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.questions), nil
}

// Search implements store.QuestionStore.
func (m *MockQuestionStore) Search(ctx context.Context, term string) ([]domain.Question, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	needle := strings.ToLower(term)
	return m.sorted(func(q domain.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

// ListByCategory implements store.QuestionStore.
func (m *MockQuestionStore) ListByCategory(_ context.Context, categoryID int) ([]domain.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(q domain.Question) bool { return q.Category == categoryID }), nil
}

// Random implements store.QuestionStore.
func (m *MockQuestionStore) Random(ctx context.Context, categoryID int, exclude []int) (*domain.Question, error) {
	if m.RandomFn != nil {
		return m.RandomFn(ctx, categoryID, exclude)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	skip := make(map[int]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	eligible := m.sorted(func(q domain.Question) bool {
		return !skip[q.ID] && (categoryID == 0 || q.Category == categoryID)
	})
	if len(eligible) == 0 {
		return nil, store.ErrQuestionNotFound
	}
	q := eligible[0]
	return &q, nil
}

// GetByID implements store.QuestionStore.
func (m *MockQuestionStore) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.questions[id]
	if !ok {
		return nil, store.ErrQuestionNotFound
	}
	return &q, nil
}

// Create implements store.QuestionStore.
func (m *MockQuestionStore) Create(ctx context.Context, q *domain.Question) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, q)
	}
	if m.Categories != nil {
		if _, err := m.Categories.GetByID(ctx, q.Category); err != nil {
			return store.ErrInvalidEntity
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = 0
	return m.insert(q)
}

// Delete implements store.QuestionStore.
func (m *MockQuestionStore) Delete(ctx context.Context, id int) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[id]; !ok {
		return store.ErrQuestionNotFound
	}
	delete(m.questions, id)
	return nil
}

// WithTx returns the same store; the mock has no transactions.
func (m *MockQuestionStore) WithTx(_ *sql.Tx) store.QuestionStore {
	return m
}
