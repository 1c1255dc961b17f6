package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore over an in-memory map.
type MockCategoryStore struct {
	ListFn func(ctx context.Context) ([]domain.Category, error)

	mu         sync.Mutex
	categories map[int]domain.Category
	nextID     int
}

// NewMockCategoryStore creates a store preloaded with the given categories.
func NewMockCategoryStore(categories ...domain.Category) *MockCategoryStore {
	m := &MockCategoryStore{categories: make(map[int]domain.Category), nextID: 1}
	for _, c := range categories {
		c := c
		_ = m.Create(context.Background(), &c)
	}
	return m
}

var _ store.CategoryStore = (*MockCategoryStore)(nil)

// List implements store.CategoryStore.
func (m *MockCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID implements store.CategoryStore.
func (m *MockCategoryStore) GetByID(_ context.Context, id int) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return &c, nil
}

// Create implements store.CategoryStore.
func (m *MockCategoryStore) Create(_ context.Context, c *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c.ID == 0 {
		c.ID = m.nextID
	}
	if c.ID >= m.nextID {
		m.nextID = c.ID + 1
	}
	m.categories[c.ID] = *c
	return nil
}

// WithTx returns the same store; the mock has no transactions.
func (m *MockCategoryStore) WithTx(_ *sql.Tx) store.CategoryStore {
	return m
}
