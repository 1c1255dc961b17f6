package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// MockDrinkStore implements store.DrinkStore over an in-memory map and
// enforces title uniqueness like the database constraint.
type MockDrinkStore struct {
	ListFn   func(ctx context.Context) ([]domain.Drink, error)
	CreateFn func(ctx context.Context, d *domain.Drink) error
	UpdateFn func(ctx context.Context, d *domain.Drink) error
	DeleteFn func(ctx context.Context, id int) error
	ResetFn  func(ctx context.Context) error

	mu     sync.Mutex
	drinks map[int]domain.Drink
	nextID int
}

// NewMockDrinkStore creates a store preloaded with the given drinks.
func NewMockDrinkStore(drinks ...domain.Drink) *MockDrinkStore {
	m := &MockDrinkStore{drinks: make(map[int]domain.Drink), nextID: 1}
	for _, d := range drinks {
		d := d
		_ = m.Create(context.Background(), &d)
	}
	return m
}

var _ store.DrinkStore = (*MockDrinkStore)(nil)

func copyDrink(d domain.Drink) domain.Drink {
	d.Recipe = append([]domain.Ingredient(nil), d.Recipe...)
	return d
}

func (m *MockDrinkStore) titleTaken(title string, exceptID int) bool {
	for id, d := range m.drinks {
		if d.Title == title && id != exceptID {
			return true
		}
	}
	return false
}

// List implements store.DrinkStore.
func (m *MockDrinkStore) List(ctx context.Context) ([]domain.Drink, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Drink, 0, len(m.drinks))
	for _, d := range m.drinks {
		out = append(out, copyDrink(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID implements store.DrinkStore.
func (m *MockDrinkStore) GetByID(_ context.Context, id int) (*domain.Drink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drinks[id]
	if !ok {
		return nil, store.ErrDrinkNotFound
	}
	d = copyDrink(d)
	return &d, nil
}

// CountByTitle implements store.DrinkStore.
func (m *MockDrinkStore) CountByTitle(_ context.Context, title string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, d := range m.drinks {
		if d.Title == title {
			n++
		}
	}
	return n, nil
}

// Create implements store.DrinkStore.
func (m *MockDrinkStore) Create(ctx context.Context, d *domain.Drink) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.titleTaken(d.Title, 0) {
		return store.ErrTitleExists
	}
	if d.ID == 0 {
		d.ID = m.nextID
	}
	if d.ID >= m.nextID {
		m.nextID = d.ID + 1
	}
	m.drinks[d.ID] = copyDrink(*d)
	return nil
}

// Update implements store.DrinkStore.
func (m *MockDrinkStore) Update(ctx context.Context, d *domain.Drink) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drinks[d.ID]; !ok {
		return store.ErrDrinkNotFound
	}
	if m.titleTaken(d.Title, d.ID) {
		return store.ErrTitleExists
	}
	m.drinks[d.ID] = copyDrink(*d)
	return nil
}

// Delete implements store.DrinkStore.
func (m *MockDrinkStore) Delete(ctx context.Context, id int) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drinks[id]; !ok {
		return store.ErrDrinkNotFound
	}
	delete(m.drinks, id)
	return nil
}

// Reset implements store.DrinkStore.
func (m *MockDrinkStore) Reset(ctx context.Context) error {
	if m.ResetFn != nil {
		return m.ResetFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drinks = make(map[int]domain.Drink)
	m.nextID = 1
	return nil
}
