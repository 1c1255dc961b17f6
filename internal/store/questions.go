package store

import (
	"context"
	"database/sql"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
)

// QuestionStore defines persistence for trivia questions.
type QuestionStore interface {
	// List returns up to limit questions ordered by id, skipping offset rows.
	// An empty slice is returned when the window is past the last row.
	List(ctx context.Context, limit, offset int) ([]domain.Question, error)

	// Count returns the total number of questions.
	Count(ctx context.Context) (int, error)

	// Search returns every question whose text contains term,
	// case-insensitively, ordered by id.
	Search(ctx context.Context, term string) ([]domain.Question, error)

	// ListByCategory returns every question in the category, ordered by id.
	ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error)

	// Random picks one question not listed in exclude. A categoryID of zero
	// means any category. Returns ErrQuestionNotFound when nothing is left.
	Random(ctx context.Context, categoryID int, exclude []int) (*domain.Question, error)

	// GetByID retrieves a question. Returns ErrQuestionNotFound if absent.
	GetByID(ctx context.Context, id int) (*domain.Question, error)

	// Create inserts q and sets q.ID. A category that does not exist
	// yields ErrInvalidEntity.
	Create(ctx context.Context, q *domain.Question) error

	// Delete removes a question. Returns ErrQuestionNotFound if absent.
	Delete(ctx context.Context, id int) error

	// WithTx returns a QuestionStore bound to tx.
	WithTx(tx *sql.Tx) QuestionStore
}

// CategoryStore defines persistence for question categories.
type CategoryStore interface {
	// List returns every category ordered by id.
	List(ctx context.Context) ([]domain.Category, error)

	// GetByID retrieves a category. Returns ErrCategoryNotFound if absent.
	GetByID(ctx context.Context, id int) (*domain.Category, error)

	// Create inserts c. When c.ID is non-zero the id is kept, which lets
	// fixtures reference categories by a stable id.
	Create(ctx context.Context, c *domain.Category) error

	// WithTx returns a CategoryStore bound to tx.
	WithTx(tx *sql.Tx) CategoryStore
}
