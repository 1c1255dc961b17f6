package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

const questionColumns = `id, question, answer, category, difficulty`

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuestionStore creates a new QuestionStore over a connection
// pool or transaction. If logger is nil, a default logger will be used.
func NewPostgresQuestionStore(db store.DBTX, logger *slog.Logger) *PostgresQuestionStore {
	if db == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresQuestionStore{
		db:     db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// WithTx implements store.QuestionStore.WithTx
func (s *PostgresQuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &PostgresQuestionStore{db: tx, logger: s.logger}
}

// List implements store.QuestionStore.List
func (s *PostgresQuestionStore) List(ctx context.Context, limit, offset int) ([]domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("listing questions", slog.Int("limit", limit), slog.Int("offset", offset))

	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id LIMIT $1 OFFSET $2`
	return s.queryQuestions(ctx, log, query, limit, offset)
}

// Count implements store.QuestionStore.Count
func (s *PostgresQuestionStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count questions",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return n, nil
}

// Search implements store.QuestionStore.Search
func (s *PostgresQuestionStore) Search(ctx context.Context, term string) ([]domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("searching questions", slog.Int("term_length", len(term)))

	query := `SELECT ` + questionColumns + ` FROM questions
		WHERE question ILIKE $1 ESCAPE '\'
		ORDER BY id`
	return s.queryQuestions(ctx, log, query, "%"+escapeLike(term)+"%")
}

// ListByCategory implements store.QuestionStore.ListByCategory
func (s *PostgresQuestionStore) ListByCategory(ctx context.Context, categoryID int) ([]domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("listing questions by category", slog.Int("category_id", categoryID))

	query := `SELECT ` + questionColumns + ` FROM questions WHERE category = $1 ORDER BY id`
	return s.queryQuestions(ctx, log, query, categoryID)
}

// Random implements store.QuestionStore.Random
func (s *PostgresQuestionStore) Random(ctx context.Context, categoryID int, exclude []int) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + questionColumns + ` FROM questions
		WHERE ($1::int = 0 OR category = $1::int)
		  AND NOT (id = ANY ($2::int[]))
		ORDER BY random()
		LIMIT 1`

	q, err := scanQuestion(s.db.QueryRowContext(ctx, query, categoryID, intArray(exclude)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no quiz question left",
				slog.Int("category_id", categoryID),
				slog.Int("excluded", len(exclude)))
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to pick random question", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return q, nil
}

// GetByID implements store.QuestionStore.GetByID
func (s *PostgresQuestionStore) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	q, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrQuestionNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get question",
			slog.String("error", err.Error()),
			slog.Int("question_id", id))
		return nil, MapError(err)
	}
	return q, nil
}

// Create implements store.QuestionStore.Create
func (s *PostgresQuestionStore) Create(ctx context.Context, q *domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO questions (question, answer, category, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query, q.Question, q.Answer, q.Category, q.Difficulty).Scan(&q.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("question references unknown category", slog.Int("category_id", q.Category))
			return fmt.Errorf("%w: category %d not found", store.ErrInvalidEntity, q.Category)
		}
		log.Error("failed to create question", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("question created", slog.Int("question_id", q.ID), slog.Int("category_id", q.Category))
	return nil
}

// Delete implements store.QuestionStore.Delete
func (s *PostgresQuestionStore) Delete(ctx context.Context, id int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete question",
			slog.String("error", err.Error()),
			slog.Int("question_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrQuestionNotFound); err != nil {
		return err
	}

	log.Info("question deleted", slog.Int("question_id", id))
	return nil
}

func (s *PostgresQuestionStore) queryQuestions(
	ctx context.Context,
	log *slog.Logger,
	query string,
	args ...any,
) ([]domain.Question, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query questions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	questions := []domain.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row", slog.String("error", err.Error()))
			return nil, err
		}
		questions = append(questions, *q)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return questions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*domain.Question, error) {
	var q domain.Question
	if err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
		return nil, err
	}
	return &q, nil
}
