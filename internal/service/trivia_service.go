package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/store"
)

// QuestionsPerPage is the fixed page size for question and category listings.
const QuestionsPerPage = 10

// QuestionPage is one page of questions together with the total count.
type QuestionPage struct {
	Questions []domain.Question
	Total     int
}

// TriviaService provides the trivia operations.
type TriviaService interface {
	// ListQuestions returns the given 1-based page of questions plus all
	// categories. An empty page yields ErrPageNotFound.
	ListQuestions(ctx context.Context, page int) (*QuestionPage, []domain.Category, error)

	// DeleteQuestion removes a question and returns the first page afterwards.
	DeleteQuestion(ctx context.Context, id int) (*QuestionPage, error)

	// CreateQuestion validates and stores a question and returns the first
	// page afterwards. No uniqueness check is made.
	CreateQuestion(ctx context.Context, q *domain.Question) (*QuestionPage, error)

	// SearchQuestions returns every question containing term, ignoring case.
	SearchQuestions(ctx context.Context, term string) ([]domain.Question, error)

	// ListCategories applies the page cutoff to the category set and returns
	// the whole set when the page is not empty.
	ListCategories(ctx context.Context, page int) ([]domain.Category, error)

	// QuestionsByCategory returns the category and all of its questions.
	QuestionsByCategory(ctx context.Context, categoryID int) (*domain.Category, []domain.Question, error)

	// NextQuizQuestion picks a random question from the category (0 means
	// any) that is not in previous. It returns nil, nil when none remain.
	NextQuizQuestion(ctx context.Context, categoryID int, previous []int) (*domain.Question, error)
}

type triviaService struct {
	questions  store.QuestionStore
	categories store.CategoryStore
	logger     *slog.Logger
}

var _ TriviaService = (*triviaService)(nil)

// NewTriviaService creates a TriviaService.
// It returns an error if any of the required dependencies are nil.
func NewTriviaService(
	questions store.QuestionStore,
	categories store.CategoryStore,
	logger *slog.Logger,
) (TriviaService, error) {
	if questions == nil {
		return nil, domain.NewValidationError("questions", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &triviaService{
		questions:  questions,
		categories: categories,
		logger:     logger.With(slog.String("component", "trivia_service")),
	}, nil
}

// pageBounds returns the slice bounds of a 1-based page, or ok=false for
// pages below 1.
func pageBounds(page int) (offset int, ok bool) {
	if page < 1 {
		return 0, false
	}
	return (page - 1) * QuestionsPerPage, true
}

func (s *triviaService) page(ctx context.Context, page int) (*QuestionPage, error) {
	offset, ok := pageBounds(page)
	if !ok {
		return &QuestionPage{Questions: []domain.Question{}}, nil
	}
	questions, err := s.questions.List(ctx, QuestionsPerPage, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.questions.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{Questions: questions, Total: total}, nil
}

func (s *triviaService) ListQuestions(
	ctx context.Context,
	page int,
) (*QuestionPage, []domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.page(ctx, page)
	if err != nil {
		log.Error("failed to list questions", slog.String("error", err.Error()), slog.Int("page", page))
		return nil, nil, NewServiceError("list_questions", "failed to load page", err)
	}
	if len(result.Questions) == 0 {
		log.Debug("question page is empty", slog.Int("page", page))
		return nil, nil, ErrPageNotFound
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, nil, NewServiceError("list_questions", "failed to load categories", err)
	}
	return result, categories, nil
}

func (s *triviaService) DeleteQuestion(ctx context.Context, id int) (*QuestionPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.questions.Delete(ctx, id); err != nil {
		log.Warn("failed to delete question", slog.String("error", err.Error()), slog.Int("question_id", id))
		return nil, NewServiceError("delete_question", "failed to delete question", err)
	}

	result, err := s.page(ctx, 1)
	if err != nil {
		return nil, NewServiceError("delete_question", "failed to reload questions", err)
	}
	return result, nil
}

func (s *triviaService) CreateQuestion(ctx context.Context, q *domain.Question) (*QuestionPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := q.Validate(); err != nil {
		log.Debug("question rejected", slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.questions.Create(ctx, q); err != nil {
		log.Warn("failed to create question", slog.String("error", err.Error()))
		return nil, NewServiceError("create_question", "failed to save question", err)
	}

	result, err := s.page(ctx, 1)
	if err != nil {
		return nil, NewServiceError("create_question", "failed to reload questions", err)
	}
	return result, nil
}

func (s *triviaService) SearchQuestions(ctx context.Context, term string) ([]domain.Question, error) {
	questions, err := s.questions.Search(ctx, term)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to search questions",
			slog.String("error", err.Error()))
		return nil, NewServiceError("search_questions", "search failed", err)
	}
	return questions, nil
}

func (s *triviaService) ListCategories(ctx context.Context, page int) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	categories, err := s.categories.List(ctx)
	if err != nil {
		log.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, NewServiceError("list_categories", "failed to load categories", err)
	}

	offset, ok := pageBounds(page)
	if !ok || offset >= len(categories) {
		log.Debug("category page is empty", slog.Int("page", page))
		return nil, ErrPageNotFound
	}
	return categories, nil
}

func (s *triviaService) QuestionsByCategory(
	ctx context.Context,
	categoryID int,
) (*domain.Category, []domain.Question, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, NewServiceError("questions_by_category", "failed to load category", err)
	}
	questions, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list category questions",
			slog.String("error", err.Error()),
			slog.Int("category_id", categoryID))
		return nil, nil, NewServiceError("questions_by_category", "failed to load questions", err)
	}
	return category, questions, nil
}

func (s *triviaService) NextQuizQuestion(
	ctx context.Context,
	categoryID int,
	previous []int,
) (*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if categoryID != 0 {
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			return nil, NewServiceError("next_quiz_question", "failed to load category", err)
		}
	}

	q, err := s.questions.Random(ctx, categoryID, previous)
	if err != nil {
		if errors.Is(err, store.ErrQuestionNotFound) {
			log.Debug("quiz exhausted",
				slog.Int("category_id", categoryID),
				slog.Int("previous", len(previous)))
			return nil, nil
		}
		log.Error("failed to pick quiz question", slog.String("error", err.Error()))
		return nil, NewServiceError("next_quiz_question", "failed to pick question", err)
	}
	return q, nil
}
