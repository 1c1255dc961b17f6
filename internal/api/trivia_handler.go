package api

import (
	"log/slog"
	"net/http"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api/shared"
	"github.com/fullstack-nd/trivia-coffee-api/internal/domain"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/service"
)

// TriviaHandler serves the question, category and quiz endpoints.
type TriviaHandler struct {
	trivia service.TriviaService
	logger *slog.Logger
}

// NewTriviaHandler creates a new TriviaHandler.
func NewTriviaHandler(trivia service.TriviaService, logger *slog.Logger) *TriviaHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TriviaHandler{
		trivia: trivia,
		logger: logger.With(slog.String("component", "trivia_handler")),
	}
}

// ListQuestions handles GET /questions?page=N.
func (h *TriviaHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page, categories, err := h.trivia.ListQuestions(r.Context(), pageParam(r))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuestionsResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		Categories:     domain.CategoryMap(categories),
	})
}

// DeleteQuestion handles DELETE /questions/{id}. Any failure, including an
// unknown id, is reported as 422.
func (h *TriviaHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	page, err := h.trivia.DeleteQuestion(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("question deleted", slog.Int("question_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, QuestionMutationResponse{
		Success:        true,
		Deleted:        id,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
	})
}

// CreateQuestion handles POST /questions. Any failure is reported as 422.
func (h *TriviaHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	q := &domain.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   int(req.Category),
		Difficulty: int(req.Difficulty),
	}
	page, err := h.trivia.CreateQuestion(r.Context(), q)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuestionMutationResponse{
		Success:        true,
		Created:        q.ID,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
	})
}

// SearchQuestions handles POST /questions/search.
func (h *TriviaHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchQuestionsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err)
		return
	}

	questions, err := h.trivia.SearchQuestions(r.Context(), *req.SearchTerm)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SearchResponse{
		Success:        true,
		Questions:      questions,
		TotalQuestions: len(questions),
	})
}

// ListCategories handles GET /categories?page=N.
func (h *TriviaHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.trivia.ListCategories(r.Context(), pageParam(r))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CategoriesResponse{
		Success:    true,
		Categories: domain.CategoryMap(categories),
	})
}

// QuestionsByCategory handles GET /categories/{id}/questions.
func (h *TriviaHandler) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, err)
		return
	}

	category, questions, err := h.trivia.QuestionsByCategory(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SearchResponse{
		Success:         true,
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: &category.Type,
	})
}

// NextQuizQuestion handles POST /quizzes.
func (h *TriviaHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, err)
		return
	}

	q, err := h.trivia.NextQuizQuestion(r.Context(), int(req.QuizCategory.ID), req.PreviousQuestions)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{Success: true, Question: q})
}
