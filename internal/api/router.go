package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api/shared"
	apiMiddleware "github.com/fullstack-nd/trivia-coffee-api/internal/api/middleware"
	"github.com/fullstack-nd/trivia-coffee-api/internal/auth"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/ratelimit"
	"github.com/fullstack-nd/trivia-coffee-api/internal/service"
)

// Permission scopes carried in the coffee-shop bearer token.
const (
	PermGetDrinksDetail = "get:drinks-detail"
	PermPostDrinks      = "post:drinks"
	PermPatchDrinks     = "patch:drinks"
	PermDeleteDrinks    = "delete:drinks"
)

// RouterDeps holds the collaborators shared by both routers.
type RouterDeps struct {
	Logger  *slog.Logger
	CORS    apiMiddleware.CORSPolicy
	Limiter ratelimit.Limiter
	DB      Pinger
}

// newBaseRouter applies the middleware stack and JSON fallbacks common to
// both APIs.
func newBaseRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(apiMiddleware.CORS(deps.CORS))
	r.Use(apiMiddleware.RateLimit(deps.Limiter))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed)
	})

	r.Get("/health", NewHealthHandler(deps.DB).Check)
	return r
}

// NewTriviaRouter builds the trivia API router.
func NewTriviaRouter(trivia service.TriviaService, deps RouterDeps) http.Handler {
	r := newBaseRouter(deps)
	h := NewTriviaHandler(trivia, deps.Logger)

	r.Get("/questions", h.ListQuestions)
	r.Post("/questions", h.CreateQuestion)
	r.Delete("/questions/{id}", h.DeleteQuestion)
	r.Post("/questions/search", h.SearchQuestions)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}/questions", h.QuestionsByCategory)
	r.Post("/quizzes", h.NextQuizQuestion)

	return r
}

// NewCoffeeRouter builds the coffee-shop API router. Every route except
// GET /drinks and /health requires the listed permissions.
func NewCoffeeRouter(drinks service.DrinkService, verifier auth.Verifier, deps RouterDeps) http.Handler {
	r := newBaseRouter(deps)
	h := NewDrinkHandler(drinks, deps.Logger)
	gate := apiMiddleware.NewAuthMiddleware(verifier)

	r.Get("/drinks", h.ListDrinks)
	r.With(gate.RequirePermissions(PermGetDrinksDetail)).Get("/drinks-detail", h.ListDrinkDetails)
	r.With(gate.RequirePermissions(PermPostDrinks)).Post("/drinks", h.CreateDrink)
	r.With(gate.RequirePermissions(PermPatchDrinks)).Patch("/drinks/{id}", h.UpdateDrink)
	r.With(gate.RequirePermissions(PermDeleteDrinks)).Delete("/drinks/{id}", h.DeleteDrink)
	r.With(gate.RequirePermissions(PermPatchDrinks, PermPostDrinks, PermDeleteDrinks)).
		Get("/clearall", h.ClearAll)

	return r
}
