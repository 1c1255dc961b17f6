package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fullstack-nd/trivia-coffee-api/internal/api/shared"
	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
)

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves GET /health.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler. A nil db skips the ping.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.FromContext(r.Context()).Error("health check failed", slog.String("error", err.Error()))
			shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{
				Status:   "unavailable",
				Database: "unreachable",
			})
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Success: true, Status: "ok", Database: "ok"})
}
