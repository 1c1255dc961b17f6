package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fullstack-nd/trivia-coffee-api/internal/platform/logger"
	"github.com/fullstack-nd/trivia-coffee-api/internal/redact"
)

// Client-facing messages per status.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusForbidden:           "forbidden",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusNotAcceptable:       "could not create new resource",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusTooManyRequests:     "too many requests",
	http.StatusInternalServerError: "internal server error",
}

// StatusMessage returns the fixed message sent with status.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// ErrorResponse is the error envelope shared by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes the error envelope for status with its fixed
// message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int) {
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   status,
		Message: StatusMessage(status),
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog writes the error envelope for status and logs err
// in redacted form. The raw error never reaches the client.
//
// 5xx responses log at ERROR, 429 at WARN and other 4xx at DEBUG.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, err error) {
	attrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	level := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status == http.StatusTooManyRequests:
		level = slog.LevelWarn
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithError(w, r, status)
}

// RespondWithAuthError writes the authorization failure envelope. The HTTP
// status is always 401; the status associated with the failure is logged.
func RespondWithAuthError(
	w http.ResponseWriter,
	r *http.Request,
	code, description string,
	carriedStatus int,
) {
	logger.FromContext(r.Context()).Info("authorization failed",
		slog.String("path", r.URL.Path),
		slog.String("code", code),
		slog.Int("carried_status", carriedStatus))

	RespondWithJSON(w, r, http.StatusUnauthorized, ErrorResponse{
		Error:   http.StatusUnauthorized,
		Message: description,
		Code:    code,
		TraceID: GetTraceID(r.Context()),
	})
}
