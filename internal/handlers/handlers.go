// Package handlers exposes the HTTP surface: auth and task endpoints with
// typed request/response structs and the error-to-status mapping.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/taskvault/taskvault/internal/middleware"
	"github.com/taskvault/taskvault/internal/tasks"
	"github.com/taskvault/taskvault/internal/token"
	"github.com/taskvault/taskvault/internal/users"
	"github.com/taskvault/taskvault/internal/validation"
)

// Handler holds the services the HTTP layer delegates to.
type Handler struct {
	users  *users.Service
	tasks  *tasks.Service
	tokens *token.Service
	log    *zap.SugaredLogger
}

// New creates a new Handler.
func New(userSvc *users.Service, taskSvc *tasks.Service, tokenSvc *token.Service, log *zap.SugaredLogger) *Handler {
	return &Handler{
		users:  userSvc,
		tasks:  taskSvc,
		tokens: tokenSvc,
		log:    log,
	}
}

// Health reports that the service is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("Task Management API is running!"))
}

// errorResponse is the JSON error body. Fields is only set for
// validation failures.
type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// messageResponse is the JSON body for confirmation-only responses.
type messageResponse struct {
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status.
func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorw("failed to encode response", "error", err)
	}
}

// respondError maps err to an HTTP status per the error taxonomy.
// Anything unrecognized is a 500 whose detail is only logged.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, users.ErrUserExists):
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, users.ErrInvalidCredentials):
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, tasks.ErrNotFound):
		h.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.log.Errorw("internal error",
			"request_id", middleware.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON reads the request body into v. A malformed body is reported
// as a validation error on the body itself.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return validation.NewError("body")
	}
	return nil
}
