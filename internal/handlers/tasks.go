package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskvault/taskvault/internal/middleware"
	"github.com/taskvault/taskvault/internal/tasks"
	"github.com/taskvault/taskvault/internal/validation"
)

// deadlineLayouts are the accepted deadline formats, tried in order.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDeadline parses a request deadline string. An empty string parses
// to the zero time so the service reports the field as missing.
func parseDeadline(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, validation.NewError("deadline")
}

// createTaskRequest is the body for POST /api/tasks.
type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Deadline    string `json:"deadline"`
}

// updateTaskRequest is the body for PUT /api/tasks/{id}.
// Absent fields are left unchanged.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Deadline    *string `json:"deadline"`
}

// CreateTask handles POST /api/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	task, err := h.tasks.Create(r.Context(), middleware.UserID(r.Context()), tasks.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    deadline,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	list, err := h.tasks.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, list)
}

// GetTask handles GET /api/tasks/{id}.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.tasks.Get(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/{id}.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	patch := tasks.Patch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		patch.Deadline = &deadline
	}

	task, err := h.tasks.Update(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	err := h.tasks.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, messageResponse{Message: "task deleted"})
}
