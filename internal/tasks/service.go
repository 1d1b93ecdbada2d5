package tasks

import (
	"context"
	"strings"

	"github.com/taskvault/taskvault/internal/validation"
)

// Service is the task CRUD state machine. Every operation takes the
// authenticated caller's user ID and delegates ownership enforcement to
// the store's compound predicate.
type Service struct {
	store Store
}

// NewService creates a new task service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create validates params, persists a new task owned by userID, and
// returns the full record including its assigned ID.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Task, error) {
	var v validation.Collector
	v.Require("title", params.Title)
	v.Require("description", params.Description)
	if params.Deadline.IsZero() {
		v.Fail("deadline")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	task := &Task{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Category:    params.Category,
		Deadline:    params.Deadline,
	}
	if err := s.store.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// List returns every task owned by userID, in store order.
func (s *Service) List(ctx context.Context, userID string) ([]Task, error) {
	return s.store.ListByOwner(ctx, userID)
}

// Get returns the task if it exists and belongs to userID.
func (s *Service) Get(ctx context.Context, userID, taskID string) (*Task, error) {
	return s.store.GetByOwner(ctx, userID, taskID)
}

// Update applies the non-nil fields of patch to the task matching
// (taskID, userID) and returns the post-update record. Required fields
// may not be patched to empty values.
func (s *Service) Update(ctx context.Context, userID, taskID string, patch Patch) (*Task, error) {
	var v validation.Collector
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		v.Fail("title")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		v.Fail("description")
	}
	if patch.Deadline != nil && patch.Deadline.IsZero() {
		v.Fail("deadline")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	return s.store.UpdateByOwner(ctx, userID, taskID, patch)
}

// Delete removes the task matching (taskID, userID).
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	return s.store.DeleteByOwner(ctx, userID, taskID)
}
