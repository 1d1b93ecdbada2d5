// Package tasks provides per-user task CRUD with ownership enforcement.
//
// Every read and mutation is constrained by the (task ID, owner) pair in a
// single store operation. A task that does not exist and a task owned by
// someone else are indistinguishable to callers: both are ErrNotFound.
package tasks

import (
	"context"
	"errors"
)

// ErrNotFound indicates the task does not exist or is owned by another
// user. The two cases are deliberately not told apart.
var ErrNotFound = errors.New("task not found")

// Store persists task records. Implementations must apply the owner
// constraint atomically with the lookup; checking ownership after a fetch
// is not equivalent.
type Store interface {
	// Create persists task and assigns its ID.
	Create(ctx context.Context, task *Task) error

	// ListByOwner returns every task owned by userID. An empty slice is
	// a valid result.
	ListByOwner(ctx context.Context, userID string) ([]Task, error)

	// GetByOwner returns the task matching (taskID, userID).
	GetByOwner(ctx context.Context, userID, taskID string) (*Task, error)

	// UpdateByOwner applies patch to the task matching (taskID, userID)
	// in a single lookup-and-modify step and returns the updated record.
	UpdateByOwner(ctx context.Context, userID, taskID string, patch Patch) (*Task, error)

	// DeleteByOwner removes the task matching (taskID, userID). Of two
	// concurrent deletes of the same task, exactly one succeeds.
	DeleteByOwner(ctx context.Context, userID, taskID string) error
}
