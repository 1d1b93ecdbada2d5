package tasks

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory implementation of the Store interface.
// It is intended for testing and development purposes. The single mutex
// makes the (id, owner) check and the mutation one atomic step, matching
// the contract the MongoDB store gets from find-and-modify.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task // keyed by hex ID
}

// NewMemoryStore creates a new in-memory task store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]*Task),
	}
}

// Create persists task and assigns its ID.
func (s *MemoryStore) Create(ctx context.Context, task *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now

	stored := *task
	s.tasks[stored.ID.Hex()] = &stored

	return nil
}

// ListByOwner returns every task owned by userID.
func (s *MemoryStore) ListByOwner(ctx context.Context, userID string) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []Task{}
	for _, task := range s.tasks {
		if task.UserID == userID {
			result = append(result, *task)
		}
	}

	return result, nil
}

// GetByOwner returns the task matching (taskID, userID).
func (s *MemoryStore) GetByOwner(ctx context.Context, userID, taskID string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, ErrNotFound
	}

	copied := *task
	return &copied, nil
}

// UpdateByOwner applies patch under the store lock and returns the
// updated record.
func (s *MemoryStore) UpdateByOwner(ctx context.Context, userID, taskID string, patch Patch) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, ErrNotFound
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Deadline != nil {
		task.Deadline = *patch.Deadline
	}
	task.UpdatedAt = time.Now().UTC()

	copied := *task
	return &copied, nil
}

// DeleteByOwner removes the task matching (taskID, userID).
func (s *MemoryStore) DeleteByOwner(ctx context.Context, userID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return ErrNotFound
	}

	delete(s.tasks, taskID)
	return nil
}
