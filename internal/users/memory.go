package users

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory implementation of the Store interface.
// It is intended for testing and development purposes.
type MemoryStore struct {
	mu sync.RWMutex

	users   map[string]*User // keyed by hex ID
	byEmail map[string]*User
}

// NewMemoryStore creates a new in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]*User),
		byEmail: make(map[string]*User),
	}
}

// Create persists user and assigns its ID.
func (s *MemoryStore) Create(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return ErrUserExists
	}

	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	s.users[stored.ID.Hex()] = &stored
	s.byEmail[stored.Email] = &stored

	return nil
}

// GetByEmail retrieves a user by email.
func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.byEmail[email]
	if !exists {
		return nil, ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

// GetByID retrieves a user by its hex ID.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}
