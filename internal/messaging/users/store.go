package users

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ims/ims/internal/messaging"
)

// InMemoryStore implements UserStore with a mutex-guarded map.
// Callers always receive copies; stored values never leave the store.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

// NewInMemoryStore creates a new in-memory user store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: make(map[uuid.UUID]*User),
	}
}

// CreateUser stores a new user
func (s *InMemoryStore) CreateUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return messaging.NewStorageConstraintError("create", "users",
			fmt.Errorf("user with id %s already exists", user.ID))
	}

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// GetUser retrieves a user by ID
func (s *InMemoryStore) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, messaging.NewUserNotFoundError(userID)
	}

	found := *user
	return &found, nil
}

// DeleteUser removes a user if present
func (s *InMemoryStore) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[userID]; !exists {
		return messaging.NewUserNotFoundError(userID)
	}

	delete(s.users, userID)
	return nil
}

// ListUsers returns a snapshot of all users in no particular order
func (s *InMemoryStore) ListUsers(ctx context.Context) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.MapToSlice(s.users, func(_ uuid.UUID, user *User) *User {
		found := *user
		return &found
	}), nil
}
