package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	store UserStore
}

// NewUserService creates a new user service instance
func NewUserService(store UserStore) *UserServiceImpl {
	return &UserServiceImpl{
		store: store,
	}
}

// CreateUser creates a new user with a freshly generated id. Names need not be unique.
func (s *UserServiceImpl) CreateUser(ctx context.Context, name string) (*User, error) {
	user := &User{
		ID:   uuid.New(),
		Name: name,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.store.GetUser(ctx, userID)
}

// DeleteUser deletes a user. Messages referencing the user are left untouched.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.DeleteUser(ctx, userID)
}

// ListUsers returns all current users
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*User, error) {
	return s.store.ListUsers(ctx)
}
