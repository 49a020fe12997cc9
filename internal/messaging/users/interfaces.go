package users

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, userID uuid.UUID) (*User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ListUsers(ctx context.Context) ([]*User, error)
}

// UserService defines the interface for user service operations
type UserService interface {
	CreateUser(ctx context.Context, name string) (*User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ListUsers(ctx context.Context) ([]*User, error)
}
