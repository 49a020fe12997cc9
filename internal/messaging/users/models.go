package users

import (
	"github.com/google/uuid"
)

// User represents a person who can send and receive messages
type User struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Name string `json:"name" binding:"required"`
}
