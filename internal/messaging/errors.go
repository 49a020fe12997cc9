package messaging

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types for user and message registry operations.
//
// Both kinds are terminal for the request that raised them and propagate unchanged
// up to the transport boundary.

var (
	// ErrUserNotFound matches any *UserError of type not_found via errors.Is.
	ErrUserNotFound = errors.New("user not found")
	// ErrMessageNotFound matches any *MessageError of type not_found via errors.Is.
	ErrMessageNotFound = errors.New("message not found")
)

// UserError represents errors related to user operations
type UserError struct {
	Type    string
	UserID  uuid.UUID
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s] for user %s: %s (caused by: %v)", e.Type, e.UserID, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s] for user %s: %s", e.Type, e.UserID, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

func (e *UserError) Is(target error) bool {
	return target == ErrUserNotFound && e.Type == UserErrorTypeNotFound
}

// User error types
const (
	UserErrorTypeNotFound = "not_found"
)

// NewUserNotFoundError creates an error for when a user id does not resolve,
// whether it was never created or has already been deleted
func NewUserNotFoundError(userID uuid.UUID) *UserError {
	return &UserError{
		Type:    UserErrorTypeNotFound,
		UserID:  userID,
		Message: "user not found",
	}
}

// MessageError represents errors related to message operations.
//
// A message that exists but is hidden from the caller produces the same error as a
// message that never existed.
type MessageError struct {
	Type      string
	MessageID uuid.UUID
	Message   string
	Cause     error
}

func (e *MessageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("message error [%s] for message %s: %s (caused by: %v)", e.Type, e.MessageID, e.Message, e.Cause)
	}
	return fmt.Sprintf("message error [%s] for message %s: %s", e.Type, e.MessageID, e.Message)
}

func (e *MessageError) Unwrap() error {
	return e.Cause
}

func (e *MessageError) Is(target error) bool {
	return target == ErrMessageNotFound && e.Type == MessageErrorTypeNotFound
}

// Message error types
const (
	MessageErrorTypeNotFound      = "not_found"
	MessageErrorTypeAlreadyExists = "already_exists"
)

// NewMessageNotFoundError creates an error for when a message is absent or not
// visible to the requesting user
func NewMessageNotFoundError(messageID uuid.UUID) *MessageError {
	return &MessageError{
		Type:      MessageErrorTypeNotFound,
		MessageID: messageID,
		Message:   "message not found for the user",
	}
}

// NewMessageAlreadyExistsError creates an error for an id collision on insert
func NewMessageAlreadyExistsError(messageID uuid.UUID) *MessageError {
	return &MessageError{
		Type:      MessageErrorTypeAlreadyExists,
		MessageID: messageID,
		Message:   "message already exists and cannot be stored again",
	}
}

// StorageError represents errors related to registry operations
type StorageError struct {
	Type      string
	Operation string
	Resource  string
	Message   string
	Cause     error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("storage error [%s] during %s on %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Resource, e.Message, e.Cause)
	}
	return fmt.Sprintf("storage error [%s] during %s on %s: %s",
		e.Type, e.Operation, e.Resource, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Storage error types
const (
	StorageErrorTypeConstraintViolation = "constraint_violation"
)

// NewStorageConstraintError creates an error for constraint violations
func NewStorageConstraintError(operation, resource string, cause error) *StorageError {
	return &StorageError{
		Type:      StorageErrorTypeConstraintViolation,
		Operation: operation,
		Resource:  resource,
		Message:   "storage constraint violation",
		Cause:     cause,
	}
}

// IsNotFound reports whether err is a user or message not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrMessageNotFound)
}
