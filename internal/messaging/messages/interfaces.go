//go:generate go run go.uber.org/mock/mockgen -destination=../mocks/mock_user_lookup.go -package=mocks github.com/ims/ims/internal/messaging/messages UserLookup
package messages

import (
	"context"

	"github.com/google/uuid"

	"github.com/ims/ims/internal/messaging/users"
)

// UserLookup is the only capability the message service needs from the user registry
type UserLookup interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*users.User, error)
}

// MessageStore defines the interface for message storage operations
type MessageStore interface {
	CreateMessage(ctx context.Context, message *Message) error
	GetMessage(ctx context.Context, messageID uuid.UUID) (*Message, error)
	ListMessages(ctx context.Context, match func(*Message) bool) ([]*Message, error)
	// DeleteMessageFor hides the message from userID and purges it once both
	// participants have deleted it. It reports whether the entry was purged.
	DeleteMessageFor(ctx context.Context, userID, messageID uuid.UUID) (bool, error)
}

// MessageService defines the interface for message service operations
type MessageService interface {
	SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*Message, error)
	GetUserMessages(ctx context.Context, userID uuid.UUID) ([]*Message, error)
	GetUserMessage(ctx context.Context, userID, messageID uuid.UUID) (*Message, error)
	DeleteUserMessages(ctx context.Context, userID uuid.UUID) error
	DeleteUserMessage(ctx context.Context, userID, messageID uuid.UUID) error
}
