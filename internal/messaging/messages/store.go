package messages

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/ims/ims/internal/messaging"
)

// InMemoryStore implements MessageStore with a mutex-guarded map.
// Every mutation of an entry, flags included, happens under the write lock.
type InMemoryStore struct {
	mu       sync.RWMutex
	messages map[uuid.UUID]*Message
}

// NewInMemoryStore creates a new in-memory message store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		messages: make(map[uuid.UUID]*Message),
	}
}

// CreateMessage stores a new message
func (s *InMemoryStore) CreateMessage(ctx context.Context, message *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[message.ID]; exists {
		return messaging.NewStorageConstraintError("create", "messages",
			messaging.NewMessageAlreadyExistsError(message.ID))
	}

	stored := *message
	s.messages[message.ID] = &stored
	return nil
}

// GetMessage retrieves a copy of a message regardless of its deletion flags
func (s *InMemoryStore) GetMessage(ctx context.Context, messageID uuid.UUID) (*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	message, exists := s.messages[messageID]
	if !exists {
		return nil, messaging.NewMessageNotFoundError(messageID)
	}

	found := *message
	return &found, nil
}

// ListMessages returns copies of all messages accepted by match, in no particular order
func (s *InMemoryStore) ListMessages(ctx context.Context, match func(*Message) bool) ([]*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := lo.PickBy(s.messages, func(_ uuid.UUID, message *Message) bool {
		return match(message)
	})

	return lo.MapToSlice(matched, func(_ uuid.UUID, message *Message) *Message {
		found := *message
		return &found
	}), nil
}

// DeleteMessageFor applies a participant's delete to the message
func (s *InMemoryStore) DeleteMessageFor(ctx context.Context, userID, messageID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, exists := s.messages[messageID]
	if !exists || !message.VisibleTo(userID) {
		return false, messaging.NewMessageNotFoundError(messageID)
	}

	message.markDeletedBy(userID)
	if !message.purgeable() {
		return false, nil
	}

	return s.remove(messageID), nil
}

// remove deletes the entry if present and reports whether it was. Caller holds mu.
func (s *InMemoryStore) remove(messageID uuid.UUID) bool {
	if _, exists := s.messages[messageID]; !exists {
		return false
	}
	delete(s.messages, messageID)
	return true
}
