package messages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ims/ims/internal/messaging"
)

// Service implements the MessageService interface.
// User lookups are made before any store call so no store lock is held across them.
type Service struct {
	store  MessageStore
	users  UserLookup
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new message service
func NewService(store MessageStore, users UserLookup, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// SendMessage validates both participants and stores a new message.
// Sending to oneself is allowed.
func (s *Service) SendMessage(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*Message, error) {
	if _, err := s.users.GetUser(ctx, senderID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUser(ctx, receiverID); err != nil {
		return nil, err
	}

	message := &Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Time:       s.now().UTC(),
		Content:    content,
	}

	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	return message, nil
}

// GetUserMessage returns a message visible to userID
func (s *Service) GetUserMessage(ctx context.Context, userID, messageID uuid.UUID) (*Message, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	message, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	// hidden and absent messages are reported identically
	if !message.VisibleTo(userID) {
		return nil, messaging.NewMessageNotFoundError(messageID)
	}

	return message, nil
}

// GetUserMessages returns every message sent or received by userID that it has not deleted
func (s *Service) GetUserMessages(ctx context.Context, userID uuid.UUID) ([]*Message, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.store.ListMessages(ctx, func(m *Message) bool {
		return m.VisibleTo(userID)
	})
}

// DeleteUserMessage deletes the message from userID's point of view
func (s *Service) DeleteUserMessage(ctx context.Context, userID, messageID uuid.UUID) error {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}

	purged, err := s.store.DeleteMessageFor(ctx, userID, messageID)
	if err != nil {
		return err
	}

	if purged {
		s.logger.Debug("Message purged after both participants deleted it",
			zap.String("message_id", messageID.String()),
			zap.String("user_id", userID.String()))
	}

	return nil
}

// DeleteUserMessages deletes every message userID takes part in.
// Already processed messages stay deleted if a later one fails.
func (s *Service) DeleteUserMessages(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}

	involved, err := s.store.ListMessages(ctx, func(m *Message) bool {
		return m.Involves(userID)
	})
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	ids := lo.Map(involved, func(m *Message, _ int) uuid.UUID { return m.ID })
	for _, messageID := range ids {
		err := s.DeleteUserMessage(ctx, userID, messageID)
		// already hidden from this user, or purged concurrently
		if errors.Is(err, messaging.ErrMessageNotFound) {
			continue
		}
		if err != nil {
			return err
		}
	}

	s.logger.Debug("Deleted user messages",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(ids)))

	return nil
}
