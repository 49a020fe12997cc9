package messages

import (
	"time"

	"github.com/google/uuid"
)

// Message represents a direct message between two users.
// The deletion flags are registry bookkeeping and are never serialized.
type Message struct {
	ID                uuid.UUID `json:"id"`
	SenderID          uuid.UUID `json:"sender_id"`
	ReceiverID        uuid.UUID `json:"receiver_id"`
	Time              time.Time `json:"time"`
	Content           string    `json:"content"`
	DeletedBySender   bool      `json:"-"`
	DeletedByReceiver bool      `json:"-"`
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	ReceiverID *uuid.UUID `json:"receiver_id" binding:"required"`
	Content    string     `json:"content" binding:"required"`
}

// Involves reports whether userID is the sender or receiver, regardless of deletion state
func (m *Message) Involves(userID uuid.UUID) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// VisibleTo reports whether the message is still visible to userID
func (m *Message) VisibleTo(userID uuid.UUID) bool {
	return (m.SenderID == userID && !m.DeletedBySender) ||
		(m.ReceiverID == userID && !m.DeletedByReceiver)
}

// markDeletedBy sets the flag for every role userID holds. The other flag is left as is.
func (m *Message) markDeletedBy(userID uuid.UUID) {
	if m.SenderID == userID {
		m.DeletedBySender = true
	}
	if m.ReceiverID == userID {
		m.DeletedByReceiver = true
	}
}

// purgeable reports whether both participants have deleted the message
func (m *Message) purgeable() bool {
	return m.DeletedBySender && m.DeletedByReceiver
}
