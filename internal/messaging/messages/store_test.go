package messages

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ims/ims/internal/messaging"
)

func newStoredMessage(t *testing.T, store *InMemoryStore, senderID, receiverID uuid.UUID) *Message {
	t.Helper()
	message := &Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Time:       time.Now().UTC(),
		Content:    "hi",
	}
	require.NoError(t, store.CreateMessage(context.Background(), message))
	return message
}

func TestInMemoryStoreCreateMessage(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	message := newStoredMessage(t, store, uuid.New(), uuid.New())

	err := store.CreateMessage(ctx, message)
	var storageErr *messaging.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, messaging.StorageErrorTypeConstraintViolation, storageErr.Type)

	var messageErr *messaging.MessageError
	require.ErrorAs(t, err, &messageErr)
	assert.Equal(t, messaging.MessageErrorTypeAlreadyExists, messageErr.Type)
	assert.False(t, errors.Is(err, messaging.ErrMessageNotFound))
}

func TestInMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	message := newStoredMessage(t, store, uuid.New(), uuid.New())

	fetched, err := store.GetMessage(ctx, message.ID)
	require.NoError(t, err)
	fetched.Content = "edited"
	fetched.DeletedBySender = true

	listed, err := store.ListMessages(ctx, func(*Message) bool { return true })
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "hi", listed[0].Content)
	assert.False(t, listed[0].DeletedBySender)
}

func TestInMemoryStoreDeleteMessageFor(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	senderID, receiverID := uuid.New(), uuid.New()
	message := newStoredMessage(t, store, senderID, receiverID)

	purged, err := store.DeleteMessageFor(ctx, senderID, message.ID)
	require.NoError(t, err)
	assert.False(t, purged)

	_, err = store.DeleteMessageFor(ctx, senderID, message.ID)
	assert.ErrorIs(t, err, messaging.ErrMessageNotFound)

	purged, err = store.DeleteMessageFor(ctx, receiverID, message.ID)
	require.NoError(t, err)
	assert.True(t, purged)

	_, err = store.GetMessage(ctx, message.ID)
	assert.ErrorIs(t, err, messaging.ErrMessageNotFound)
}

func TestInMemoryStoreConcurrentDeletes(t *testing.T) {
	ctx := context.Background()

	t.Run("SameRole", func(t *testing.T) {
		store := NewInMemoryStore()
		senderID, receiverID := uuid.New(), uuid.New()
		message := newStoredMessage(t, store, senderID, receiverID)

		// receiver side is already gone, so the winning sender delete purges
		_, err := store.DeleteMessageFor(ctx, receiverID, message.ID)
		require.NoError(t, err)

		const workers = 32
		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			purges   int
			notFound int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				purged, err := store.DeleteMessageFor(ctx, senderID, message.ID)
				mu.Lock()
				defer mu.Unlock()
				if purged {
					purges++
				}
				if errors.Is(err, messaging.ErrMessageNotFound) {
					notFound++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, purges)
		assert.Equal(t, workers-1, notFound)
		_, err = store.GetMessage(ctx, message.ID)
		assert.ErrorIs(t, err, messaging.ErrMessageNotFound)
	})

	t.Run("BothRoles", func(t *testing.T) {
		store := NewInMemoryStore()
		senderID, receiverID := uuid.New(), uuid.New()

		const count = 64
		ids := make([]uuid.UUID, 0, count)
		for i := 0; i < count; i++ {
			ids = append(ids, newStoredMessage(t, store, senderID, receiverID).ID)
		}

		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			purges int
		)
		for _, id := range ids {
			for _, userID := range []uuid.UUID{senderID, receiverID} {
				wg.Add(1)
				go func(userID, id uuid.UUID) {
					defer wg.Done()
					purged, err := store.DeleteMessageFor(ctx, userID, id)
					assert.NoError(t, err)
					if purged {
						mu.Lock()
						purges++
						mu.Unlock()
					}
				}(userID, id)
			}
		}
		wg.Wait()

		assert.Equal(t, count, purges)
		remaining, err := store.ListMessages(ctx, func(*Message) bool { return true })
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}
