package chat

import (
	"context"
	"log"
	"sync"

	"github.com/das-globally-web/discovery-backend/models"
	"github.com/das-globally-web/discovery-backend/registry"
)

// Delivery is the frame pushed to a connected receiver after a message has
// been persisted.
type Delivery struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

// Engine persists inbound chat messages, keeps the conversation summary
// pointing at the latest message, and pushes to the receiver's live
// connection when there is one.
type Engine struct {
	store    Store
	registry *registry.Registry

	mu    sync.Mutex
	locks map[string]*sync.Mutex // pair key -> lock
}

func NewEngine(store Store, reg *registry.Registry) *Engine {
	return &Engine{
		store:    store,
		registry: reg,
		locks:    make(map[string]*sync.Mutex),
	}
}

// pairLock returns the mutex that linearizes persist+upsert per conversation
// pair, so the summary never ends up pointing at an older message than the
// last one persisted.
func (e *Engine) pairLock(a, b string) *sync.Mutex {
	key := pairKey(a, b)
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[key]
	if !ok {
		l = &sync.Mutex{}
		e.locks[key] = l
	}
	return l
}

// SendMessage validates, persists the message, upserts the conversation
// summary, and finally attempts a live push. Persistence always completes
// before the push so a client querying history right after a push sees the
// message. An offline receiver is not an error.
func (e *Engine) SendMessage(ctx context.Context, senderID, receiverID, body string) (models.Message, error) {
	if receiverID == "" {
		return models.Message{}, &models.ValidationError{Field: "receiverId"}
	}
	if body == "" {
		return models.Message{}, &models.ValidationError{Field: "message"}
	}

	lock := e.pairLock(senderID, receiverID)
	lock.Lock()
	defer lock.Unlock()

	msg, err := e.store.AppendMessage(ctx, senderID, receiverID, body)
	if err != nil {
		return models.Message{}, err
	}
	if _, err := e.store.UpsertConversation(ctx, senderID, receiverID, msg.ID); err != nil {
		return models.Message{}, err
	}

	if err := e.registry.Send(receiverID, Delivery{SenderID: senderID, Message: body}); err != nil {
		log.Printf("Error pushing message to user %s: %v", receiverID, err)
	}
	return msg, nil
}

// MarkSeen flags every unread message addressed to callerID in the given
// conversation as read. Idempotent. Read receipts are not broadcast.
func (e *Engine) MarkSeen(ctx context.Context, conversationID int, callerID string) error {
	conv, err := e.store.ConversationByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if callerID != conv.UserLow && callerID != conv.UserHigh {
		return models.ErrNotParticipant
	}

	other := conv.UserLow
	if callerID == conv.UserLow {
		other = conv.UserHigh
	}

	return e.store.MarkRead(ctx, callerID, other)
}
