// Package chat implements private message delivery: persistence of messages,
// maintenance of the per-pair conversation summary, live push to connected
// receivers, and the read-only inbox/history projections.
package chat

import (
	"context"

	"github.com/das-globally-web/discovery-backend/models"
)

// Summary is a conversation row joined with its latest message, as produced
// for the inbox projection.
type Summary struct {
	ConversationID int
	UserLow        string
	UserHigh       string
	LastMessage    models.Message
}

// Store is the keyed persistence layer behind the delivery engine. PgStore
// backs it with Postgres; MemoryStore is the in-process implementation used
// by tests.
type Store interface {
	// AppendMessage persists a new unread message and returns it with its
	// id and creation time filled in.
	AppendMessage(ctx context.Context, senderID, receiverID, body string) (models.Message, error)

	// UpsertConversation points the summary for the unordered pair
	// {senderID, receiverID} at messageID, creating the summary on first
	// contact. Returns the conversation id.
	UpsertConversation(ctx context.Context, senderID, receiverID string, messageID int) (int, error)

	// ConversationByID returns models.ErrNotFound when no such summary exists.
	ConversationByID(ctx context.Context, id int) (models.Conversation, error)

	// MarkRead flags every unread message from senderID to receiverID as read.
	MarkRead(ctx context.Context, receiverID, senderID string) error

	// InboxSummaries returns every conversation involving userID, ordered by
	// last-message time descending.
	InboxSummaries(ctx context.Context, userID string) ([]Summary, error)

	// History returns all messages between the two users in either direction,
	// ordered by creation time ascending.
	History(ctx context.Context, userA, userB string) ([]models.Message, error)
}

// orderPair returns the two ids in lexical order, the canonical form for
// unordered-pair lookups.
func orderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
