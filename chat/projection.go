package chat

import (
	"context"
	"time"

	"github.com/das-globally-web/discovery-backend/models"
	"github.com/das-globally-web/discovery-backend/users"
)

// Projection serves the read-only inbox and history queries. It never
// mutates state and never touches the connection registry.
type Projection struct {
	store     Store
	directory users.Directory
}

func NewProjection(store Store, directory users.Directory) *Projection {
	return &Projection{store: store, directory: directory}
}

type OtherUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

type InboxEntry struct {
	ConversationID int       `json:"conversationId"`
	OtherUser      OtherUser `json:"otherUser"`
	LastMessage    string    `json:"lastMessage"`
	Timestamp      time.Time `json:"timestamp"`
}

type HistoryEntry struct {
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ListInbox returns every conversation involving callerID, newest last
// message first. When the caller sent the last message its text is replaced
// by a placeholder reflecting the read state, so the caller's own words are
// not echoed back in their inbox.
func (p *Projection) ListInbox(ctx context.Context, callerID string) ([]InboxEntry, error) {
	summaries, err := p.store.InboxSummaries(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, models.ErrNotFound
	}

	entries := make([]InboxEntry, 0, len(summaries))
	for _, sum := range summaries {
		otherID := sum.UserLow
		if otherID == callerID {
			otherID = sum.UserHigh
		}

		other, err := p.directory.Get(ctx, otherID)
		if err != nil {
			return nil, err
		}

		lastMessage := sum.LastMessage.Content
		if sum.LastMessage.SenderID == callerID {
			if sum.LastMessage.IsRead {
				lastMessage = "Message seen"
			} else {
				lastMessage = "Message sent"
			}
		}

		entries = append(entries, InboxEntry{
			ConversationID: sum.ConversationID,
			OtherUser: OtherUser{
				ID:             other.ID,
				Name:           other.Name,
				ProfilePicture: other.ProfilePicture,
			},
			LastMessage: lastMessage,
			Timestamp:   sum.LastMessage.CreatedAt,
		})
	}
	return entries, nil
}

// ListHistory returns all messages between the two users in either
// direction, oldest first.
func (p *Projection) ListHistory(ctx context.Context, callerID, peerID string) ([]HistoryEntry, error) {
	messages, err := p.store.History(ctx, callerID, peerID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, HistoryEntry{
			Sender:    msg.SenderID,
			Message:   msg.Content,
			Timestamp: msg.CreatedAt,
		})
	}
	return entries, nil
}
