package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/das-globally-web/discovery-backend/models"
)

// MemoryStore keeps messages and conversation summaries in process memory.
// It mirrors the PgStore contract and backs the package tests.
type MemoryStore struct {
	mu sync.RWMutex

	nextMessageID      int
	nextConversationID int

	messages      map[int]*models.Message
	conversations map[string]*models.Conversation // pair key "low|high"
	byID          map[int]*models.Conversation

	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages:      make(map[int]*models.Message),
		conversations: make(map[string]*models.Conversation),
		byID:          make(map[int]*models.Conversation),
		now:           time.Now,
	}
}

func pairKey(a, b string) string {
	low, high := orderPair(a, b)
	return low + "|" + high
}

func (s *MemoryStore) AppendMessage(ctx context.Context, senderID, receiverID, body string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextMessageID++
	msg := &models.Message{
		ID:         s.nextMessageID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    body,
		CreatedAt:  s.now(),
	}
	s.messages[msg.ID] = msg
	return *msg, nil
}

func (s *MemoryStore) UpsertConversation(ctx context.Context, senderID, receiverID string, messageID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey(senderID, receiverID)
	conv, ok := s.conversations[key]
	if !ok {
		low, high := orderPair(senderID, receiverID)
		s.nextConversationID++
		conv = &models.Conversation{
			ID:       s.nextConversationID,
			UserLow:  low,
			UserHigh: high,
		}
		s.conversations[key] = conv
		s.byID[conv.ID] = conv
	}
	conv.LastMessageID = messageID
	return conv.ID, nil
}

func (s *MemoryStore) ConversationByID(ctx context.Context, id int) (models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.byID[id]
	if !ok {
		return models.Conversation{}, models.ErrNotFound
	}
	return *conv, nil
}

func (s *MemoryStore) MarkRead(ctx context.Context, receiverID, senderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range s.messages {
		if msg.ReceiverID == receiverID && msg.SenderID == senderID && !msg.IsRead {
			msg.IsRead = true
		}
	}
	return nil
}

func (s *MemoryStore) InboxSummaries(ctx context.Context, userID string) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summaries []Summary
	for _, conv := range s.conversations {
		if conv.UserLow != userID && conv.UserHigh != userID {
			continue
		}
		last, ok := s.messages[conv.LastMessageID]
		if !ok {
			continue
		}
		summaries = append(summaries, Summary{
			ConversationID: conv.ID,
			UserLow:        conv.UserLow,
			UserHigh:       conv.UserHigh,
			LastMessage:    *last,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i].LastMessage, summaries[j].LastMessage
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return summaries, nil
}

func (s *MemoryStore) History(ctx context.Context, userA, userB string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []models.Message
	for _, msg := range s.messages {
		direct := msg.SenderID == userA && msg.ReceiverID == userB
		reverse := msg.SenderID == userB && msg.ReceiverID == userA
		if direct || reverse {
			messages = append(messages, *msg)
		}
	}

	sort.Slice(messages, func(i, j int) bool {
		if messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}
