package chat

import (
	"context"

	"github.com/das-globally-web/discovery-backend/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type PgStore struct {
	pool *pgxpool.Pool
}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) AppendMessage(ctx context.Context, senderID, receiverID, body string) (models.Message, error) {
	msg := models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    body,
	}

	query := `INSERT INTO messages (sender_id, receiver_id, content)
	          VALUES ($1, $2, $3) RETURNING id, is_read, created_at`
	err := s.pool.QueryRow(ctx, query, senderID, receiverID, body).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
	if err != nil {
		return models.Message{}, errors.Wrap(err, "append message")
	}
	return msg, nil
}

func (s *PgStore) UpsertConversation(ctx context.Context, senderID, receiverID string, messageID int) (int, error) {
	low, high := orderPair(senderID, receiverID)

	var id int
	query := `INSERT INTO conversations (user_low, user_high, last_message_id)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_low, user_high)
	          DO UPDATE SET last_message_id = EXCLUDED.last_message_id
	          RETURNING id`
	err := s.pool.QueryRow(ctx, query, low, high, messageID).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "upsert conversation")
	}
	return id, nil
}

func (s *PgStore) ConversationByID(ctx context.Context, id int) (models.Conversation, error) {
	var conv models.Conversation
	query := `SELECT id, user_low, user_high, COALESCE(last_message_id, 0)
	          FROM conversations WHERE id = $1`
	err := s.pool.QueryRow(ctx, query, id).Scan(&conv.ID, &conv.UserLow, &conv.UserHigh, &conv.LastMessageID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Conversation{}, models.ErrNotFound
		}
		return models.Conversation{}, errors.Wrap(err, "fetch conversation")
	}
	return conv, nil
}

func (s *PgStore) MarkRead(ctx context.Context, receiverID, senderID string) error {
	query := `UPDATE messages SET is_read = TRUE
	          WHERE receiver_id = $1 AND sender_id = $2 AND is_read = FALSE`
	_, err := s.pool.Exec(ctx, query, receiverID, senderID)
	if err != nil {
		return errors.Wrap(err, "mark messages read")
	}
	return nil
}

func (s *PgStore) InboxSummaries(ctx context.Context, userID string) ([]Summary, error) {
	query := `SELECT c.id, c.user_low, c.user_high,
	                 m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.created_at
	          FROM conversations c
	          JOIN messages m ON m.id = c.last_message_id
	          WHERE c.user_low = $1 OR c.user_high = $1
	          ORDER BY m.created_at DESC`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch inbox")
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		err = rows.Scan(
			&sum.ConversationID, &sum.UserLow, &sum.UserHigh,
			&sum.LastMessage.ID, &sum.LastMessage.SenderID, &sum.LastMessage.ReceiverID,
			&sum.LastMessage.Content, &sum.LastMessage.IsRead, &sum.LastMessage.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "scan inbox row")
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "fetch inbox")
	}
	return summaries, nil
}

func (s *PgStore) History(ctx context.Context, userA, userB string) ([]models.Message, error) {
	query := `SELECT id, sender_id, receiver_id, content, is_read, created_at
	          FROM messages
	          WHERE (sender_id = $1 AND receiver_id = $2)
	             OR (sender_id = $2 AND receiver_id = $1)
	          ORDER BY created_at`
	rows, err := s.pool.Query(ctx, query, userA, userB)
	if err != nil {
		return nil, errors.Wrap(err, "fetch history")
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		err = rows.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content, &msg.IsRead, &msg.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan history row")
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "fetch history")
	}
	return messages, nil
}
