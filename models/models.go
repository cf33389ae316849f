package models

import "time"

type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

type Message struct {
	ID         int       `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Conversation is the summary record for one unordered participant pair.
// UserLow/UserHigh hold the pair in lexical order so the pair is looked up
// the same way regardless of who sent first.
type Conversation struct {
	ID            int    `json:"id"`
	UserLow       string `json:"userLow"`
	UserHigh      string `json:"userHigh"`
	LastMessageID int    `json:"lastMessageId"`
}

// Position is the last known location of a user connected to the
// proximity feature. One record per user, not a history.
type Position struct {
	UserID    string  `json:"userId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
