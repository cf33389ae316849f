package database

import (
	"context"
	"log"
)

// RunMigrations ensures tables are created if they don’t exist
func RunMigrations() {
	ctx := context.Background()

	migrations := []string{
		// Users Table (profile fields rendered into inbox entries and neighbor lists;
		// registration itself is handled elsewhere)
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			profile_picture VARCHAR(255),
			created_at TIMESTAMP DEFAULT NOW()
		);`,

		// Messages Table (private one-on-one chat only)
		`CREATE TABLE IF NOT EXISTS messages (
			id SERIAL PRIMARY KEY,
			sender_id VARCHAR(64) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			receiver_id VARCHAR(64) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			is_read BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW()
		);`,

		// Conversations Table: one row per unordered participant pair.
		// user_low/user_high are the pair in lexical order so lookups are
		// order-independent.
		`CREATE TABLE IF NOT EXISTS conversations (
			id SERIAL PRIMARY KEY,
			user_low VARCHAR(64) NOT NULL,
			user_high VARCHAR(64) NOT NULL,
			last_message_id INT REFERENCES messages(id),
			UNIQUE (user_low, user_high)
		);`,

		`CREATE INDEX IF NOT EXISTS idx_messages_pair
			ON messages (sender_id, receiver_id, created_at);`,
	}

	for _, query := range migrations {
		_, err := DB.Exec(ctx, query)
		if err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}

	log.Println("Migrations applied successfully.")
}
