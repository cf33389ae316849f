package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/das-globally-web/discovery-backend/models"
	"github.com/das-globally-web/discovery-backend/registry"
	"github.com/das-globally-web/discovery-backend/users"
)

func newTestProjection() (*Projection, *Engine, *MemoryStore, *users.MemoryDirectory) {
	store := NewMemoryStore()
	directory := users.NewMemoryDirectory()
	engine := NewEngine(store, registry.New())
	return NewProjection(store, directory), engine, store, directory
}

func seedUsers(directory *users.MemoryDirectory, ids ...string) {
	for _, id := range ids {
		directory.Put(models.User{ID: id, Name: "User " + id, ProfilePicture: "https://pics.example/" + id + ".png"})
	}
}

func TestListInboxOrdering(t *testing.T) {
	projection, engine, store, directory := newTestProjection()
	seedUsers(directory, "alice", "bob", "carol", "dave")
	ctx := context.Background()

	// Advance the store clock so each conversation has a distinct last-message time.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	if _, err := engine.SendMessage(ctx, "alice", "bob", "oldest"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := engine.SendMessage(ctx, "carol", "alice", "middle"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := engine.SendMessage(ctx, "alice", "dave", "newest"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	entries, err := projection.ListInbox(ctx, "alice")
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(entries))
	}

	wantOrder := []string{"dave", "carol", "bob"}
	for i, want := range wantOrder {
		if entries[i].OtherUser.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, entries[i].OtherUser.ID)
		}
	}
	for i := 1; i < len(entries); i++ {
		if !entries[i-1].Timestamp.After(entries[i].Timestamp) {
			t.Fatalf("expected strictly descending timestamps, got %v then %v",
				entries[i-1].Timestamp, entries[i].Timestamp)
		}
	}
}

func TestListInboxPlaceholders(t *testing.T) {
	projection, engine, store, directory := newTestProjection()
	seedUsers(directory, "alice", "bob")
	ctx := context.Background()

	if _, err := engine.SendMessage(ctx, "alice", "bob", "are we still on?"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	// Sender sees a placeholder, not their own words.
	entries, err := projection.ListInbox(ctx, "alice")
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if entries[0].LastMessage != "Message sent" {
		t.Fatalf("expected \"Message sent\", got %q", entries[0].LastMessage)
	}

	// Receiver sees the literal text.
	entries, err = projection.ListInbox(ctx, "bob")
	if err != nil {
		t.Fatalf("ListInbox failed: %v", err)
	}
	if entries[0].LastMessage != "are we still on?" {
		t.Fatalf("expected literal text, got %q", entries[0].LastMessage)
	}
	if entries[0].OtherUser.Name != "User alice" {
		t.Fatalf("expected the other participant's profile, got %+v", entries[0].OtherUser)
	}

	// After the receiver marks the conversation seen, the sender's
	// placeholder flips.
	summaries, _ := store.InboxSummaries(ctx, "bob")
	if err := engine.MarkSeen(ctx, summaries[0].ConversationID, "bob"); err != nil {
		t.Fatalf("MarkSeen failed: %v", err)
	}
	entries, _ = projection.ListInbox(ctx, "alice")
	if entries[0].LastMessage != "Message seen" {
		t.Fatalf("expected \"Message seen\", got %q", entries[0].LastMessage)
	}
}

func TestListInboxEmpty(t *testing.T) {
	projection, _, _, _ := newTestProjection()

	_, err := projection.ListInbox(context.Background(), "loner")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty inbox, got %v", err)
	}
}

func TestListHistoryBothDirections(t *testing.T) {
	projection, engine, _, directory := newTestProjection()
	seedUsers(directory, "alice", "bob", "carol")
	ctx := context.Background()

	if _, err := engine.SendMessage(ctx, "alice", "bob", "ping"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := engine.SendMessage(ctx, "bob", "alice", "pong"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if _, err := engine.SendMessage(ctx, "alice", "carol", "unrelated"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	entries, err := projection.ListHistory(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(entries))
	}
	if entries[0].Sender != "alice" || entries[0].Message != "ping" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Sender != "bob" || entries[1].Message != "pong" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}

	// History with a stranger is just empty, not an error.
	entries, err = projection.ListHistory(ctx, "bob", "carol")
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}
