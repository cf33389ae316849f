// Package proximity tracks the current position of every user connected to
// the location feature and notifies users of neighbors within a fixed
// 50-meter radius.
package proximity

import (
	"context"
	"sync"

	"github.com/das-globally-web/discovery-backend/models"
)

// PositionStore holds one current-position record per tracked user. Snapshot
// returns a consistent copy for the neighbor scan; updates from other users
// may or may not be reflected in a given snapshot.
type PositionStore interface {
	Upsert(ctx context.Context, userID string, lat, lng float64) error
	Delete(ctx context.Context, userID string) error
	Snapshot(ctx context.Context) ([]models.Position, error)
}

// MemoryPositionStore keeps positions in a guarded map. Scans are read-heavy,
// so readers share a lock and only upserts serialize.
type MemoryPositionStore struct {
	mu        sync.RWMutex
	positions map[string]models.Position
}

func NewMemoryPositionStore() *MemoryPositionStore {
	return &MemoryPositionStore{positions: make(map[string]models.Position)}
}

func (s *MemoryPositionStore) Upsert(ctx context.Context, userID string, lat, lng float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[userID] = models.Position{UserID: userID, Latitude: lat, Longitude: lng}
	return nil
}

func (s *MemoryPositionStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, userID)
	return nil
}

func (s *MemoryPositionStore) Snapshot(ctx context.Context) ([]models.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Position, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	return out, nil
}
