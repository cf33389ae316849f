package proximity

import (
	"context"
	"encoding/json"

	"github.com/das-globally-web/discovery-backend/models"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const positionsKey = "positions"

type storedPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RedisPositionStore keeps one hash field per tracked user, so positions
// survive a process restart and are visible to external tooling.
type RedisPositionStore struct {
	client *redis.Client
}

func NewRedisPositionStore(client *redis.Client) *RedisPositionStore {
	return &RedisPositionStore{client: client}
}

func (s *RedisPositionStore) Upsert(ctx context.Context, userID string, lat, lng float64) error {
	data, err := json.Marshal(storedPosition{Latitude: lat, Longitude: lng})
	if err != nil {
		return errors.Wrap(err, "marshal position")
	}
	if err := s.client.HSet(ctx, positionsKey, userID, data).Err(); err != nil {
		return errors.Wrap(err, "store position")
	}
	return nil
}

func (s *RedisPositionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.HDel(ctx, positionsKey, userID).Err(); err != nil {
		return errors.Wrap(err, "delete position")
	}
	return nil
}

func (s *RedisPositionStore) Snapshot(ctx context.Context) ([]models.Position, error) {
	fields, err := s.client.HGetAll(ctx, positionsKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "snapshot positions")
	}

	out := make([]models.Position, 0, len(fields))
	for userID, raw := range fields {
		var stored storedPosition
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			continue // skip unreadable records rather than failing the scan
		}
		out = append(out, models.Position{
			UserID:    userID,
			Latitude:  stored.Latitude,
			Longitude: stored.Longitude,
		})
	}
	return out, nil
}
