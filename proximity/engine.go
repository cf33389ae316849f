package proximity

import (
	"context"
	"log"

	"github.com/das-globally-web/discovery-backend/models"
	"github.com/das-globally-web/discovery-backend/registry"
	"github.com/das-globally-web/discovery-backend/users"
)

// RadiusMeters is the fixed threshold for neighbor membership.
const RadiusMeters = 50.0

type Profile struct {
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

type Neighbor struct {
	UserID    string  `json:"userId"`
	User      Profile `json:"user"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance"`
}

// NearbyFrame is the full replacement snapshot pushed back to the mover on
// every position update.
type NearbyFrame struct {
	NearbyUsers []Neighbor `json:"nearbyUsers"`
}

// NewUserFrame is the enter notification pushed to a peer whose stored
// position falls within range of the mover's new position.
type NewUserFrame struct {
	NewUser Neighbor `json:"newUser"`
}

// Engine recomputes the mover's neighbor set against all tracked positions
// on every update and fans out the asymmetric enter notifications.
type Engine struct {
	positions PositionStore
	registry  *registry.Registry
	directory users.Directory
	radius    float64
}

func NewEngine(positions PositionStore, reg *registry.Registry, directory users.Directory) *Engine {
	return &Engine{
		positions: positions,
		registry:  reg,
		directory: directory,
		radius:    RadiusMeters,
	}
}

// UpdatePosition upserts the caller's position, scans every other tracked
// position, pushes the caller's complete neighbor snapshot back to them, and
// notifies each in-range peer that the caller entered their radius. Peers
// already in range before this update are re-notified; deduplication is out
// of scope. The neighbor list is returned for callers that want it directly.
func (e *Engine) UpdatePosition(ctx context.Context, userID string, lat, lng *float64) ([]Neighbor, error) {
	if lat == nil {
		return nil, &models.ValidationError{Field: "latitude"}
	}
	if lng == nil {
		return nil, &models.ValidationError{Field: "longitude"}
	}

	if err := e.positions.Upsert(ctx, userID, *lat, *lng); err != nil {
		return nil, err
	}

	snapshot, err := e.positions.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// Non-nil so an empty set renders as [] rather than null.
	neighbors := []Neighbor{}
	for _, pos := range snapshot {
		if pos.UserID == userID {
			continue // never a neighbor of yourself
		}

		d := Distance(*lat, *lng, pos.Latitude, pos.Longitude)
		if d > e.radius {
			continue
		}

		profile, err := e.directory.Get(ctx, pos.UserID)
		if err != nil {
			log.Printf("Skipping tracked user %s without profile: %v", pos.UserID, err)
			continue
		}

		neighbors = append(neighbors, Neighbor{
			UserID:    pos.UserID,
			User:      Profile{Name: profile.Name, ProfilePicture: profile.ProfilePicture},
			Latitude:  pos.Latitude,
			Longitude: pos.Longitude,
			Distance:  roundMeters(d),
		})
	}

	if err := e.registry.Send(userID, NearbyFrame{NearbyUsers: neighbors}); err != nil {
		log.Printf("Error pushing nearby users to %s: %v", userID, err)
	}

	e.notifyEntered(ctx, userID, *lat, *lng, neighbors)
	return neighbors, nil
}

// notifyEntered pushes the enter notification to every peer within range of
// the mover's new position. Distance is symmetric, so the in-range peers are
// exactly the mover's neighbors.
func (e *Engine) notifyEntered(ctx context.Context, userID string, lat, lng float64, neighbors []Neighbor) {
	if len(neighbors) == 0 {
		return
	}

	mover, err := e.directory.Get(ctx, userID)
	if err != nil {
		log.Printf("Skipping enter notifications for %s without profile: %v", userID, err)
		return
	}

	for _, n := range neighbors {
		frame := NewUserFrame{NewUser: Neighbor{
			UserID:    userID,
			User:      Profile{Name: mover.Name, ProfilePicture: mover.ProfilePicture},
			Latitude:  lat,
			Longitude: lng,
			Distance:  n.Distance,
		}}
		if err := e.registry.Send(n.UserID, frame); err != nil {
			log.Printf("Error pushing enter notification to %s: %v", n.UserID, err)
		}
	}
}

// Disconnect removes the caller's position record and deregisters the
// connection. Peers get no "user left" notification.
func (e *Engine) Disconnect(ctx context.Context, conn *registry.Connection) error {
	err := e.positions.Delete(ctx, conn.UserID)
	e.registry.Deregister(conn)
	return err
}
