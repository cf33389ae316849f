// Package users exposes read access to user profiles. Registration and
// profile editing are handled by a separate service; this backend only
// renders the name and picture into neighbor lists and inbox entries.
package users

import (
	"context"
	"sync"

	"github.com/das-globally-web/discovery-backend/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type Directory interface {
	Get(ctx context.Context, id string) (models.User, error)
}

type PgDirectory struct {
	pool *pgxpool.Pool
}

func NewPgDirectory(pool *pgxpool.Pool) *PgDirectory {
	return &PgDirectory{pool: pool}
}

func (d *PgDirectory) Get(ctx context.Context, id string) (models.User, error) {
	var user models.User
	query := "SELECT id, name, COALESCE(profile_picture, '') FROM users WHERE id = $1"
	err := d.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.ProfilePicture)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, errors.Wrap(err, "fetch user")
	}
	return user, nil
}

// MemoryDirectory is an in-memory Directory used by tests.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]models.User)}
}

func (d *MemoryDirectory) Put(user models.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.ID] = user
}

func (d *MemoryDirectory) Get(ctx context.Context, id string) (models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return user, nil
}
