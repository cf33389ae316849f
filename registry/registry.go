// Package registry tracks the single live connection per user and fans
// outbound events to it. It is the only mutable structure shared between the
// chat and proximity features.
package registry

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Connection
}

func New() *Registry {
	return &Registry{
		conns: make(map[string]*Connection),
	}
}

// Register stores conn as the live connection for its user and returns the
// connection it replaced, if any. The caller decides whether to close the
// replaced connection, so no socket is orphaned silently.
func (r *Registry) Register(conn *Connection) *Connection {
	r.mu.Lock()
	prev := r.conns[conn.UserID]
	r.conns[conn.UserID] = conn
	r.mu.Unlock()

	if prev == conn {
		return nil
	}
	return prev
}

// Deregister removes the entry for conn's user only if conn is still the
// stored connection. A stale disconnect from a replaced connection never
// evicts a newer one.
func (r *Registry) Deregister(conn *Connection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.conns[conn.UserID]
	if !ok || current.ID != conn.ID {
		return false
	}
	delete(r.conns, conn.UserID)
	return true
}

// Send marshals payload and enqueues it for userID. An offline user is a
// silent no-op: delivery already happened via persistence.
func (r *Registry) Send(userID string, payload any) error {
	r.mu.RLock()
	conn, ok := r.conns[userID]
	r.mu.RUnlock()

	if !ok {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal outbound frame")
	}
	return conn.Send(data)
}

// Online reports whether a live connection exists for userID.
func (r *Registry) Online(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[userID]
	return ok
}
