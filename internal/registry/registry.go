package registry

import (
	"sort"
	"sync"

	"github.com/zapdeck/zapdeck/internal/gateway"
)

// Registry holds the operator's current view of every known session.
// It is a total map from session id to Session: at most one entry per
// id, insertion order irrelevant. Status values are written exclusively
// by the coordinator applying push events; everything else reads
// snapshots.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]gateway.Session
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{sessions: make(map[string]gateway.Session)}
}

// Upsert inserts the session if unknown, otherwise overwrites its
// status in place. It never removes entries; a status_update for an id
// created out-of-band is a valid insertion.
func (r *Registry) Upsert(id string, status gateway.SessionStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = gateway.Session{ID: id, Status: status}
}

// Remove deletes a session. Idempotent; the id may reappear later if
// the gateway reports it again.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get returns the session for id, if known.
func (r *Registry) Get(id string) (gateway.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// List returns a snapshot of all sessions ordered by id. The snapshot
// is a copy: concurrent updates do not affect a caller iterating it,
// and callers see new state only when they re-read.
func (r *Registry) List() []gateway.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gateway.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of known sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
