// Package session tracks who is connected over SSH and what they watch.
package session

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// ID uniquely identifies a connection.
type ID string

// Info describes one active session.
type Info struct {
	ID      ID
	User    string
	Remote  string
	SimID   string // "" while in the menu
	Started time.Time
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ID]Info
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[ID]Info)}
}

// Register adds or replaces a session.
func (r *Registry) Register(info Info) {
	if info.Started.IsZero() {
		info.Started = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[info.ID] = info
}

// Unregister removes a session.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// SetSim records which simulation a session is watching. Unknown IDs are
// ignored.
func (r *Registry) SetSim(id ID, simID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if info, ok := r.sessions[id]; ok {
		info.SimID = simID
		r.sessions[id] = info
	}
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.sessions[id]
	return info, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Watching counts the sessions currently viewing simID.
func (r *Registry) Watching(simID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, info := range r.sessions {
		if info.SimID == simID {
			n++
		}
	}
	return n
}

// List returns every session, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	out := make([]Info, 0, len(r.sessions))
	for _, info := range r.sessions {
		out = append(out, info)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Info) int {
		return cmp.Or(a.Started.Compare(b.Started), cmp.Compare(a.ID, b.ID))
	})
	return out
}
