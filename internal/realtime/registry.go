package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps connection ids to user ids, and back. Users may hold several
// live connections at once (web and mobile), so the reverse index is a set.
type Registry struct {
	mu     sync.RWMutex
	byConn map[uint64]uuid.UUID
	byUser map[uuid.UUID]map[uint64]struct{}
}

// NewRegistry builds an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{
		byConn: make(map[uint64]uuid.UUID),
		byUser: make(map[uuid.UUID]map[uint64]struct{}),
	}
}

// Bind records that the connection belongs to the user.
func (r *Registry) Bind(connID uint64, userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byConn[connID] = userID
	set, ok := r.byUser[userID]
	if !ok {
		set = make(map[uint64]struct{})
		r.byUser[userID] = set
	}
	set[connID] = struct{}{}
}

// Unbind drops the connection and returns the user it belonged to.
func (r *Registry) Unbind(connID uint64) (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return uuid.Nil, false
	}
	delete(r.byConn, connID)
	if set, ok := r.byUser[userID]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.byUser, userID)
		}
	}
	return userID, true
}

// Connections returns the live connection ids for a user.
func (r *Registry) Connections(userID uuid.UUID) []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.byUser[userID]
	if !ok {
		return nil
	}
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// UserFor resolves the owner of a connection.
func (r *Registry) UserFor(connID uint64) (uuid.UUID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userID, ok := r.byConn[connID]
	return userID, ok
}

// Len counts live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}
