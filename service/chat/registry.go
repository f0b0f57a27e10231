package chat

import (
	"sync"

	"github.com/akhi1986akhi/webChat/logger"
)

// Registry is the authoritative in-memory view of who is reachable right now.
// Two maps are kept mutually consistent under one lock: connection -> identity
// and identity -> current connection. A single admin slot sits beside them.
//
// When an identity binds again on a new connection, the identity mapping moves
// to the new connection; the old connection stays in byConn (still resolvable
// for attribution) until its own disconnect.
type Registry struct {
	mu         sync.RWMutex
	byConn     map[string]Identity
	byIdentity map[string]string
	order      []string // identity ids, first-registration order
	adminConn  string
}

func NewRegistry() *Registry {
	return &Registry{
		byConn:     make(map[string]Identity),
		byIdentity: make(map[string]string),
	}
}

// Register binds the identity to connID. Re-registering the same identity on
// another connection supersedes the old one; its position in the arrival
// order is kept.
func (r *Registry) Register(connID string, id Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, known := r.byIdentity[id.ID]
	r.byConn[connID] = id
	r.byIdentity[id.ID] = connID

	if !known {
		r.order = append(r.order, id.ID)
	} else if prev != connID {
		logger.Infof("[registry] identity %s superseded conn %s -> %s", id.ID, prev, connID)
	}
}

// Resolve returns the identity bound to connID.
func (r *Registry) Resolve(connID string) (Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byConn[connID]
	return id, ok
}

// ResolveConn returns the current connection of an identity. A mapping whose
// connection is no longer in byConn is treated as absent.
func (r *Registry) ResolveConn(identityID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connID, ok := r.byIdentity[identityID]
	if !ok {
		return "", false
	}
	if _, live := r.byConn[connID]; !live {
		logger.Errorf("[registry] identity %s maps to dead conn %s", identityID, connID)
		return "", false
	}
	return connID, true
}

// SetAdmin claims the admin slot for connID, displacing any previous holder.
func (r *Registry) SetAdmin(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.adminConn != "" && r.adminConn != connID {
		logger.Infof("[registry] admin slot moved %s -> %s", r.adminConn, connID)
	}
	r.adminConn = connID
}

// AdminConn returns the live admin connection, or "". A slot pointing at a
// connection that is gone or no longer admin is cleared on read.
func (r *Registry) AdminConn() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.adminConn == "" {
		return ""
	}
	id, ok := r.byConn[r.adminConn]
	if !ok || id.Role != RoleAdmin {
		r.adminConn = ""
		return ""
	}
	return r.adminConn
}

// Unregister removes the connection. wasCurrent reports whether this
// connection was still the identity's routing target; a superseded
// connection's departure leaves the identity online. Idempotent.
func (r *Registry) Unregister(connID string) (id Identity, wasCurrent bool, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok = r.byConn[connID]
	if !ok {
		return Identity{}, false, false
	}
	delete(r.byConn, connID)

	if r.byIdentity[id.ID] == connID {
		delete(r.byIdentity, id.ID)
		wasCurrent = true
		for i, v := range r.order {
			if v == id.ID {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	if r.adminConn == connID {
		r.adminConn = ""
	}
	return id, wasCurrent, true
}

// SnapshotActiveUsers returns the currently bound non-admin identities in
// arrival order.
func (r *Registry) SnapshotActiveUsers() []Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Identity, 0, len(r.order))
	for _, identityID := range r.order {
		connID, ok := r.byIdentity[identityID]
		if !ok {
			continue
		}
		id, ok := r.byConn[connID]
		if !ok || id.Role != RoleUser {
			continue
		}
		out = append(out, id)
	}
	return out
}

// UserConns returns the live routing connections of all non-admin identities,
// arrival order. Superseded connections are not included.
func (r *Registry) UserConns() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.order))
	for _, identityID := range r.order {
		connID, ok := r.byIdentity[identityID]
		if !ok {
			continue
		}
		if id, live := r.byConn[connID]; live && id.Role == RoleUser {
			out = append(out, connID)
		}
	}
	return out
}

// ActiveUserCount is the number of currently bound non-admin identities.
func (r *Registry) ActiveUserCount() int {
	return len(r.SnapshotActiveUsers())
}

// IsCurrent reports whether connID is still the routing target of the
// identity it is bound to. Superseded connections return false.
func (r *Registry) IsCurrent(connID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byConn[connID]
	if !ok {
		return false
	}
	return r.byIdentity[id.ID] == connID
}
