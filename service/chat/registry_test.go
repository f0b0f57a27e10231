package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(id, name string) Identity {
	return Identity{ID: id, Role: RoleUser, DisplayName: name}
}

func TestRegistryRegisterResolve(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", user("u1", "Alice"))

	id, ok := r.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, "u1", id.ID)

	conn, ok := r.ResolveConn("u1")
	require.True(t, ok)
	assert.Equal(t, "c1", conn)

	_, ok = r.Resolve("nope")
	assert.False(t, ok)
	_, ok = r.ResolveConn("nope")
	assert.False(t, ok)
}

func TestRegistrySupersede(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", user("u1", "Alice"))
	r.Register("c2", user("u1", "Alice"))

	// identity routes to the newest connection
	conn, ok := r.ResolveConn("u1")
	require.True(t, ok)
	assert.Equal(t, "c2", conn)

	// the old connection is still attributable but no longer current
	_, ok = r.Resolve("c1")
	assert.True(t, ok)
	assert.False(t, r.IsCurrent("c1"))
	assert.True(t, r.IsCurrent("c2"))

	// closing the superseded connection must not take the identity offline
	id, wasCurrent, ok := r.Unregister("c1")
	require.True(t, ok)
	assert.False(t, wasCurrent)
	assert.Equal(t, "u1", id.ID)

	conn, ok = r.ResolveConn("u1")
	require.True(t, ok)
	assert.Equal(t, "c2", conn)

	// closing the current connection does
	_, wasCurrent, ok = r.Unregister("c2")
	require.True(t, ok)
	assert.True(t, wasCurrent)
	_, ok = r.ResolveConn("u1")
	assert.False(t, ok)
}

func TestRegistryUnregisterIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", user("u1", "Alice"))

	_, _, ok := r.Unregister("c1")
	assert.True(t, ok)
	_, _, ok = r.Unregister("c1")
	assert.False(t, ok)
}

func TestRegistryAdminSlot(t *testing.T) {
	r := NewRegistry()
	r.Register("a1", Identity{ID: AdminIdentityID, Role: RoleAdmin, DisplayName: "Admin"})
	r.SetAdmin("a1")
	assert.Equal(t, "a1", r.AdminConn())

	// a new admin connection displaces the previous holder
	r.Register("a2", Identity{ID: AdminIdentityID, Role: RoleAdmin, DisplayName: "Admin"})
	r.SetAdmin("a2")
	assert.Equal(t, "a2", r.AdminConn())

	// slot clears when the holder disconnects
	r.Unregister("a2")
	assert.Equal(t, "", r.AdminConn())
}

func TestRegistryAdminSlotSelfHeals(t *testing.T) {
	r := NewRegistry()
	// slot pointing at a connection that never registered
	r.SetAdmin("ghost")
	assert.Equal(t, "", r.AdminConn())

	// slot pointing at a non-admin connection
	r.Register("c1", user("u1", "Alice"))
	r.SetAdmin("c1")
	assert.Equal(t, "", r.AdminConn())
}

func TestRegistrySnapshotOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", user("u1", "Alice"))
	r.Register("c2", user("u2", "Bob"))
	r.Register("a1", Identity{ID: AdminIdentityID, Role: RoleAdmin, DisplayName: "Admin"})
	r.SetAdmin("a1")
	r.Register("c3", user("u3", "Cara"))

	snap := r.SnapshotActiveUsers()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"u1", "u2", "u3"}, []string{snap[0].ID, snap[1].ID, snap[2].ID})

	// rebinding keeps the original arrival position
	r.Register("c4", user("u1", "Alice"))
	snap = r.SnapshotActiveUsers()
	require.Len(t, snap, 3)
	assert.Equal(t, "u1", snap[0].ID)

	assert.Equal(t, 3, r.ActiveUserCount())
	assert.Equal(t, []string{"c4", "c2", "c3"}, r.UserConns())
}
