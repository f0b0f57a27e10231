package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhi1986akhi/webChat/tools/errs"
)

func routerFixture() (*Registry, *fakeEmitter, *Router) {
	reg := NewRegistry()
	em := &fakeEmitter{}
	return reg, em, NewRouter(reg, em, nil)
}

func bindAdmin(reg *Registry, connID string) {
	reg.Register(connID, Identity{ID: AdminIdentityID, Role: RoleAdmin, DisplayName: "Admin"})
	reg.SetAdmin(connID)
}

func TestRouteDirectUnknownSender(t *testing.T) {
	_, _, r := routerFixture()
	err := r.RouteDirect("never-bound", AdminIdentityID, "hi")
	assert.ErrorIs(t, err, errs.ErrUnknownSender)
}

func TestRouteDirectRecipientOffline(t *testing.T) {
	reg, em, r := routerFixture()
	reg.Register("c1", user("u1", "Alice"))

	err := r.RouteDirect("c1", AdminIdentityID, "anyone there?")
	assert.ErrorIs(t, err, errs.ErrRecipientOffline)
	assert.Empty(t, em.byEvent(EventNewMessage))
}

func TestRouteDirectDelivers(t *testing.T) {
	reg, em, r := routerFixture()
	reg.Register("c1", user("u1", "Alice"))
	bindAdmin(reg, "a1")

	require.NoError(t, r.RouteDirect("c1", AdminIdentityID, "hello"))

	msgs := em.byEvent(EventNewMessage)
	require.Len(t, msgs, 1)
	assert.Equal(t, "a1", msgs[0].conn)
	p := msgs[0].payload.(NewMessagePayload)
	assert.Equal(t, "Alice", p.From)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "hello", p.Message)
	assert.Equal(t, "user", p.Type)

	acks := em.byEvent(EventMessageSent)
	require.Len(t, acks, 1)
	assert.Equal(t, "c1", acks[0].conn)
	assert.True(t, acks[0].payload.(MessageSentPayload).Success)
}

func TestRouteAdminReplyUnauthorized(t *testing.T) {
	reg, _, r := routerFixture()
	reg.Register("c1", user("u1", "Alice"))

	err := r.RouteAdminReply("c1", "u1", "hi")
	assert.ErrorIs(t, err, errs.ErrUnauthorizedSender)
}

func TestRouteAdminReplyDisplacedAdmin(t *testing.T) {
	reg, _, r := routerFixture()
	bindAdmin(reg, "a1")
	bindAdmin(reg, "a2")
	reg.Register("c1", user("u1", "Alice"))

	// the displaced holder lost its authority with the slot
	err := r.RouteAdminReply("a1", "u1", "hi")
	assert.ErrorIs(t, err, errs.ErrUnauthorizedSender)
	assert.NoError(t, r.RouteAdminReply("a2", "u1", "hi"))
}

func TestRouteAdminReplyRecipientOffline(t *testing.T) {
	reg, em, r := routerFixture()
	bindAdmin(reg, "a1")

	err := r.RouteAdminReply("a1", "u404", "hi")
	assert.ErrorIs(t, err, errs.ErrRecipientOffline)
	assert.Empty(t, em.byEvent(EventAdminReply))
}

func TestRouteAdminReplyDelivers(t *testing.T) {
	reg, em, r := routerFixture()
	bindAdmin(reg, "a1")
	reg.Register("c1", user("u1", "Alice"))

	require.NoError(t, r.RouteAdminReply("a1", "u1", "how can I help?"))

	replies := em.byEvent(EventAdminReply)
	require.Len(t, replies, 1)
	assert.Equal(t, "c1", replies[0].conn)
	p := replies[0].payload.(AdminReplyPayload)
	assert.Equal(t, "admin", p.Type)
	assert.Equal(t, "how can I help?", p.Message)

	delivered := em.byEvent(EventMessageDelivered)
	require.Len(t, delivered, 1)
	assert.Equal(t, "a1", delivered[0].conn)
	assert.Equal(t, "Alice", delivered[0].payload.(MessageDeliveredPayload).To)
}

func TestRouteBroadcast(t *testing.T) {
	reg, em, r := routerFixture()
	bindAdmin(reg, "a1")
	reg.Register("c1", user("u1", "Alice"))
	reg.Register("c2", user("u2", "Bob"))
	reg.Register("c3", user("u3", "Cara"))

	n, err := r.RouteBroadcast("a1", "maintenance at noon")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	replies := em.byEvent(EventAdminReply)
	require.Len(t, replies, 3)
	for _, e := range replies {
		assert.Equal(t, "broadcast", e.payload.(AdminReplyPayload).Type)
	}
	// admin itself never receives the broadcast frame
	for _, e := range replies {
		assert.NotEqual(t, "a1", e.conn)
	}

	sent := em.byEvent(EventBroadcastSent)
	require.Len(t, sent, 1)
	assert.Equal(t, "a1", sent[0].conn)
	assert.Equal(t, 3, sent[0].payload.(BroadcastSentPayload).Recipients)
}

func TestRouteBroadcastNoUsers(t *testing.T) {
	reg, em, r := routerFixture()
	bindAdmin(reg, "a1")

	n, err := r.RouteBroadcast("a1", "anyone?")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	sent := em.byEvent(EventBroadcastSent)
	require.Len(t, sent, 1)
	assert.Equal(t, 0, sent[0].payload.(BroadcastSentPayload).Recipients)
}

func TestRouteBroadcastUnauthorized(t *testing.T) {
	reg, _, r := routerFixture()
	reg.Register("c1", user("u1", "Alice"))

	_, err := r.RouteBroadcast("c1", "spam")
	assert.ErrorIs(t, err, errs.ErrUnauthorizedSender)
}
