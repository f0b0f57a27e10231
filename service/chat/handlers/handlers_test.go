package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/akhi1986akhi/webChat/service/chat"
	"github.com/akhi1986akhi/webChat/tools/errs"
)

func testContext(t *testing.T) *chat.Context {
	t.Helper()
	srv := chat.NewServer("test_node", nil, chat.ManagerConf{}, "")
	t.Cleanup(srv.Shutdown)
	return &chat.Context{Srv: srv, Ctx: context.Background()}
}

func adminSession(t *testing.T, c *chat.Context, connID string) *chat.Session {
	t.Helper()
	sess := chat.NewSession(connID)
	require.NoError(t, c.Srv.Lifecycle().BindAdmin(c.Ctx, sess, "Admin"))
	return sess
}

func TestUserMessageRequiresBinding(t *testing.T) {
	c := testContext(t)
	sess := chat.NewSession("c1")

	err := UserMessageHandler{}.Handle(c, &chat.Frame{
		Event: chat.EventUserMessage,
		Data:  map[string]any{"body": "hi"},
	}, sess)
	assert.ErrorIs(t, err, errs.ErrUnknownSender)
}

func TestUserMessageRejectsEmptyBody(t *testing.T) {
	c := testContext(t)
	sess := adminSession(t, c, "a1") // any routable session will do

	err := UserMessageHandler{}.Handle(c, &chat.Frame{
		Event: chat.EventUserMessage,
		Data:  map[string]any{"body": "   "},
	}, sess)
	assert.Error(t, err)
}

func TestAdminMessageRequiresRecipient(t *testing.T) {
	c := testContext(t)
	sess := adminSession(t, c, "a1")

	err := AdminMessageHandler{}.Handle(c, &chat.Frame{
		Event: chat.EventAdminMessage,
		Data:  map[string]any{"body": "hi"},
	}, sess)
	assert.ErrorIs(t, err, errs.ErrRecipientOffline)
}

func TestAdminBroadcastRoutes(t *testing.T) {
	c := testContext(t)
	sess := adminSession(t, c, "a1")

	err := AdminBroadcastHandler{}.Handle(c, &chat.Frame{
		Event: chat.EventAdminBroadcast,
		Data:  map[string]any{"body": "maintenance"},
	}, sess)
	assert.NoError(t, err)
}

func TestUserConnectRejectsBadPayload(t *testing.T) {
	c := testContext(t)
	sess := chat.NewSession("c1")

	err := UserConnectHandler{}.Handle(c, &chat.Frame{
		Event: chat.EventUserConnect,
		Data:  map[string]any{"identityKey": "no-at-sign"},
	}, sess)
	assert.ErrorIs(t, err, errs.ErrBinding)
}
