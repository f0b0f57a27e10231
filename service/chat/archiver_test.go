package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiverPersistsRecords(t *testing.T) {
	gw := newFakeGateway()
	a := NewArchiver(gw, 1, 10, "")

	a.Submit(MessageRecord{FromID: "u1", ToID: AdminIdentityID, Body: "hi", Kind: "text", SentAt: time.Now()})
	a.Submit(MessageRecord{FromID: AdminIdentityID, ToID: "all", Body: "notice", Kind: "broadcast", Broadcast: true, SentAt: time.Now()})
	a.Stop()

	assert.Equal(t, 2, gw.recordCount())
}

func TestArchiverRoutedThroughRouter(t *testing.T) {
	reg := NewRegistry()
	em := &fakeEmitter{}
	gw := newFakeGateway()
	a := NewArchiver(gw, 1, 10, "")
	r := NewRouter(reg, em, a)

	reg.Register("c1", user("u1", "Alice"))
	bindAdmin(reg, "a1")
	require.NoError(t, r.RouteDirect("c1", AdminIdentityID, "hello"))
	a.Stop()

	require.Equal(t, 1, gw.recordCount())
	rec := gw.records[0]
	assert.Equal(t, "u1", rec.FromID)
	assert.Equal(t, AdminIdentityID, rec.ToID)
	assert.Equal(t, "hello", rec.Body)
}
