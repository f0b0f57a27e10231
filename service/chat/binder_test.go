package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhi1986akhi/webChat/tools/errs"
)

func TestBinderRejectsMissingKey(t *testing.T) {
	b := NewBinder(newFakeGateway())

	for _, key := range []string{"", "   ", "no-at-sign"} {
		_, err := b.Bind(context.Background(), "c1", Credentials{IdentityKey: key})
		assert.ErrorIs(t, err, errs.ErrBinding, "key %q", key)
	}
}

func TestBinderCreatesOnFirstSight(t *testing.T) {
	gw := newFakeGateway()
	b := NewBinder(gw)

	id, err := b.Bind(context.Background(), "c1", Credentials{
		IdentityKey: "Alice@Example.com", Name: "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id.ID)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, RoleUser, id.Role)
}

func TestBinderIsIdempotentPerKey(t *testing.T) {
	gw := newFakeGateway()
	b := NewBinder(gw)

	first, err := b.Bind(context.Background(), "c1", Credentials{IdentityKey: "alice@example.com", Name: "Alice"})
	require.NoError(t, err)
	second, err := b.Bind(context.Background(), "c2", Credentials{IdentityKey: "alice@example.com", Name: "Alice A."})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Alice A.", second.DisplayName)
}

func TestBinderDefaultsName(t *testing.T) {
	b := NewBinder(newFakeGateway())

	id, err := b.Bind(context.Background(), "conn-123456", Credentials{IdentityKey: "x@y.z"})
	require.NoError(t, err)
	assert.Equal(t, "User-conn-", id.DisplayName)
}

func TestBindAdminSynthetic(t *testing.T) {
	b := NewBinder(newFakeGateway())

	id := b.BindAdmin("")
	assert.Equal(t, AdminIdentityID, id.ID)
	assert.Equal(t, RoleAdmin, id.Role)
	assert.Equal(t, "Admin", id.DisplayName)

	id = b.BindAdmin("Sam")
	assert.Equal(t, "Sam", id.DisplayName)
}
