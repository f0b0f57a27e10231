package chat

import (
	"context"
	"strings"

	"github.com/akhi1986akhi/webChat/logger"
	"github.com/akhi1986akhi/webChat/tools/errs"
)

// Binder resolves announced credentials to a stable identity, creating the
// durable record on first sight. Binding the same key twice yields the same
// identity id.
type Binder struct {
	gw Gateway
}

func NewBinder(gw Gateway) *Binder {
	return &Binder{gw: gw}
}

// Credentials announced over the user_connect event. IdentityKey is the
// natural key (an email address); Name and Contact are display attributes.
type Credentials struct {
	IdentityKey string
	Name        string
	Contact     string
}

// Bind validates the credentials and returns the bound identity. The store
// lookup is the one step here that may suspend.
func (b *Binder) Bind(ctx context.Context, connID string, creds Credentials) (Identity, error) {
	key := strings.TrimSpace(strings.ToLower(creds.IdentityKey))
	if key == "" || !strings.Contains(key, "@") {
		return Identity{}, errs.ErrBinding.WithDetail("identity key must be an email address")
	}

	name := strings.TrimSpace(creds.Name)
	if name == "" {
		name = "User-" + shortConn(connID)
	}
	fields := IdentityFields{Name: name, Contact: creds.Contact, ConnID: connID}

	existing, err := b.gw.FindIdentityByKey(ctx, key)
	if err != nil {
		return Identity{}, errs.ErrBinding.WithDetail(err.Error())
	}
	if existing != nil {
		if err := b.gw.UpdateIdentity(ctx, existing.ID, fields); err != nil {
			return Identity{}, errs.ErrBinding.WithDetail(err.Error())
		}
		existing.DisplayName = name
		existing.Contact = creds.Contact
		existing.Role = RoleUser
		return *existing, nil
	}

	created, err := b.gw.CreateIdentity(ctx, key, fields)
	if err != nil {
		return Identity{}, errs.ErrBinding.WithDetail(err.Error())
	}
	logger.Infof("[binder] new identity %s (%s)", created.ID, key)
	created.Role = RoleUser
	return *created, nil
}

// BindAdmin produces the synthetic admin identity. Nothing is persisted; the
// admin exists only while connected.
func (b *Binder) BindAdmin(name string) Identity {
	if strings.TrimSpace(name) == "" {
		name = "Admin"
	}
	return Identity{ID: AdminIdentityID, Role: RoleAdmin, DisplayName: name}
}

func shortConn(connID string) string {
	if len(connID) > 5 {
		return connID[:5]
	}
	return connID
}
