package chat

import (
	"context"
	"time"
)

// Role of a bound identity.
type Role int32

const (
	RoleUser  Role = 0
	RoleAdmin Role = 1
)

// AdminIdentityID is the synthetic identity the single support agent binds
// under. It is never persisted; the admin exists only while connected.
const AdminIdentityID = "admin"

// Identity is one bound participant as the registry sees it.
type Identity struct {
	ID          string
	Role        Role
	DisplayName string
	Email       string
	Contact     string
}

// Emitter delivers one event frame to one live connection. Implementations
// must not block: a slow or dead destination drops the frame.
type Emitter interface {
	Emit(connID, event string, payload any)
}

// IdentityFields are the mutable attributes refreshed on every bind.
type IdentityFields struct {
	Name    string
	Contact string
	ConnID  string
}

// MessageRecord is the durable trace of one routed message, written after
// delivery as a side effect. Routing never reads it back.
type MessageRecord struct {
	FromID     string
	ToID       string
	Body       string
	Kind       string // text | broadcast
	FromConnID string
	ToConnID   string
	Broadcast  bool
	SentAt     time.Time
}

// Gateway is the persistence collaborator behind identity binding and message
// archiving. It is the only place a lifecycle operation may suspend.
type Gateway interface {
	// FindIdentityByKey returns (nil, nil) when the key is unknown.
	FindIdentityByKey(ctx context.Context, key string) (*Identity, error)
	CreateIdentity(ctx context.Context, key string, f IdentityFields) (*Identity, error)
	UpdateIdentity(ctx context.Context, identityID string, f IdentityFields) error
	// MarkDeparted records that the identity dropped its connection.
	MarkDeparted(ctx context.Context, identityID string) error
	AppendMessageRecord(ctx context.Context, rec MessageRecord) error
}
