// Package gateway adapts the mongo-backed user and message services to the
// persistence interface the relay core depends on.
package gateway

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	chatmodel "github.com/akhi1986akhi/webChat/module/chat/model"
	chatservice "github.com/akhi1986akhi/webChat/module/chat/service"
	usermodel "github.com/akhi1986akhi/webChat/module/user/model"
	userservice "github.com/akhi1986akhi/webChat/module/user/service"
	chat "github.com/akhi1986akhi/webChat/service/chat"
)

// Store is the mongo implementation of chat.Gateway.
type Store struct{}

func NewStore() *Store { return &Store{} }

func (s *Store) FindIdentityByKey(ctx context.Context, key string) (*chat.Identity, error) {
	u, err := userservice.FindByEmail(ctx, key)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return toIdentity(u), nil
}

func (s *Store) CreateIdentity(ctx context.Context, key string, f chat.IdentityFields) (*chat.Identity, error) {
	u := &usermodel.User{
		FullName: f.Name,
		Email:    key,
		Contact:  f.Contact,
		Role:     usermodel.RoleUser,
		ConnID:   f.ConnID,
	}
	if err := userservice.Create(ctx, u); err != nil {
		return nil, err
	}
	return toIdentity(u), nil
}

func (s *Store) UpdateIdentity(ctx context.Context, identityID string, f chat.IdentityFields) error {
	return userservice.Update(ctx, identityID, bson.M{
		"full_name": f.Name,
		"contact":   f.Contact,
		"conn_id":   f.ConnID,
		"is_active": true,
	})
}

func (s *Store) MarkDeparted(ctx context.Context, identityID string) error {
	return userservice.MarkInactive(ctx, identityID)
}

func (s *Store) AppendMessageRecord(ctx context.Context, rec chat.MessageRecord) error {
	sender := chatmodel.SenderUser
	if rec.FromID == chat.AdminIdentityID {
		sender = chatmodel.SenderAdmin
	}
	return chatservice.Append(ctx, &chatmodel.Message{
		Sender:         sender,
		SenderID:       rec.FromID,
		ReceiverID:     rec.ToID,
		Content:        rec.Body,
		Kind:           rec.Kind,
		SenderConnID:   rec.FromConnID,
		ReceiverConnID: rec.ToConnID,
		IsBroadcast:    rec.Broadcast,
		Timestamp:      rec.SentAt,
	})
}

func toIdentity(u *usermodel.User) *chat.Identity {
	return &chat.Identity{
		ID:          u.UserID,
		Role:        chat.Role(u.Role),
		DisplayName: u.FullName,
		Email:       u.Email,
		Contact:     u.Contact,
	}
}
