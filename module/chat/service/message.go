package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	chatmodel "github.com/akhi1986akhi/webChat/module/chat/model"
	"github.com/akhi1986akhi/webChat/tools/errs"
)

// Append stores one routed message record.
func Append(ctx context.Context, m *chatmodel.Message) error {
	if m.MessageID == "" {
		m.MessageID = uuid.NewString()
	}
	if m.ConversationID == "" {
		m.ConversationID = chatmodel.ConversationKey(m.SenderID, m.ReceiverID)
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	if _, err := m.Collection().InsertOne(ctx, m); err != nil {
		return errs.WrapMsg(err, "append message record")
	}
	return nil
}

// History returns the conversation between two participants, oldest first.
func History(ctx context.Context, a, b string, limit int64) ([]chatmodel.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	m := &chatmodel.Message{}
	cur, err := m.Collection().Find(ctx,
		bson.M{"conversation_id": chatmodel.ConversationKey(a, b)},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}).SetLimit(limit))
	if err != nil {
		return nil, errs.WrapMsg(err, "find messages")
	}
	defer cur.Close(ctx)
	var out []chatmodel.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.WrapMsg(err, "decode messages")
	}
	return out, nil
}
