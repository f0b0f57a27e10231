package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	mgo "github.com/akhi1986akhi/webChat/service/mgo"
)

// Message kind
const (
	KindText      = "text"
	KindBroadcast = "broadcast"
)

// Sender side
const (
	SenderUser  = "user"
	SenderAdmin = "admin"
)

// Message is the persisted record of one routed message. It is written after
// delivery as a fire-and-forget side effect; the router never reads it back.
type Message struct {
	MessageID      string `bson:"message_id"`
	ConversationID string `bson:"conversation_id"`
	Sender         string `bson:"sender"` // user | admin
	SenderID       string `bson:"sender_id"`
	ReceiverID     string `bson:"receiver_id"`
	Content        string `bson:"content"`
	Kind           string `bson:"kind"` // text | broadcast

	SenderConnID   string `bson:"sender_conn_id,omitempty"`
	ReceiverConnID string `bson:"receiver_conn_id,omitempty"`

	IsBroadcast bool      `bson:"is_broadcast,omitempty"`
	Timestamp   time.Time `bson:"timestamp"`
}

func (m *Message) GetTableName() string {
	return "message"
}

func (m *Message) Collection() *mongo.Collection {
	return mgo.GetDB().Collection(m.GetTableName())
}

// ConversationKey is the sorted participant pair, so both directions of a
// dialog land in one conversation.
func ConversationKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return strings.Join([]string{a, b}, "_")
}
