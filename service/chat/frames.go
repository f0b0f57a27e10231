package chat

import (
	"encoding/json"

	"github.com/akhi1986akhi/webChat/tools/errs"
)

// Wire envelope: {"event": "...", "data": {...}}. Inbound data stays a map
// until the handler decodes it into its payload struct.

// Inbound events.
const (
	EventUserConnect    = "user_connect"
	EventAdminConnect   = "admin_connect"
	EventUserMessage    = "user_message"
	EventAdminMessage   = "admin_message"
	EventAdminBroadcast = "admin_broadcast"
)

// Outbound events.
const (
	EventConnected        = "connected"
	EventAdminConnected   = "admin_connected"
	EventUserOnline       = "user_online"
	EventUserOffline      = "user_offline"
	EventAdminStatus      = "admin_status"
	EventNewMessage       = "new_message"
	EventAdminReply       = "admin_reply"
	EventMessageSent      = "message_sent"
	EventMessageDelivered = "message_delivered"
	EventBroadcastSent    = "broadcast_sent"
	EventError            = "error"
)

// Frame is one parsed inbound envelope.
type Frame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

func ParseFrame(raw []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errs.WrapMsg(err, "parse frame")
	}
	if f.Event == "" {
		return nil, errs.New("frame missing event")
	}
	return &f, nil
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func MarshalFrame(event string, payload any) ([]byte, error) {
	b, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return nil, errs.WrapMsg(err, "marshal frame")
	}
	return b, nil
}

// Inbound payloads.

type UserConnectPayload struct {
	IdentityKey string `json:"identityKey"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
}

type AdminConnectPayload struct {
	Name string `json:"name"`
}

type UserMessagePayload struct {
	Body string `json:"body"`
}

type AdminMessagePayload struct {
	ToIdentityID string `json:"toIdentityId"`
	Body         string `json:"body"`
}

type AdminBroadcastPayload struct {
	Body string `json:"body"`
}

// Outbound payloads.

type ConnectedPayload struct {
	Message     string `json:"message"`
	UserID      string `json:"userId"`
	AdminOnline bool   `json:"adminOnline"`
}

type UserSummary struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type AdminConnectedPayload struct {
	Message    string        `json:"message"`
	Users      []UserSummary `json:"users"`
	TotalUsers int           `json:"totalUsers"`
}

type UserOnlinePayload struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
}

type UserOfflinePayload struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
}

type AdminStatusPayload struct {
	Online bool `json:"online"`
}

type NewMessagePayload struct {
	From      string `json:"from"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
}

type AdminReplyPayload struct {
	From      string `json:"from"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Type      string `json:"type"`
}

type MessageSentPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type MessageDeliveredPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type BroadcastSentPayload struct {
	Recipients int    `json:"recipients"`
	Message    string `json:"message"`
}

type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
