package handlers

import (
	"strings"

	chat "github.com/akhi1986akhi/webChat/service/chat"
	"github.com/akhi1986akhi/webChat/tools/decode"
	"github.com/akhi1986akhi/webChat/tools/errs"
)

// routable rejects frames from connections that never finished binding.
func routable(sess *chat.Session) error {
	if sess.State() != chat.StateRoutable {
		return errs.ErrUnknownSender.WithDetail("connection not bound")
	}
	return nil
}

// UserMessageHandler routes a customer message to the admin.
type UserMessageHandler struct{}

func (UserMessageHandler) Event() string { return chat.EventUserMessage }

func (UserMessageHandler) Handle(c *chat.Context, f *chat.Frame, sess *chat.Session) error {
	if err := routable(sess); err != nil {
		return err
	}
	p, err := decode.DecodeMap[chat.UserMessagePayload](f.Data)
	if err != nil {
		return errs.WrapMsg(err, "user_message payload")
	}
	if strings.TrimSpace(p.Body) == "" {
		return errs.New("empty message body")
	}
	return c.Srv.Router().RouteDirect(sess.ConnID, chat.AdminIdentityID, p.Body)
}

// AdminMessageHandler routes an admin reply to one user.
type AdminMessageHandler struct{}

func (AdminMessageHandler) Event() string { return chat.EventAdminMessage }

func (AdminMessageHandler) Handle(c *chat.Context, f *chat.Frame, sess *chat.Session) error {
	if err := routable(sess); err != nil {
		return err
	}
	p, err := decode.DecodeMap[chat.AdminMessagePayload](f.Data)
	if err != nil {
		return errs.WrapMsg(err, "admin_message payload")
	}
	if p.ToIdentityID == "" {
		return errs.ErrRecipientOffline.WithDetail("no recipient given")
	}
	if strings.TrimSpace(p.Body) == "" {
		return errs.New("empty message body")
	}
	return c.Srv.Router().RouteAdminReply(sess.ConnID, p.ToIdentityID, p.Body)
}

// AdminBroadcastHandler fans an admin announcement out to every bound user.
type AdminBroadcastHandler struct{}

func (AdminBroadcastHandler) Event() string { return chat.EventAdminBroadcast }

func (AdminBroadcastHandler) Handle(c *chat.Context, f *chat.Frame, sess *chat.Session) error {
	if err := routable(sess); err != nil {
		return err
	}
	p, err := decode.DecodeMap[chat.AdminBroadcastPayload](f.Data)
	if err != nil {
		return errs.WrapMsg(err, "admin_broadcast payload")
	}
	if strings.TrimSpace(p.Body) == "" {
		return errs.New("empty message body")
	}
	_, err = c.Srv.Router().RouteBroadcast(sess.ConnID, p.Body)
	return err
}

// RegisterAll installs every frame handler on the server.
func RegisterAll(s *chat.Server) {
	s.Register(UserConnectHandler{})
	s.Register(AdminConnectHandler{})
	s.Register(UserMessageHandler{})
	s.Register(AdminMessageHandler{})
	s.Register(AdminBroadcastHandler{})
}
