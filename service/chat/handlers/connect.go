package handlers

import (
	chat "github.com/akhi1986akhi/webChat/service/chat"
	"github.com/akhi1986akhi/webChat/tools/decode"
	"github.com/akhi1986akhi/webChat/tools/errs"
)

// UserConnectHandler binds a customer connection to its identity.
type UserConnectHandler struct{}

func (UserConnectHandler) Event() string { return chat.EventUserConnect }

func (UserConnectHandler) Handle(c *chat.Context, f *chat.Frame, sess *chat.Session) error {
	p, err := decode.DecodeMap[chat.UserConnectPayload](f.Data)
	if err != nil {
		return errs.ErrBinding.WithDetail(err.Error())
	}
	return c.Srv.Lifecycle().BindUser(c.Ctx, sess, chat.Credentials{
		IdentityKey: p.IdentityKey,
		Name:        p.Name,
		Contact:     p.Contact,
	})
}

// AdminConnectHandler claims the single admin slot for this connection.
type AdminConnectHandler struct{}

func (AdminConnectHandler) Event() string { return chat.EventAdminConnect }

func (AdminConnectHandler) Handle(c *chat.Context, f *chat.Frame, sess *chat.Session) error {
	name := ""
	if f.Data != nil {
		if p, err := decode.DecodeMap[chat.AdminConnectPayload](f.Data); err == nil {
			name = p.Name
		}
	}
	return c.Srv.Lifecycle().BindAdmin(c.Ctx, sess, name)
}
