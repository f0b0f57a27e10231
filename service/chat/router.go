package chat

import (
	"time"

	"github.com/akhi1986akhi/webChat/tools/errs"
)

// Router delivers messages between live connections. Delivery is synchronous
// into the per-connection send queues, so two messages routed to the same
// destination arrive in routing order. Archiving is handed off and never
// blocks delivery.
type Router struct {
	reg     *Registry
	emit    Emitter
	archive *Archiver // nil disables archiving
}

func NewRouter(reg *Registry, emit Emitter, archive *Archiver) *Router {
	return &Router{reg: reg, emit: emit, archive: archive}
}

// RouteDirect sends body from the connection fromConn to the identity
// toIdentityID. Used for user -> admin traffic.
func (r *Router) RouteDirect(fromConn, toIdentityID, body string) error {
	sender, ok := r.reg.Resolve(fromConn)
	if !ok {
		return errs.ErrUnknownSender
	}
	toConn, ok := r.reg.ResolveConn(toIdentityID)
	if !ok {
		return errs.ErrRecipientOffline.WithDetail("identity " + toIdentityID)
	}

	now := time.Now()
	r.emit.Emit(toConn, EventNewMessage, NewMessagePayload{
		From:      sender.DisplayName,
		UserID:    sender.ID,
		Message:   body,
		Timestamp: now.UnixMilli(),
		Type:      "user",
	})
	r.emit.Emit(fromConn, EventMessageSent, MessageSentPayload{Success: true, Message: body})

	r.submitArchive(MessageRecord{
		FromID:     sender.ID,
		ToID:       toIdentityID,
		Body:       body,
		Kind:       "text",
		FromConnID: fromConn,
		ToConnID:   toConn,
		SentAt:     now,
	})
	return nil
}

// RouteAdminReply sends body from the admin connection to one user identity.
// Only the current admin slot holder may call it.
func (r *Router) RouteAdminReply(adminConn, toIdentityID, body string) error {
	if err := r.requireAdmin(adminConn); err != nil {
		return err
	}
	toConn, ok := r.reg.ResolveConn(toIdentityID)
	if !ok {
		return errs.ErrRecipientOffline.WithDetail("identity " + toIdentityID)
	}
	recipient, ok := r.reg.Resolve(toConn)
	if !ok {
		return errs.ErrRegistryInconsistency.WithDetail("conn " + toConn + " unresolvable")
	}

	now := time.Now()
	r.emit.Emit(toConn, EventAdminReply, AdminReplyPayload{
		From:      "Admin",
		Message:   body,
		Timestamp: now.UnixMilli(),
		Type:      "admin",
	})
	r.emit.Emit(adminConn, EventMessageDelivered, MessageDeliveredPayload{
		To:      recipient.DisplayName,
		Message: body,
	})

	r.submitArchive(MessageRecord{
		FromID:     AdminIdentityID,
		ToID:       toIdentityID,
		Body:       body,
		Kind:       "text",
		FromConnID: adminConn,
		ToConnID:   toConn,
		SentAt:     now,
	})
	return nil
}

// RouteBroadcast sends body from the admin connection to every currently
// bound user. Returns the recipient count.
func (r *Router) RouteBroadcast(adminConn, body string) (int, error) {
	if err := r.requireAdmin(adminConn); err != nil {
		return 0, err
	}

	now := time.Now()
	payload := AdminReplyPayload{
		From:      "Admin",
		Message:   body,
		Timestamp: now.UnixMilli(),
		Type:      "broadcast",
	}
	conns := r.reg.UserConns()
	for _, c := range conns {
		r.emit.Emit(c, EventAdminReply, payload)
	}
	r.emit.Emit(adminConn, EventBroadcastSent, BroadcastSentPayload{
		Recipients: len(conns),
		Message:    body,
	})

	r.submitArchive(MessageRecord{
		FromID:     AdminIdentityID,
		ToID:       "all",
		Body:       body,
		Kind:       "broadcast",
		FromConnID: adminConn,
		Broadcast:  true,
		SentAt:     now,
	})
	return len(conns), nil
}

func (r *Router) requireAdmin(connID string) error {
	adminConn := r.reg.AdminConn()
	if adminConn == "" || adminConn != connID {
		return errs.ErrUnauthorizedSender.WithDetail("conn " + connID + " does not hold the admin slot")
	}
	return nil
}

func (r *Router) submitArchive(rec MessageRecord) {
	if r.archive == nil {
		return
	}
	r.archive.Submit(rec)
}
