package chat

import (
	"time"

	"github.com/akhi1986akhi/webChat/service/storage"
)

// Notifier fans presence transitions out to the parties that care: the admin
// hears about users, users hear about the admin. Emits are synchronous so a
// departure notice can never overtake the arrival that preceded it; the redis
// mirror is fire-and-forget.
type Notifier struct {
	reg    *Registry
	emit   Emitter
	nodeID string
}

func NewNotifier(reg *Registry, emit Emitter, nodeID string) *Notifier {
	return &Notifier{reg: reg, emit: emit, nodeID: nodeID}
}

const presenceTTL = 5 * time.Minute

// OnUserArrived runs after the registry registered the user on connID.
func (n *Notifier) OnUserArrived(id Identity, connID string) {
	adminConn := n.reg.AdminConn()
	if adminConn != "" {
		n.emit.Emit(adminConn, EventUserOnline, UserOnlinePayload{
			UserID:    id.ID,
			Name:      id.DisplayName,
			Timestamp: time.Now().UnixMilli(),
		})
	}
	n.emit.Emit(connID, EventConnected, ConnectedPayload{
		Message:     "Connected to support chat",
		UserID:      id.ID,
		AdminOnline: adminConn != "",
	})
	go storage.MirrorOnline(id.ID, n.nodeID, presenceTTL)
}

// OnAdminArrived runs after the admin claimed the slot. users is the registry
// snapshot taken at claim time.
func (n *Notifier) OnAdminArrived(connID string, users []Identity) {
	for _, c := range n.reg.UserConns() {
		n.emit.Emit(c, EventAdminStatus, AdminStatusPayload{Online: true})
	}
	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{UserID: u.ID, Name: u.DisplayName})
	}
	n.emit.Emit(connID, EventAdminConnected, AdminConnectedPayload{
		Message:    "Admin connected",
		Users:      summaries,
		TotalUsers: len(summaries),
	})
	go storage.MirrorAdmin(connID)
}

// OnDeparted runs after the registry dropped the identity's current
// connection.
func (n *Notifier) OnDeparted(id Identity) {
	if id.Role == RoleAdmin {
		for _, c := range n.reg.UserConns() {
			n.emit.Emit(c, EventAdminStatus, AdminStatusPayload{Online: false})
		}
		go storage.MirrorAdmin("")
		return
	}
	if adminConn := n.reg.AdminConn(); adminConn != "" {
		n.emit.Emit(adminConn, EventUserOffline, UserOfflinePayload{
			UserID:    id.ID,
			Name:      id.DisplayName,
			Timestamp: time.Now().UnixMilli(),
		})
	}
	go storage.MirrorOffline(id.ID)
}
