package chat

import (
	"context"
	"sync"

	"github.com/akhi1986akhi/webChat/logger"
	"github.com/akhi1986akhi/webChat/tools/errs"
)

// SessionState follows one connection from accept to teardown.
type SessionState int32

const (
	StateConnecting SessionState = iota // accepted, nothing announced
	StateBound                          // identity resolved, registry updated
	StateRoutable                       // presence announced, may route
	StateClosed                         // tearing down or gone
)

// Session is the per-connection state machine. All transitions happen on the
// connection's read goroutine except Close, which may race it.
type Session struct {
	ConnID string

	mu       sync.Mutex
	state    SessionState
	identity Identity
}

func NewSession(connID string) *Session {
	return &Session{ConnID: connID, state: StateConnecting}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateBound && s.state != StateRoutable {
		return Identity{}, false
	}
	return s.identity, true
}

func (s *Session) setBound(id Identity) {
	s.mu.Lock()
	s.identity = id
	s.state = StateBound
	s.mu.Unlock()
}

func (s *Session) setRoutable() {
	s.mu.Lock()
	s.state = StateRoutable
	s.mu.Unlock()
}

// beginClose flips to Closed exactly once.
func (s *Session) beginClose() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return false
	}
	s.state = StateClosed
	return true
}

// Lifecycle sequences binding and teardown so registry, presence and the
// store always observe transitions in the same order.
type Lifecycle struct {
	reg      *Registry
	binder   *Binder
	notifier *Notifier
	gw       Gateway
}

func NewLifecycle(reg *Registry, binder *Binder, notifier *Notifier, gw Gateway) *Lifecycle {
	return &Lifecycle{reg: reg, binder: binder, notifier: notifier, gw: gw}
}

// BindUser handles a user_connect announcement: resolve the identity, claim
// the registry entry, then announce presence. Re-announcing on an already
// routable session refreshes the identity in place.
func (l *Lifecycle) BindUser(ctx context.Context, sess *Session, creds Credentials) error {
	if sess.State() == StateClosed {
		return errs.ErrBinding.WithDetail("session closed")
	}
	id, err := l.binder.Bind(ctx, sess.ConnID, creds)
	if err != nil {
		return err
	}
	sess.setBound(id)
	l.reg.Register(sess.ConnID, id)
	l.notifier.OnUserArrived(id, sess.ConnID)
	sess.setRoutable()
	logger.Infof("[lifecycle] user %s routable on conn %s", id.ID, sess.ConnID)
	return nil
}

// BindAdmin handles admin_connect: claim the admin slot (displacing any
// previous holder) and hand the caller the current user snapshot.
func (l *Lifecycle) BindAdmin(ctx context.Context, sess *Session, name string) error {
	if sess.State() == StateClosed {
		return errs.ErrBinding.WithDetail("session closed")
	}
	id := l.binder.BindAdmin(name)
	sess.setBound(id)
	l.reg.Register(sess.ConnID, id)
	l.reg.SetAdmin(sess.ConnID)
	users := l.reg.SnapshotActiveUsers()
	l.notifier.OnAdminArrived(sess.ConnID, users)
	sess.setRoutable()
	logger.Infof("[lifecycle] admin routable on conn %s, %d users active", sess.ConnID, len(users))
	return nil
}

// Close tears the session down. Safe to call more than once; only the first
// call unregisters and announces the departure. A superseded connection's
// close never announces offline, its identity lives on elsewhere.
func (l *Lifecycle) Close(sess *Session) {
	if !sess.beginClose() {
		return
	}
	id, wasCurrent, ok := l.reg.Unregister(sess.ConnID)
	if !ok {
		return
	}
	if !wasCurrent {
		logger.Infof("[lifecycle] superseded conn %s closed, identity %s stays online", sess.ConnID, id.ID)
		return
	}
	l.notifier.OnDeparted(id)
	if id.Role == RoleUser && l.gw != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()
			if err := l.gw.MarkDeparted(ctx, id.ID); err != nil {
				logger.Warnf("[lifecycle] mark departed %s: %v", id.ID, err)
			}
		}()
	}
	logger.Infof("[lifecycle] conn %s closed, identity %s offline", sess.ConnID, id.ID)
}
