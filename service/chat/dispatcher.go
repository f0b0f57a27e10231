package chat

import (
	"context"

	"github.com/akhi1986akhi/webChat/tools/errs"
)

// Context carries per-frame call state into a handler.
type Context struct {
	Srv *Server
	Ctx context.Context
}

// Handler processes all frames of one inbound event type.
type Handler interface {
	Event() string
	Handle(c *Context, f *Frame, sess *Session) error
}

// Dispatcher maps inbound event names to handlers. Registration happens at
// boot, dispatch on the connection read goroutines.
type Dispatcher struct {
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Event()] = h
}

func (d *Dispatcher) Dispatch(c *Context, f *Frame, sess *Session) error {
	h, ok := d.handlers[f.Event]
	if !ok {
		return errs.New("unknown event " + f.Event)
	}
	return h.Handle(c, f, sess)
}
