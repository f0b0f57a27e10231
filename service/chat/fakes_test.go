package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// fakeEmitter records every emitted frame in order.
type fakeEmitter struct {
	mu     sync.Mutex
	events []emittedFrame
}

type emittedFrame struct {
	conn    string
	event   string
	payload any
}

func (f *fakeEmitter) Emit(connID, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, emittedFrame{conn: connID, event: event, payload: payload})
}

func (f *fakeEmitter) all() []emittedFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]emittedFrame, len(f.events))
	copy(out, f.events)
	return out
}

func (f *fakeEmitter) byEvent(event string) []emittedFrame {
	var out []emittedFrame
	for _, e := range f.all() {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEmitter) forConn(connID string) []emittedFrame {
	var out []emittedFrame
	for _, e := range f.all() {
		if e.conn == connID {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEmitter) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

// fakeGateway is an in-memory store keyed by identity key.
type fakeGateway struct {
	mu       sync.Mutex
	byKey    map[string]*Identity
	nextID   int
	departed []string
	records  []MessageRecord
	findErr  error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{byKey: map[string]*Identity{}}
}

func (g *fakeGateway) FindIdentityByKey(_ context.Context, key string) (*Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.findErr != nil {
		return nil, g.findErr
	}
	id, ok := g.byKey[strings.ToLower(key)]
	if !ok {
		return nil, nil
	}
	cp := *id
	return &cp, nil
}

func (g *fakeGateway) CreateIdentity(_ context.Context, key string, f IdentityFields) (*Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID++
	id := &Identity{
		ID:          fmt.Sprintf("u%d", g.nextID),
		Role:        RoleUser,
		DisplayName: f.Name,
		Email:       strings.ToLower(key),
		Contact:     f.Contact,
	}
	g.byKey[id.Email] = id
	cp := *id
	return &cp, nil
}

func (g *fakeGateway) UpdateIdentity(_ context.Context, identityID string, f IdentityFields) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range g.byKey {
		if id.ID == identityID {
			id.DisplayName = f.Name
			id.Contact = f.Contact
		}
	}
	return nil
}

func (g *fakeGateway) MarkDeparted(_ context.Context, identityID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.departed = append(g.departed, identityID)
	return nil
}

func (g *fakeGateway) AppendMessageRecord(_ context.Context, rec MessageRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records = append(g.records, rec)
	return nil
}

func (g *fakeGateway) recordCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.records)
}
