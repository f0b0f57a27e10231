package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akhi1986akhi/webChat/logger"
)

// ManagerConf tunes the connection table and its background sweep.
type ManagerConf struct {
	SendQueue  int
	SweepEvery time.Duration
	OrphanTTL  time.Duration
}

// ConnManager owns the connID -> Client table and implements Emitter on top
// of it. A background sweeper closes superseded connections that sit idle
// past OrphanTTL; their read loops then run the normal teardown path.
type ConnManager struct {
	mu      sync.RWMutex
	clients map[string]*Client

	reg  *Registry
	conf ManagerConf

	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewConnManager(conf ManagerConf, reg *Registry) *ConnManager {
	m := &ConnManager{
		clients: make(map[string]*Client),
		reg:     reg,
		conf:    conf,
		stopCh:  make(chan struct{}),
	}
	if conf.SweepEvery > 0 && conf.OrphanTTL > 0 {
		go m.sweepLoop()
	}
	return m
}

// Add registers the socket under connID and starts its write pump.
func (m *ConnManager) Add(connID string, ws *websocket.Conn) *Client {
	c := NewClient(connID, ws, m.conf.SendQueue)
	m.mu.Lock()
	m.clients[connID] = c
	m.mu.Unlock()
	go c.writePump()
	return c
}

// Remove drops the client from the table and closes it. Idempotent.
func (m *ConnManager) Remove(connID string) {
	m.mu.Lock()
	c, ok := m.clients[connID]
	delete(m.clients, connID)
	m.mu.Unlock()
	if ok {
		c.Close()
	}
}

func (m *ConnManager) Get(connID string) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[connID]
	return c, ok
}

func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Emit implements Emitter. A frame to a connection that is gone is dropped;
// the registry told the caller what was live at decision time, and a race
// with teardown is not an error.
func (m *ConnManager) Emit(connID, event string, payload any) {
	data, err := MarshalFrame(event, payload)
	if err != nil {
		logger.Errorf("[connmgr] marshal %s: %v", event, err)
		return
	}
	c, ok := m.Get(connID)
	if !ok {
		logger.Debug("[connmgr] drop " + event + " to dead conn " + connID)
		return
	}
	c.Enqueue(data)
}

// Touch refreshes the activity clock, called from the read loop.
func (m *ConnManager) Touch(connID string) {
	if c, ok := m.Get(connID); ok {
		c.Touch()
	}
}

func (m *ConnManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *ConnManager) sweepLoop() {
	ticker := time.NewTicker(m.conf.SweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep closes connections that are no longer a routing target (superseded or
// never bound) and have been idle past OrphanTTL. Closing the socket makes
// the read loop exit, which runs the normal lifecycle teardown.
func (m *ConnManager) sweep() {
	cutoff := time.Now().Add(-m.conf.OrphanTTL)

	m.mu.RLock()
	victims := make([]*Client, 0)
	for connID, c := range m.clients {
		if m.reg.IsCurrent(connID) {
			continue
		}
		if c.LastActive().Before(cutoff) {
			victims = append(victims, c)
		}
	}
	m.mu.RUnlock()

	for _, c := range victims {
		logger.Infof("[connmgr] sweeping orphan conn %s idle since %s", c.ConnID, c.LastActive().Format(time.RFC3339))
		c.Close()
	}
}
