package chat

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akhi1986akhi/webChat/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client wraps one websocket connection with a buffered outbound queue. The
// write pump is the only goroutine touching the socket for writes.
type Client struct {
	ConnID string
	ws     *websocket.Conn
	send   chan []byte

	closeOnce sync.Once
	done      chan struct{}

	mu         sync.Mutex
	lastActive time.Time
}

func NewClient(connID string, ws *websocket.Conn, queue int) *Client {
	if queue <= 0 {
		queue = 64
	}
	return &Client{
		ConnID:     connID,
		ws:         ws,
		send:       make(chan []byte, queue),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}
}

// Enqueue hands a frame to the write pump. A full queue drops the frame: a
// destination that cannot keep up must not stall the router.
func (c *Client) Enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- data:
		return true
	default:
		logger.Warnf("[client] send queue full, dropping frame conn=%s", c.ConnID)
		return false
	}
}

func (c *Client) Touch() {
	c.mu.Lock()
	c.lastActive = time.Now()
	c.mu.Unlock()
}

func (c *Client) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Close stops the write pump and closes the socket. Idempotent.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// writePump flushes the send queue to the socket and keeps the ping timer.
// Exits on the first write error or on Close.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug("[client] write failed conn=" + c.ConnID)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
