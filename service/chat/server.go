package chat

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/akhi1986akhi/webChat/logger"
	"github.com/akhi1986akhi/webChat/tools/errs"
	"github.com/akhi1986akhi/webChat/tools/ids"
)

// Server wires the relay together: one registry, one connection table, one
// dispatcher. HandleWS runs one read loop per socket; everything a frame
// triggers happens on that goroutine, so a connection's own events stay
// ordered.
type Server struct {
	nodeID string

	reg       *Registry
	conns     *ConnManager
	disp      *Dispatcher
	binder    *Binder
	notifier  *Notifier
	router    *Router
	lifecycle *Lifecycle
	archiver  *Archiver

	upgrader websocket.Upgrader
}

func NewServer(nodeID string, gw Gateway, conf ManagerConf, kafkaTopic string) *Server {
	s := &Server{nodeID: nodeID}
	s.reg = NewRegistry()
	s.conns = NewConnManager(conf, s.reg)
	s.disp = NewDispatcher()
	s.binder = NewBinder(gw)
	s.notifier = NewNotifier(s.reg, s.conns, nodeID)
	if gw != nil || kafkaTopic != "" {
		s.archiver = NewArchiver(gw, 2, 256, kafkaTopic)
	}
	s.router = NewRouter(s.reg, s.conns, s.archiver)
	s.lifecycle = NewLifecycle(s.reg, s.binder, s.notifier, gw)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	return s
}

func (s *Server) Registry() *Registry   { return s.reg }
func (s *Server) Router() *Router       { return s.router }
func (s *Server) Lifecycle() *Lifecycle { return s.lifecycle }
func (s *Server) Conns() *ConnManager   { return s.conns }

// Register adds a frame handler; called once at boot.
func (s *Server) Register(h Handler) {
	s.disp.Register(h)
}

// HandleWS upgrades the request and runs the connection to completion.
func (s *Server) HandleWS(c *gin.Context) {
	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[server] upgrade failed: %v", err)
		return
	}

	connID := ids.GenerateString()
	s.conns.Add(connID, ws)
	sess := NewSession(connID)
	logger.Infof("[server] conn %s accepted from %s", connID, c.ClientIP())

	ws.SetReadLimit(maxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		s.conns.Touch(connID)
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	defer func() {
		s.lifecycle.Close(sess)
		s.conns.Remove(connID)
		logger.Infof("[server] conn %s gone", connID)
	}()

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("[server] conn %s read: %v", connID, err)
			}
			return
		}
		s.conns.Touch(connID)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))

		f, err := ParseFrame(raw)
		if err != nil {
			s.EmitError(connID, errs.NewCodeError(400, "malformed frame"))
			continue
		}
		if err := s.disp.Dispatch(&Context{Srv: s, Ctx: c.Request.Context()}, f, sess); err != nil {
			s.EmitError(connID, err)
		}
	}
}

// EmitError reports a failed operation back to its sender. The operation is
// dead, the connection is not.
func (s *Server) EmitError(connID string, err error) {
	var ce *errs.CodeError
	if !stderrors.As(err, &ce) {
		ce = &errs.CodeError{Code: 500, Msg: err.Error()}
	}
	msg := ce.Msg
	if ce.Detail != "" {
		msg += ": " + ce.Detail
	}
	s.conns.Emit(connID, EventError, ErrorPayload{Code: ce.Code, Message: msg})
}

// HealthSnapshot feeds the health endpoint.
func (s *Server) HealthSnapshot() (adminOnline bool, activeUsers int) {
	return s.reg.AdminConn() != "", s.reg.ActiveUserCount()
}

// Shutdown stops the sweeper and drains the archiver.
func (s *Server) Shutdown() {
	s.conns.Stop()
	if s.archiver != nil {
		s.archiver.Stop()
	}
}
