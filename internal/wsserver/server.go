package wsserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/kapu/chess-rooms-go/internal/obslog"
	"github.com/kapu/chess-rooms-go/pkg/roomdto"
)

const (
	sendBufferSize = 64
	writeTimeout   = 5 * time.Second
	pingInterval   = 15 * time.Second
)

// Dispatcher consumes inbound events and connection teardown.
type Dispatcher interface {
	Dispatch(connID string, ev roomdto.Event)
	Disconnect(connID string)
}

type client struct {
	id     string
	conn   *websocket.Conn
	send   chan roomdto.Event
	cancel context.CancelFunc
}

// Server owns the websocket endpoint and the per-connection write
// pumps. Reads feed the dispatcher; writes go through a buffered
// channel per client so a slow peer never blocks a broadcast.
type Server struct {
	mu             sync.RWMutex
	clients        map[string]*client
	hub            Dispatcher
	originPatterns []string
}

func New(originPatterns []string) *Server {
	return &Server{
		clients:        make(map[string]*client),
		originPatterns: originPatterns,
	}
}

// AttachHub wires the dispatcher after construction; the hub needs the
// server as its Sender, so one side attaches late.
func (s *Server) AttachHub(h Dispatcher) { s.hub = h }

// Send queues an event for one connection. Delivery is fire and
// forget: if the client's buffer is full the event is dropped.
func (s *Server) Send(connID string, ev roomdto.Event) {
	s.mu.RLock()
	c, ok := s.clients[connID]
	s.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case c.send <- ev:
	default:
		obslog.L().Warn("send_buffer_full",
			zap.String("conn_id", connID),
			zap.String("event", ev.Name),
		)
	}
}

// HandleWS upgrades the request and runs the connection's read loop
// until the peer disconnects or the server shuts down.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:  s.originPatterns,
		CompressionMode: websocket.CompressionNoContextTakeover,
	})
	if err != nil {
		obslog.L().Warn("ws_accept_failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	c := &client{
		id:     uuid.NewString(),
		conn:   conn,
		send:   make(chan roomdto.Event, sendBufferSize),
		cancel: cancel,
	}

	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()

	obslog.L().Info("ws_connected", zap.String("conn_id", c.id))
	go s.writeLoop(ctx, c)
	s.readLoop(ctx, c)

	s.mu.Lock()
	delete(s.clients, c.id)
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Disconnect(c.id)
	}
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "")
	obslog.L().Info("ws_disconnected", zap.String("conn_id", c.id))
}

func (s *Server) readLoop(ctx context.Context, c *client) {
	for {
		var ev roomdto.Event
		if err := wsjson.Read(ctx, c.conn, &ev); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && ctx.Err() == nil {
				obslog.L().Debug("ws_read_error", zap.String("conn_id", c.id), zap.Error(err))
			}
			return
		}
		if s.hub != nil {
			s.hub.Dispatch(c.id, ev)
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.send:
			wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, c.conn, ev)
			wcancel()
			if err != nil {
				obslog.L().Debug("ws_write_error", zap.String("conn_id", c.id), zap.Error(err))
				c.cancel()
				return
			}
		case <-ticker.C:
			pctx, pcancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pctx)
			pcancel()
			if err != nil {
				c.cancel()
				return
			}
		}
	}
}

// CloseAll force-closes every live connection, used during shutdown.
func (s *Server) CloseAll() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		c.cancel()
		_ = c.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}

// ClientCount reports the number of live connections.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
