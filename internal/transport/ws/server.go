package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/gorilla/websocket"
)

var roomCodeRe = regexp.MustCompile(`^[0-9]{4}$`)

type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub

	pingEvery time.Duration
}

func NewServer(hub *Hub) *Server {
	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws. Channel membership is driven entirely by
// join-room / leave-room control messages, so one connection can watch
// several rooms at once.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn)

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)

	// Dropped or closed: membership for every joined channel goes with it.
	s.hub.Drop(c)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "err", err)
	}
}

func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 16)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeJoinRoom:
			if roomCodeRe.MatchString(msg.Room) {
				s.hub.Join(msg.Room, c)
			}
		case TypeLeaveRoom:
			s.hub.Leave(msg.Room, c)
		default:
			// ignore
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn   *websocket.Conn
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
