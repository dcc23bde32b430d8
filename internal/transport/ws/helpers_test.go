package ws

import (
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func testMux(srv *Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.HandleWS)
	return mux
}

func defaultDialer() *websocket.Dialer {
	return &websocket.Dialer{HandshakeTimeout: 2 * time.Second}
}

type clientConn struct {
	conn *websocket.Conn
}

func (c *clientConn) send(t *testing.T, data []byte) {
	t.Helper()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func (c *clientConn) join(t *testing.T, code string) {
	t.Helper()
	c.control(t, TypeJoinRoom, code)
}

func (c *clientConn) leave(t *testing.T, code string) {
	t.Helper()
	c.control(t, TypeLeaveRoom, code)
}

func (c *clientConn) control(t *testing.T, msgType, code string) {
	t.Helper()
	data, err := json.Marshal(clientMessage{Type: msgType, Room: code})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	c.send(t, data)
}

func (c *clientConn) read(t *testing.T, timeout time.Duration) Message {
	t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
	return msg
}

func (c *clientConn) expectNone(t *testing.T, timeout time.Duration) {
	t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	if _, _, err := c.conn.ReadMessage(); err == nil {
		t.Fatal("expected no message")
	} else if netErr, ok := err.(net.Error); !ok || !netErr.Timeout() {
		t.Fatalf("expected read timeout, got %v", err)
	}
}
