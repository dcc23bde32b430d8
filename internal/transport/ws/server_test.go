package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func dialTestServer(t *testing.T, ts *httptest.Server) *clientConn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := defaultDialer().Dial(wsURL, nil)
	if err != nil {
		t.Skipf("skipping test; websocket dial unavailable: %v", err)
	}
	c := &clientConn{conn: conn}
	t.Cleanup(func() { _ = conn.Close() })
	return c
}

func newWSTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	srv := NewServer(hub)
	mux := testMux(srv)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return hub, ts
}

func waitForMembers(t *testing.T, hub *Hub, code string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(code) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %s membership never reached %d (have %d)", code, want, hub.RoomSize(code))
}

func TestServerJoinAndReceive(t *testing.T) {
	hub, ts := newWSTestServer(t)

	first := dialTestServer(t, ts)
	second := dialTestServer(t, ts)
	outsider := dialTestServer(t, ts)

	first.join(t, "4821")
	second.join(t, "4821")
	waitForMembers(t, hub, "4821", 2)

	hub.Broadcast("4821", "score-updated", map[string]any{"value": 1})
	hub.Broadcast("4821", "score-updated", map[string]any{"value": 2})

	for name, c := range map[string]*clientConn{"first": first, "second": second} {
		for i, want := range []float64{1, 2} {
			msg := c.read(t, 2*time.Second)
			if msg.Type != "score-updated" {
				t.Fatalf("%s message %d type = %q", name, i, msg.Type)
			}
			payload := msg.Payload.(map[string]any)
			if payload["value"].(float64) != want {
				t.Fatalf("%s message %d value = %v, want %v (order broken)", name, i, payload["value"], want)
			}
		}
	}

	outsider.expectNone(t, 300*time.Millisecond)
}

func TestServerLeaveStopsDelivery(t *testing.T) {
	hub, ts := newWSTestServer(t)

	c := dialTestServer(t, ts)
	c.join(t, "4821")
	waitForMembers(t, hub, "4821", 1)

	c.leave(t, "4821")
	waitForMembers(t, hub, "4821", 0)

	hub.Broadcast("4821", "score-updated", nil)
	c.expectNone(t, 300*time.Millisecond)
}

func TestServerDisconnectDropsMembership(t *testing.T) {
	hub, ts := newWSTestServer(t)

	c := dialTestServer(t, ts)
	c.join(t, "4821")
	c.join(t, "1234")
	waitForMembers(t, hub, "4821", 1)
	waitForMembers(t, hub, "1234", 1)

	_ = c.conn.Close()
	waitForMembers(t, hub, "4821", 0)
	waitForMembers(t, hub, "1234", 0)
}

func TestServerIgnoresMalformedInput(t *testing.T) {
	hub, ts := newWSTestServer(t)

	c := dialTestServer(t, ts)
	c.send(t, []byte(`not json`))
	c.send(t, []byte(`{"type":"join-room","room":"12345"}`)) // bad code
	c.send(t, []byte(`{"type":"something-else","room":"4821"}`))
	c.join(t, "4821")
	waitForMembers(t, hub, "4821", 1)

	if hub.RoomSize("12345") != 0 {
		t.Error("malformed code created a channel")
	}
}
