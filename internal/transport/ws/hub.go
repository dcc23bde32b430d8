package ws

import (
	"sync"
)

type Conn interface {
	Send(msg Message) error
	Close() error
}

// Hub is the process-wide channel registry: room code -> set of live
// connections. It is an explicit instance owned by the server process,
// created on start and dropped on shutdown.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[Conn]struct{}
	conns map[Conn]map[string]struct{} // reverse index for Drop
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[Conn]struct{}),
		conns: make(map[Conn]map[string]struct{}),
	}
}

// Join subscribes the connection to the code's channel. Joining more
// rooms does not leave earlier ones; the caller leaves explicitly.
func (h *Hub) Join(code string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rs, ok := h.rooms[code]
	if !ok {
		rs = make(map[Conn]struct{})
		h.rooms[code] = rs
	}
	rs[c] = struct{}{}

	cs, ok := h.conns[c]
	if !ok {
		cs = make(map[string]struct{})
		h.conns[c] = cs
	}
	cs[code] = struct{}{}
}

func (h *Hub) Leave(code string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(code, c)
}

// Drop removes the connection from every channel it joined. Called on
// connection termination; no explicit leave messages are required.
func (h *Hub) Drop(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for code := range h.conns[c] {
		h.leaveLocked(code, c)
	}
	delete(h.conns, c)
}

func (h *Hub) leaveLocked(code string, c Conn) {
	if rs, ok := h.rooms[code]; ok {
		delete(rs, c)
		if len(rs) == 0 {
			delete(h.rooms, code)
		}
	}
	if cs, ok := h.conns[c]; ok {
		delete(cs, code)
	}
}

// RoomSize reports how many connections are in the code's channel.
func (h *Hub) RoomSize(code string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[code])
}

// Broadcast delivers the event to every connection currently in the
// code's channel, at most once each, best-effort. Fan-out runs under
// the hub lock so each connection sees events in the order the server
// issued them; connections joining later see nothing (no replay).
func (h *Hub) Broadcast(room, event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.rooms[room] {
		_ = c.Send(Message{Type: event, Payload: payload}) // best-effort
	}
}
