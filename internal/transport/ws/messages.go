package ws

// Inbound control message types. Anything else arriving from a client
// is ignored.
const (
	TypeJoinRoom  = "join-room"
	TypeLeaveRoom = "leave-room"
)

// Message is the envelope for server-to-client events. Type carries the
// event name (participant-added, game-started, game-ended, score-updated).
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type clientMessage struct {
	Type string `json:"type"`
	Room string `json:"room"`
}
