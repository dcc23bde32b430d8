package service

// Event names delivered to every connection subscribed to a room's
// channel. Delivery is best-effort and never affects the triggering
// request's outcome.
const (
	EventParticipantAdded = "participant-added"
	EventGameStarted      = "game-started"
	EventGameEnded        = "game-ended"
	EventScoreUpdated     = "score-updated"
)

// Broadcaster fans an event out to the room's channel. The websocket
// hub implements it in production; tests inject a recording fake.
type Broadcaster interface {
	Broadcast(room, event string, payload any)
}

// ScoreUpdatedEvent is the score-updated payload.
type ScoreUpdatedEvent struct {
	ScoreID         string `json:"scoreId"`
	ParticipantID   string `json:"participantId"`
	Value           int    `json:"value"`
	ParticipantName string `json:"participantName"`
}
