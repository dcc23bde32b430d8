package domain

import "time"

type Game struct {
	ID        string     `db:"id" json:"id"`
	RoomID    string     `db:"room_id" json:"roomId"`
	StartedAt time.Time  `db:"started_at" json:"startedAt"`
	EndedAt   *time.Time `db:"ended_at" json:"endedAt"` // nil while the game is in progress

	// RoomCode is joined in on detail loads; broadcasts are keyed by it.
	RoomCode string `json:"roomCode,omitempty"`

	Scores []Score `json:"scores"`
}

func (g *Game) Ended() bool { return g.EndedAt != nil }
