package domain

type Score struct {
	ID            string `db:"id" json:"id"`
	GameID        string `db:"game_id" json:"gameId"`
	ParticipantID string `db:"participant_id" json:"participantId"`
	Value         int    `db:"value" json:"value"`

	// Joined participant record, filled on detail loads.
	Participant *Participant `json:"participant,omitempty"`
}

// ScoreUpdate is the result of an atomic ±1 adjustment, carrying the
// joined data a score-updated broadcast needs.
type ScoreUpdate struct {
	Score           Score
	ParticipantName string
	RoomCode        string
}
