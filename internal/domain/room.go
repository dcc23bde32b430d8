package domain

import "time"

type Room struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Filled on detail loads only.
	Participants []Participant `json:"participants,omitempty"`
	Games        []Game        `json:"games,omitempty"`
}

// Expired reports whether the room is unusable at the given instant.
// Checked at read time, independent of the sweeper, so expiry holds
// even between sweep runs.
func (r *Room) Expired(now time.Time) bool {
	return !r.IsActive || now.After(r.ExpiresAt)
}
