package domain

import "time"

type Participant struct {
	ID        string    `db:"id" json:"id"`
	RoomID    string    `db:"room_id" json:"roomId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
