package postgres

import (
	"context"

	"github.com/scorekeep/score-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ParticipantRepository struct {
	db *pgxpool.Pool
}

func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (id, room_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at`
	return r.db.QueryRow(ctx, query, p.ID, p.RoomID, p.Name).Scan(&p.CreatedAt)
}

func (r *ParticipantRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.Participant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, room_id, name, created_at FROM participants WHERE room_id=$1 ORDER BY created_at ASC, id ASC`,
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.Participant, 0, 8)
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.RoomID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
