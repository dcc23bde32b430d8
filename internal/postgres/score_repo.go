package postgres

import (
	"context"

	"github.com/scorekeep/score-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScoreRepository struct {
	db *pgxpool.Pool
}

func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Adjust applies the delta as a single atomic UPDATE, so concurrent
// adjustments on the same score never lose writes. The joined
// participant name and room code feed the score-updated broadcast.
func (r *ScoreRepository) Adjust(ctx context.Context, id string, delta int) (*domain.ScoreUpdate, error) {
	query := `
		UPDATE scores s
		SET value = s.value + $2
		FROM games g, rooms rm, participants p
		WHERE s.id = $1
		  AND g.id = s.game_id
		  AND rm.id = g.room_id
		  AND p.id = s.participant_id
		RETURNING s.id, s.game_id, s.participant_id, s.value, p.name, rm.code`
	var upd domain.ScoreUpdate
	err := r.db.QueryRow(ctx, query, id, delta).Scan(
		&upd.Score.ID, &upd.Score.GameID, &upd.Score.ParticipantID, &upd.Score.Value,
		&upd.ParticipantName, &upd.RoomCode)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrScoreNotFound
		}
		return nil, err
	}
	return &upd, nil
}
