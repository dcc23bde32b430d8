package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/scorekeep/score-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts the room. A partial unique index on (code) where
// is_active maps code collisions with a live room to ErrCodeTaken so
// the caller can redraw.
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (id, code, is_active, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, query, room.ID, room.Code, room.IsActive, room.ExpiresAt).
		Scan(&room.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrCodeTaken
		}
		return err
	}
	return nil
}

func (r *RoomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	// Only live rooms hold the code uniquely; among dead ones prefer the
	// most recent so expired lookups stay deterministic.
	var rm domain.Room
	query := `
		SELECT id, code, is_active, expires_at, created_at
		FROM rooms
		WHERE code=$1
		ORDER BY is_active DESC, created_at DESC
		LIMIT 1`
	err := r.db.QueryRow(ctx, query, code).
		Scan(&rm.ID, &rm.Code, &rm.IsActive, &rm.ExpiresAt, &rm.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// DeactivateExpired flips is_active off for every room past its expiry
// in one bulk update. Safe to re-run; already-deactivated rooms do not
// match the predicate.
func (r *RoomRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx,
		`UPDATE rooms SET is_active=false WHERE expires_at < $1 AND is_active`, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
