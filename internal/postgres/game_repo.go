package postgres

import (
	"context"
	"time"

	"github.com/scorekeep/score-service/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameRepository struct {
	db *pgxpool.Pool
}

func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

// CreateWithScores inserts the game plus one zero-valued score per
// participant in a single transaction. The room row is locked first so
// two concurrent starts for the same room serialize, and the second one
// sees the first game and fails with ErrGameInProgress.
func (r *GameRepository) CreateWithScores(ctx context.Context, game *domain.Game, participants []domain.Participant) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var roomID string
	if err := tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id=$1 FOR UPDATE`, game.RoomID).Scan(&roomID); err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrRoomNotFound
		}
		return err
	}

	var active bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM games WHERE room_id=$1 AND ended_at IS NULL)`,
		game.RoomID).Scan(&active); err != nil {
		return err
	}
	if active {
		return domain.ErrGameInProgress
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO games (id, room_id, started_at) VALUES ($1, $2, $3)`,
		game.ID, game.RoomID, game.StartedAt); err != nil {
		return err
	}

	game.Scores = make([]domain.Score, 0, len(participants))
	for i := range participants {
		p := participants[i]
		s := domain.Score{
			ID:            uuid.NewString(),
			GameID:        game.ID,
			ParticipantID: p.ID,
			Value:         0,
			Participant:   &p,
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO scores (id, game_id, participant_id, value) VALUES ($1, $2, $3, 0)`,
			s.ID, s.GameID, s.ParticipantID); err != nil {
			return err
		}
		game.Scores = append(game.Scores, s)
	}

	return tx.Commit(ctx)
}

// Get loads one game with its room code and scores joined to participants.
func (r *GameRepository) Get(ctx context.Context, id string) (*domain.Game, error) {
	var g domain.Game
	query := `
		SELECT g.id, g.room_id, g.started_at, g.ended_at, rm.code
		FROM games g
		JOIN rooms rm ON rm.id = g.room_id
		WHERE g.id=$1`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&g.ID, &g.RoomID, &g.StartedAt, &g.EndedAt, &g.RoomCode)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}

	if err := r.attachScores(ctx, []*domain.Game{&g}); err != nil {
		return nil, err
	}
	return &g, nil
}

// End stamps ended_at once. Reports false when the game was already
// ended (or does not exist); the caller distinguishes those via Get.
func (r *GameRepository) End(ctx context.Context, id string, at time.Time) (bool, error) {
	cmd, err := r.db.Exec(ctx,
		`UPDATE games SET ended_at=$2 WHERE id=$1 AND ended_at IS NULL`, id, at)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByRoom returns the room's games most-recent-first, each with its
// scores. endedOnly restricts to finished games for history reads.
func (r *GameRepository) ListByRoom(ctx context.Context, roomID string, endedOnly bool) ([]domain.Game, error) {
	query := `
		SELECT g.id, g.room_id, g.started_at, g.ended_at, rm.code
		FROM games g
		JOIN rooms rm ON rm.id = g.room_id
		WHERE g.room_id=$1 AND ($2 = false OR g.ended_at IS NOT NULL)
		ORDER BY g.started_at DESC, g.id DESC`
	rows, err := r.db.Query(ctx, query, roomID, endedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]domain.Game, 0, 8)
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(&g.ID, &g.RoomID, &g.StartedAt, &g.EndedAt, &g.RoomCode); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Game, len(games))
	for i := range games {
		refs[i] = &games[i]
	}
	if err := r.attachScores(ctx, refs); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *GameRepository) attachScores(ctx context.Context, games []*domain.Game) error {
	if len(games) == 0 {
		return nil
	}

	ids := make([]string, 0, len(games))
	byID := make(map[string]*domain.Game, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
		byID[g.ID] = g
		g.Scores = []domain.Score{}
	}

	query := `
		SELECT s.id, s.game_id, s.participant_id, s.value,
		       p.id, p.room_id, p.name, p.created_at
		FROM scores s
		JOIN participants p ON p.id = s.participant_id
		WHERE s.game_id = ANY($1)
		ORDER BY p.created_at ASC, s.id ASC`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.Score
		var p domain.Participant
		if err := rows.Scan(&s.ID, &s.GameID, &s.ParticipantID, &s.Value,
			&p.ID, &p.RoomID, &p.Name, &p.CreatedAt); err != nil {
			return err
		}
		s.Participant = &p
		if g, ok := byID[s.GameID]; ok {
			g.Scores = append(g.Scores, s)
		}
	}
	return rows.Err()
}
