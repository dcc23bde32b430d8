package service

import (
	"context"
	"fmt"
	"time"

	"github.com/scorekeep/score-service/internal/domain"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type GameStore interface {
	CreateWithScores(ctx context.Context, game *domain.Game, participants []domain.Participant) error
	Get(ctx context.Context, id string) (*domain.Game, error)
	End(ctx context.Context, id string, at time.Time) (bool, error)
	ListByRoom(ctx context.Context, roomID string, endedOnly bool) ([]domain.Game, error)
}

type ScoreStore interface {
	Adjust(ctx context.Context, id string, delta int) (*domain.ScoreUpdate, error)
}

type GameService struct {
	rooms        RoomStore
	participants ParticipantStore
	games        GameStore
	scores       ScoreStore
	bcast        Broadcaster
	clock        clockwork.Clock
}

func NewGameService(rooms RoomStore, participants ParticipantStore, games GameStore, scores ScoreStore, bcast Broadcaster, clock clockwork.Clock) *GameService {
	return &GameService{
		rooms:        rooms,
		participants: participants,
		games:        games,
		scores:       scores,
		bcast:        bcast,
		clock:        clock,
	}
}

// StartGame snapshots the room's current participants into zero-valued
// scores inside one transaction. A participant added afterwards has no
// score until the next game. At most one game per room may be running;
// a concurrent second start fails with ErrGameInProgress.
func (s *GameService) StartGame(ctx context.Context, code string) (*domain.Game, error) {
	if !codeRe.MatchString(code) {
		return nil, domain.ErrBadCode
	}
	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	parts, err := s.participants.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("participants.ListByRoom: %w", err)
	}
	if len(parts) == 0 {
		return nil, domain.ErrNoParticipants
	}

	game := &domain.Game{
		ID:        uuid.NewString(),
		RoomID:    room.ID,
		RoomCode:  room.Code,
		StartedAt: s.clock.Now(),
	}
	if err := s.games.CreateWithScores(ctx, game, parts); err != nil {
		return nil, err
	}

	s.bcast.Broadcast(room.Code, EventGameStarted, game)
	return game, nil
}

// AdjustScore applies a single ±1 adjustment. The value is unbounded
// and may go negative; the store's atomic update is what prevents lost
// increments under concurrency.
func (s *GameService) AdjustScore(ctx context.Context, scoreID string, delta int) (*domain.Score, error) {
	if delta != 1 && delta != -1 {
		return nil, fmt.Errorf("delta must be +1 or -1, got %d", delta)
	}

	upd, err := s.scores.Adjust(ctx, scoreID, delta)
	if err != nil {
		return nil, err
	}

	s.bcast.Broadcast(upd.RoomCode, EventScoreUpdated, ScoreUpdatedEvent{
		ScoreID:         upd.Score.ID,
		ParticipantID:   upd.Score.ParticipantID,
		Value:           upd.Score.Value,
		ParticipantName: upd.ParticipantName,
	})
	return &upd.Score, nil
}

// EndGame stamps ended_at and broadcasts game-ended exactly once.
// Ending an already-ended game is a no-op: the game is returned
// unchanged with no re-stamp and no re-broadcast.
func (s *GameService) EndGame(ctx context.Context, gameID string) (*domain.Game, error) {
	stamped, err := s.games.End(ctx, gameID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if stamped {
		s.bcast.Broadcast(game.RoomCode, EventGameEnded, game)
	}
	return game, nil
}

// History returns the room's ended games most-recent-first. No expiry
// check: history stays readable for an expired room while its rows
// are retained.
func (s *GameService) History(ctx context.Context, code string) ([]domain.Game, error) {
	if !codeRe.MatchString(code) {
		return nil, domain.ErrBadCode
	}
	room, err := s.rooms.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.games.ListByRoom(ctx, room.ID, true)
}
