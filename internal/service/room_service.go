package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/scorekeep/score-service/internal/domain"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var codeRe = regexp.MustCompile(`^[0-9]{4}$`)

type RoomStore interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByCode(ctx context.Context, code string) (*domain.Room, error)
}

type ParticipantStore interface {
	Create(ctx context.Context, p *domain.Participant) error
	ListByRoom(ctx context.Context, roomID string) ([]domain.Participant, error)
}

type GameLister interface {
	ListByRoom(ctx context.Context, roomID string, endedOnly bool) ([]domain.Game, error)
}

type RoomService struct {
	rooms        RoomStore
	participants ParticipantStore
	games        GameLister
	bcast        Broadcaster
	clock        clockwork.Clock

	ttl          time.Duration
	codeAttempts int
}

func NewRoomService(rooms RoomStore, participants ParticipantStore, games GameLister, bcast Broadcaster, clock clockwork.Clock, ttl time.Duration) *RoomService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RoomService{
		rooms:        rooms,
		participants: participants,
		games:        games,
		bcast:        bcast,
		clock:        clock,
		ttl:          ttl,
		codeAttempts: 5,
	}
}

func (s *RoomService) SetCodeAttempts(n int) {
	if n > 0 {
		s.codeAttempts = n
	}
}

// CreateRoom draws a 4-digit code (leading zeros preserved) and inserts
// an active room expiring after the configured TTL. A collision with a
// live room's code triggers a redraw, bounded by codeAttempts.
func (s *RoomService) CreateRoom(ctx context.Context) (*domain.Room, error) {
	now := s.clock.Now()
	for i := 0; i < s.codeAttempts; i++ {
		room := &domain.Room{
			ID:        uuid.NewString(),
			Code:      fmt.Sprintf("%04d", rand.Intn(10000)),
			IsActive:  true,
			ExpiresAt: now.Add(s.ttl),
		}
		err := s.rooms.Create(ctx, room)
		if err == nil {
			return room, nil
		}
		if !errors.Is(err, domain.ErrCodeTaken) {
			return nil, fmt.Errorf("rooms.Create: %w", err)
		}
	}
	return nil, fmt.Errorf("rooms.Create: %w", domain.ErrCodeTaken)
}

// GetRoom loads the room by code with its participants and all games
// (scores joined to participants, most-recent-first). Expiry is checked
// here at read time, so a stale room 410s even before the sweeper runs.
func (s *RoomService) GetRoom(ctx context.Context, code string) (*domain.Room, error) {
	room, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Expired(s.clock.Now()) {
		return nil, domain.ErrRoomExpired
	}

	if room.Participants, err = s.participants.ListByRoom(ctx, room.ID); err != nil {
		return nil, fmt.Errorf("participants.ListByRoom: %w", err)
	}
	if room.Games, err = s.games.ListByRoom(ctx, room.ID, false); err != nil {
		return nil, fmt.Errorf("games.ListByRoom: %w", err)
	}
	return room, nil
}

// AddParticipant validates the name, checks the room is still usable
// and inserts the participant, then fans participant-added out to the
// room's channel.
func (s *RoomService) AddParticipant(ctx context.Context, code, name string) (*domain.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}

	room, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Expired(s.clock.Now()) {
		return nil, domain.ErrRoomExpired
	}

	p := &domain.Participant{
		ID:     uuid.NewString(),
		RoomID: room.ID,
		Name:   name,
	}
	if err := s.participants.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("participants.Create: %w", err)
	}

	s.bcast.Broadcast(room.Code, EventParticipantAdded, p)
	return p, nil
}

func (s *RoomService) lookup(ctx context.Context, code string) (*domain.Room, error) {
	if !codeRe.MatchString(code) {
		return nil, domain.ErrBadCode
	}
	return s.rooms.GetByCode(ctx, code)
}
