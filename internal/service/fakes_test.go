package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/scorekeep/score-service/internal/domain"

	"github.com/google/uuid"
)

// In-memory stores mirroring the postgres repo contracts, shared
// through one fakeDB so the services under test see consistent state.

type fakeDB struct {
	mu           sync.Mutex
	rooms        []domain.Room
	participants []domain.Participant
	games        []domain.Game
	scores       []domain.Score
}

func newFakeDB() *fakeDB { return &fakeDB{} }

type fakeRooms struct{ db *fakeDB }

func (f *fakeRooms) Create(_ context.Context, room *domain.Room) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, r := range f.db.rooms {
		if r.Code == room.Code && r.IsActive && room.IsActive {
			return domain.ErrCodeTaken
		}
	}
	room.CreatedAt = time.Now()
	f.db.rooms = append(f.db.rooms, *room)
	return nil
}

func (f *fakeRooms) GetByCode(_ context.Context, code string) (*domain.Room, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var found *domain.Room
	for i := range f.db.rooms {
		r := f.db.rooms[i]
		if r.Code != code {
			continue
		}
		if found == nil || (r.IsActive && !found.IsActive) {
			cp := r
			found = &cp
		}
	}
	if found == nil {
		return nil, domain.ErrRoomNotFound
	}
	return found, nil
}

func (f *fakeRooms) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	var n int64
	for i := range f.db.rooms {
		if f.db.rooms[i].IsActive && f.db.rooms[i].ExpiresAt.Before(now) {
			f.db.rooms[i].IsActive = false
			n++
		}
	}
	return n, nil
}

type fakeParticipants struct{ db *fakeDB }

func (f *fakeParticipants) Create(_ context.Context, p *domain.Participant) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	p.CreatedAt = time.Now()
	f.db.participants = append(f.db.participants, *p)
	return nil
}

func (f *fakeParticipants) ListByRoom(_ context.Context, roomID string) ([]domain.Participant, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := make([]domain.Participant, 0, 4)
	for _, p := range f.db.participants {
		if p.RoomID == roomID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeGames struct{ db *fakeDB }

func (f *fakeGames) CreateWithScores(_ context.Context, game *domain.Game, participants []domain.Participant) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()

	roomExists := false
	for _, r := range f.db.rooms {
		if r.ID == game.RoomID {
			roomExists = true
			break
		}
	}
	if !roomExists {
		return domain.ErrRoomNotFound
	}
	for _, g := range f.db.games {
		if g.RoomID == game.RoomID && g.EndedAt == nil {
			return domain.ErrGameInProgress
		}
	}

	game.Scores = make([]domain.Score, 0, len(participants))
	for i := range participants {
		p := participants[i]
		s := domain.Score{
			ID:            uuid.NewString(),
			GameID:        game.ID,
			ParticipantID: p.ID,
			Participant:   &p,
		}
		f.db.scores = append(f.db.scores, s)
		game.Scores = append(game.Scores, s)
	}
	f.db.games = append(f.db.games, *game)
	return nil
}

func (f *fakeGames) Get(_ context.Context, id string) (*domain.Game, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for i := range f.db.games {
		if f.db.games[i].ID == id {
			return f.loadLocked(f.db.games[i]), nil
		}
	}
	return nil, domain.ErrGameNotFound
}

func (f *fakeGames) End(_ context.Context, id string, at time.Time) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for i := range f.db.games {
		if f.db.games[i].ID == id && f.db.games[i].EndedAt == nil {
			t := at
			f.db.games[i].EndedAt = &t
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGames) ListByRoom(_ context.Context, roomID string, endedOnly bool) ([]domain.Game, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := make([]domain.Game, 0, 4)
	for _, g := range f.db.games {
		if g.RoomID != roomID {
			continue
		}
		if endedOnly && g.EndedAt == nil {
			continue
		}
		out = append(out, *f.loadLocked(g))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}

func (f *fakeGames) loadLocked(g domain.Game) *domain.Game {
	for _, r := range f.db.rooms {
		if r.ID == g.RoomID {
			g.RoomCode = r.Code
			break
		}
	}
	g.Scores = []domain.Score{}
	for _, s := range f.db.scores {
		if s.GameID == g.ID {
			g.Scores = append(g.Scores, s)
		}
	}
	return &g
}

type fakeScores struct{ db *fakeDB }

func (f *fakeScores) Adjust(_ context.Context, id string, delta int) (*domain.ScoreUpdate, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for i := range f.db.scores {
		if f.db.scores[i].ID != id {
			continue
		}
		f.db.scores[i].Value += delta
		upd := &domain.ScoreUpdate{Score: f.db.scores[i]}
		for _, p := range f.db.participants {
			if p.ID == f.db.scores[i].ParticipantID {
				upd.ParticipantName = p.Name
				break
			}
		}
		for _, g := range f.db.games {
			if g.ID != f.db.scores[i].GameID {
				continue
			}
			for _, r := range f.db.rooms {
				if r.ID == g.RoomID {
					upd.RoomCode = r.Code
					break
				}
			}
		}
		return upd, nil
	}
	return nil, domain.ErrScoreNotFound
}

type broadcastCall struct {
	Room    string
	Event   string
	Payload any
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (f *fakeBroadcaster) Broadcast(room, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, broadcastCall{Room: room, Event: event, Payload: payload})
}

func (f *fakeBroadcaster) Calls() []broadcastCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]broadcastCall, len(f.calls))
	copy(out, f.calls)
	return out
}
