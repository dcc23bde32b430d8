package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
)

// RoomDeactivator is the one store operation the sweeper needs:
// a bulk deactivation of rooms past their expiry.
type RoomDeactivator interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically deactivates expired rooms. Each run is
// idempotent; a failed run is logged and retried on the next tick.
type Sweeper struct {
	rooms    RoomDeactivator
	clock    clockwork.Clock
	schedule string
	cron     *cron.Cron
}

func New(rooms RoomDeactivator, clock clockwork.Clock, schedule string) *Sweeper {
	if schedule == "" {
		schedule = "@hourly"
	}
	return &Sweeper{
		rooms:    rooms,
		clock:    clock,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Run performs a single sweep.
func (s *Sweeper) Run(ctx context.Context) error {
	n, err := s.rooms.DeactivateExpired(ctx, s.clock.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("sweeper deactivated rooms", "count", n)
	}
	return nil
}

// Start sweeps once immediately, then on the cron schedule until Stop.
func (s *Sweeper) Start(ctx context.Context) error {
	if err := s.Run(ctx); err != nil {
		slog.Error("sweeper initial run", "err", err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Run(context.Background()); err != nil {
			slog.Error("sweeper run", "err", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
