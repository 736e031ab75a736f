package presence

import (
	"context"
	"log/slog"
	"time"

	"batepapo/internal/dependencies/clock"
	"batepapo/internal/services/chat"
	"batepapo/internal/services/registry"
)

// Default sweep cadence and liveness threshold
const (
	DefaultInterval       = 15 * time.Second
	DefaultStaleThreshold = 10 * time.Second
)

// Sweeper is the periodic task that expires stale participants and records
// their departure in the message log. Nothing waits on it: every failure is
// logged and swallowed, and the next cycle proceeds regardless.
type Sweeper struct {
	registry  *registry.Controller
	chat      *chat.Controller
	clock     clock.Clock
	logger    *slog.Logger
	interval  time.Duration
	threshold time.Duration
}

// NewSweeper creates a Sweeper. Non-positive interval/threshold fall back
// to the defaults.
func NewSweeper(
	reg *registry.Controller,
	chatController *chat.Controller,
	clk clock.Clock,
	logger *slog.Logger,
	interval time.Duration,
	threshold time.Duration,
) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if threshold <= 0 {
		threshold = DefaultStaleThreshold
	}
	return &Sweeper{
		registry:  reg,
		chat:      chatController,
		clock:     clk,
		logger:    logger,
		interval:  interval,
		threshold: threshold,
	}
}

// Run executes the sweep loop until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info("starting presence sweeper",
		slog.Duration("interval", s.interval),
		slog.Duration("threshold", s.threshold),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("presence sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs one expiry cycle. Each stale participant is handled
// independently: a failure removing or recording one never aborts the rest.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	participants, err := s.registry.List(ctx)
	if err != nil {
		s.logger.Error("sweep could not list participants", slog.String("error", err.Error()))
		return
	}

	now := s.clock.Now()
	for _, p := range participants {
		if !p.StaleAt(now, s.threshold) {
			continue
		}

		if err := s.registry.Remove(ctx, p.Name); err != nil {
			s.logger.Error("could not remove stale participant",
				slog.String("name", p.Name),
				slog.String("error", err.Error()),
			)
			continue
		}

		if _, err := s.chat.AppendSystem(ctx, p.Name, chat.LeaveNoticeText); err != nil {
			s.logger.Error("could not record leave notice",
				slog.String("name", p.Name),
				slog.String("error", err.Error()),
			)
			continue
		}

		s.logger.Info("participant expired", slog.String("name", p.Name))
	}
}
