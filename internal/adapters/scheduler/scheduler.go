package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"sojasapi/internal/ports/input"
)

// Scheduler runs a full remote sync periodically.
type Scheduler struct {
	sched    gocron.Scheduler
	sync     input.SyncUseCase
	interval time.Duration
	logger   *slog.Logger
}

func New(sync input.SyncUseCase, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{
		sched:    sched,
		sync:     sync,
		interval: interval,
		logger:   logger,
	}, nil
}

// Start registers the sync job, runs it once right away and then every interval.
// Runs never overlap; a run still busy when the next one is due is rescheduled.
// Jobs stop when ctx is cancelled or Shutdown is called.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.RunOnce(ctx) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName("remote-sync"),
	)
	if err != nil {
		return fmt.Errorf("register sync job: %w", err)
	}
	s.sched.Start()
	s.logger.Info("sync scheduler started", "interval", s.interval)
	return nil
}

// RunOnce performs one full sync and logs its outcome.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	summary, err := s.sync.SyncAll(ctx)
	if err != nil {
		s.logger.Error("scheduled sync failed", "pages", summary.Pages, "events", summary.Events, "err", err)
		return
	}
	s.logger.Info("scheduled sync done", "pages", summary.Pages, "events", summary.Events, "duration", time.Since(start))
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
