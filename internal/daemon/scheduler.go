package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/craftbook/internal/logfields"
)

// Scheduler runs the daemon's periodic housekeeping on gocron. Jobs receive
// the context the scheduler was started with.
type Scheduler struct {
	cron gocron.Scheduler

	mu  sync.RWMutex
	ctx context.Context
}

// NewScheduler creates a stopped scheduler.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{cron: s, ctx: context.Background()}, nil
}

// Start begins running jobs. ctx is handed to every job run.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	slog.Info("Starting scheduler", logfields.Count(len(s.cron.Jobs())))
	s.cron.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop(context.Context) error {
	slog.Info("Stopping scheduler")
	return s.cron.Shutdown()
}

// ScheduleEvery runs fn every interval. A run still in progress when the
// next one is due pushes that run back rather than overlapping it.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, fn func(ctx context.Context)) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}
	job, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			s.mu.RLock()
			ctx := s.ctx
			s.mu.RUnlock()
			if ctx.Err() != nil {
				return
			}

			start := time.Now()
			fn(ctx)
			slog.Debug("Scheduled job finished", logfields.Job(name),
				logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create %s job: %w", name, err)
	}
	return job.ID().String(), nil
}

// JobNames lists the registered jobs.
func (s *Scheduler) JobNames() []string {
	jobs := s.cron.Jobs()
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name()
	}
	return names
}
