package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is one periodic task.
type Job struct {
	Name     string
	Interval time.Duration
	// Timeout bounds each run. Zero means no bound.
	Timeout time.Duration
	Run     func(ctx context.Context)
}

// Scheduler runs the clock and weather jobs. Each job runs once at start and
// then on its own interval; runs of the same job may overlap.
type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      []Job
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(logger *slog.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		jobs:      jobs,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules every job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.jobs) == 0 {
		s.logger.Info("no jobs configured; nothing to schedule")
		return nil
	}

	for _, job := range s.jobs {
		job := job
		interval := job.Interval
		if interval <= 0 {
			interval = time.Minute
		}

		_, err := s.scheduler.Every(interval).Do(func() {
			s.logger.Debug("running job", "job", job.Name)

			ctx := context.Background()
			if job.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, job.Timeout)
				defer cancel()
			}
			job.Run(ctx)
		})
		if err != nil {
			return err
		}
		s.logger.Info("scheduled job", "job", job.Name, "interval", interval.String())
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
