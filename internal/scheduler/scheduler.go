package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Pruner drops expired entries and reports how many were removed.
type Pruner interface {
	Prune() int
}

// Scheduler periodically prunes the location key cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
	log       *slog.Logger
}

// New creates a new Scheduler. A nil pruner disables it.
func New(pruner Pruner, interval time.Duration, log *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		pruner:    pruner,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.pruner == nil {
		s.log.Info("scheduler: location key cache disabled; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	// The first run would prune an empty cache.
	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.prune)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) prune() {
	removed := s.pruner.Prune()
	s.log.Debug("scheduler: pruned location key cache", "removed", removed)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
