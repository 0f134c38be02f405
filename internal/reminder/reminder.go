// Package reminder periodically checks for due items and sends reminders.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/at-ishikawa/wordcycle/internal/review"
)

// Reminder summarizes the items waiting for the learner.
type Reminder struct {
	Due   int
	New   int
	Known int
}

// StatsProvider is implemented by review.Engine.
type StatsProvider interface {
	GetStats(ctx context.Context) (review.Stats, error)
}

// PopulationRecorder is implemented by metrics.Recorder.
type PopulationRecorder interface {
	SetPopulation(stats review.Stats)
}

type Notifier interface {
	Notify(ctx context.Context, reminder Reminder) error
}

// LogNotifier writes reminders to the default logger.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, reminder Reminder) error {
	slog.Default().Info("items are due for review",
		slog.Int("due", reminder.Due),
		slog.Int("new", reminder.New),
		slog.Int("known", reminder.Known))
	return nil
}

// Scheduler runs the reminder check on a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	stats     StatsProvider
	recorder  PopulationRecorder
	notifier  Notifier
	interval  time.Duration
}

// NewScheduler creates a Scheduler. recorder may be nil.
func NewScheduler(stats StatsProvider, recorder PopulationRecorder, notifier Notifier, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		stats:     stats,
		recorder:  recorder,
		notifier:  notifier,
		interval:  interval,
	}
}

// Start schedules the check and runs it in the background.
// The first run happens immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.scheduler.Every(s.interval).Do(func() {
		if err := s.RunOnce(ctx); err != nil {
			slog.Default().Error("reminder check failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		return fmt.Errorf("scheduler.Every(%s).Do() > %w", s.interval, err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop waits for a running check to finish.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce performs a single check.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	stats, err := s.stats.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("stats.GetStats() > %w", err)
	}
	if s.recorder != nil {
		s.recorder.SetPopulation(stats)
	}
	if stats.DueCount == 0 {
		slog.Default().Debug("nothing is due", slog.Int("new", stats.NewCount))
		return nil
	}

	if err := s.notifier.Notify(ctx, Reminder{
		Due:   stats.DueCount,
		New:   stats.NewCount,
		Known: stats.KnownCount,
	}); err != nil {
		return fmt.Errorf("notifier.Notify() > %w", err)
	}
	return nil
}
