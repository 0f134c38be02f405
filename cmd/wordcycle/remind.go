package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcycle/internal/metrics"
	"github.com/at-ishikawa/wordcycle/internal/reminder"
	"github.com/at-ishikawa/wordcycle/internal/review"
)

func newRemindCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Check for due items periodically and serve metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			registry := newMetricsRegistry()
			recorder := metrics.NewRecorder(registry)
			engine, err := a.newEngine(review.WithObserver(recorder))
			if err != nil {
				return err
			}

			interval := time.Duration(a.cfg.Reminder.IntervalMinutes) * time.Minute
			scheduler := reminder.NewScheduler(engine, recorder, reminder.LogNotifier{}, interval)
			if err := scheduler.Start(ctx); err != nil {
				return fmt.Errorf("scheduler.Start() > %w", err)
			}
			defer scheduler.Stop()

			if a.cfg.Reminder.MetricsAddress == "" {
				<-ctx.Done()
				return nil
			}
			return serveMetrics(ctx, a.cfg.Reminder.MetricsAddress, registry)
		},
	}
}
