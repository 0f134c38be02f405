package main

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcycle/internal/metrics"
	"github.com/at-ishikawa/wordcycle/internal/review"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

func newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <word>",
		Short: "Put a word back into review, due immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			word := strings.ToLower(strings.TrimSpace(args[0]))
			item, err := a.repo.FindByWord(ctx, word)
			if err != nil {
				return fmt.Errorf("repo.FindByWord(%s) > %w", word, err)
			}
			if item == nil {
				return fmt.Errorf("%w: %q", vocabulary.ErrNotFound, word)
			}

			registry := prometheus.NewRegistry()
			engine, err := a.newEngine(review.WithObserver(metrics.NewRecorder(registry)))
			if err != nil {
				return err
			}
			updated, err := engine.ResetItem(ctx, *item)
			pushMetrics(ctx, a.cfg.Reminder.PushgatewayURL, "reset", registry)
			if err != nil {
				return fmt.Errorf("engine.ResetItem(%s) > %w", word, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is due for review again\n", updated.Word, updated.Level)
			return nil
		},
	}
}
