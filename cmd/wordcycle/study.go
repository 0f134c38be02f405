package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcycle/internal/cli"
	"github.com/at-ishikawa/wordcycle/internal/metrics"
	"github.com/at-ishikawa/wordcycle/internal/review"
)

func newStudyCommand() *cobra.Command {
	var metricsAddress string

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Start an interactive study session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			registry := prometheus.NewRegistry()
			if metricsAddress != "" {
				registry = newMetricsRegistry()
			}
			engine, err := a.newEngine(review.WithObserver(metrics.NewRecorder(registry)))
			if err != nil {
				return err
			}

			metricsCtx, stopMetrics := context.WithCancel(ctx)
			defer stopMetrics()
			metricsDone := make(chan struct{})
			go func() {
				defer close(metricsDone)
				if metricsAddress == "" {
					return
				}
				if err := serveMetrics(metricsCtx, metricsAddress, registry); err != nil {
					slog.Default().Warn("metrics server stopped", slog.Any("error", err))
				}
			}()

			out := cmd.OutOrStdout()
			studyCLI := cli.NewStudyCLI(engine, a.cfg.Session.HistorySize, cmd.InOrStdin(), out)
			runErr := studyCLI.Run(ctx, studyCLI)

			stopMetrics()
			<-metricsDone
			pushMetrics(ctx, a.cfg.Reminder.PushgatewayURL, "study", registry)

			if runErr != nil {
				return runErr
			}
			_, _ = fmt.Fprintln(out, studyCLI.Summary())
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsAddress, "metrics-address", "", "Serve selection and outcome metrics on this address during the session, e.g. :9091")
	return cmd
}
