package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const pushJobName = "wordcycle"

func newMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func newMetricsHandler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return h2c.NewHandler(mux, &http2.Server{})
}

// serveMetrics blocks until ctx is canceled or the server fails.
func serveMetrics(ctx context.Context, addr string, registry *prometheus.Registry) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           newMetricsHandler(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("serving metrics", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server.ListenAndServe() > %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown() > %w", err)
	}
	return nil
}

// pushMetrics sends the gathered metrics of a short-lived command to a
// Pushgateway. Failures are logged and never fail the command.
func pushMetrics(ctx context.Context, url, command string, gatherer prometheus.Gatherer) {
	if url == "" {
		return
	}
	err := push.New(url, pushJobName).
		Grouping("command", command).
		Gatherer(gatherer).
		PushContext(ctx)
	if err != nil {
		slog.Default().Warn("failed to push metrics",
			slog.String("url", url),
			slog.String("command", command),
			slog.Any("error", err),
		)
	}
}
