// Package metrics exposes review activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/at-ishikawa/wordcycle/internal/review"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

// Recorder implements review.Observer.
type Recorder struct {
	Selections  *prometheus.CounterVec
	Outcomes    *prometheus.CounterVec
	StoreErrors *prometheus.CounterVec
	Items       *prometheus.GaugeVec
	DueItems    prometheus.Gauge
}

// NewRecorder creates the metrics and registers them on registerer.
func NewRecorder(registerer prometheus.Registerer) *Recorder {
	factory := promauto.With(registerer)
	return &Recorder{
		Selections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordcycle_selections_total",
				Help: "Number of items selected for study by pool",
			},
			[]string{"pool"},
		),
		Outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordcycle_outcomes_total",
				Help: "Number of reported study outcomes",
			},
			[]string{"outcome"},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordcycle_store_errors_total",
				Help: "Number of failed store operations",
			},
			[]string{"op"},
		),
		Items: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wordcycle_items",
				Help: "Number of unlocked items by level and state",
			},
			[]string{"level", "state"},
		),
		DueItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordcycle_due_items",
				Help: "Number of unlocked items due for review",
			},
		),
	}
}

func (r *Recorder) ObserveSelection(pool string) {
	r.Selections.WithLabelValues(pool).Inc()
}

func (r *Recorder) ObserveOutcome(outcome string) {
	r.Outcomes.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveStoreError(op string) {
	r.StoreErrors.WithLabelValues(op).Inc()
}

// SetPopulation publishes the latest counts.
func (r *Recorder) SetPopulation(stats review.Stats) {
	for level, levelStats := range stats.Levels {
		r.Items.WithLabelValues(level.String(), vocabulary.StateNew.String()).Set(float64(levelStats.NewCount))
		r.Items.WithLabelValues(level.String(), vocabulary.StateInReview.String()).Set(float64(levelStats.InReviewCount))
		r.Items.WithLabelValues(level.String(), vocabulary.StateKnown.String()).Set(float64(levelStats.KnownCount))
	}
	r.DueItems.Set(float64(stats.DueCount))
}
