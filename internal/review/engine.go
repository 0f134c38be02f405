// Package review selects the next vocabulary item to study and applies the
// learner's outcome to it.
//
// An Engine keeps no state between calls. Every call reads a fresh snapshot
// from the store, and the caller owns the list of recently shown items.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

var (
	// ErrNoCandidateAvailable means every pool is exhausted under the current
	// level gate and exclusions. It is a terminal result, not a fault.
	ErrNoCandidateAvailable = errors.New("no vocabulary item available")
	// ErrItemKnown is returned when advancing an item that is marked known.
	ErrItemKnown = errors.New("vocabulary item is marked known")
)

// Store is the subset of vocabulary.Repository the engine needs.
type Store interface {
	FetchAll(ctx context.Context, filter vocabulary.Filter) ([]vocabulary.Item, error)
	Save(ctx context.Context, item *vocabulary.Item) error
}

// LevelGate returns the levels the learner may study.
type LevelGate interface {
	UnlockedLevels(ctx context.Context) ([]vocabulary.Level, error)
}

// RandomSource is satisfied by *rand.Rand from math/rand/v2.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// Observer receives selection and outcome events, e.g. for metrics.
type Observer interface {
	ObserveSelection(pool string)
	ObserveOutcome(outcome string)
	ObserveStoreError(op string)
}

type Engine struct {
	store    Store
	gate     LevelGate
	random   RandomSource
	now      func() time.Time
	observer Observer
	logger   *slog.Logger
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger replaces slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// WithRandom replaces the process-wide random source, typically with a seeded
// *rand.Rand in tests.
func WithRandom(random RandomSource) Option {
	return func(e *Engine) {
		e.random = random
	}
}

// NewEngine creates an Engine. A nil gate unlocks every level.
func NewEngine(store Store, gate LevelGate, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		gate:     gate,
		random:   globalRandom{},
		now:      time.Now,
		observer: noopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SelectNext picks the next item to show, never one of exclude and never a
// known item. It returns ErrNoCandidateAvailable when nothing is left.
func (e *Engine) SelectNext(ctx context.Context, exclude []int64) (vocabulary.Item, error) {
	levels, err := e.unlockedLevels(ctx)
	if err != nil {
		return vocabulary.Item{}, err
	}
	if len(levels) == 0 {
		return vocabulary.Item{}, ErrNoCandidateAvailable
	}

	items, err := e.store.FetchAll(ctx, vocabulary.Filter{
		States:     []vocabulary.State{vocabulary.StateNew, vocabulary.StateInReview},
		Levels:     levels,
		ExcludeIDs: exclude,
	})
	if err != nil {
		e.observer.ObserveStoreError("fetch")
		return vocabulary.Item{}, wrapStoreError(vocabulary.ErrStoreRead, "store.FetchAll()", err)
	}

	now := e.now()
	pools := buildPools(e.logger, items, levels, exclude)
	chooseNew := e.random.Float64() < newItemProbability(len(pools.review))

	var item vocabulary.Item
	var pool string
	var ok bool
	if chooseNew {
		item, pool, ok = e.pickNew(pools.new)
		if !ok {
			item, pool, ok = e.pickReview(pools.review, now)
		}
	} else {
		item, pool, ok = e.pickReview(pools.review, now)
		if !ok {
			item, pool, ok = e.pickNew(pools.new)
		}
	}
	if !ok {
		return vocabulary.Item{}, ErrNoCandidateAvailable
	}

	e.logger.Debug("selected vocabulary item",
		slog.Int64("id", item.ID),
		slog.String("word", item.Word),
		slog.String("pool", pool),
		slog.Bool("choseNew", chooseNew),
		slog.Int("newCount", len(pools.new)),
		slog.Int("inReviewCount", len(pools.review)),
	)
	e.observer.ObserveSelection(pool)
	return item, nil
}

// ReportKnown marks item known and persists it. On failure item is returned unchanged.
func (e *Engine) ReportKnown(ctx context.Context, item vocabulary.Item) (vocabulary.Item, error) {
	updated := item
	updated.MarkKnown()
	return e.save(ctx, item, updated, "known")
}

// ReportAdvance schedules the next review of item and records that it was shown.
func (e *Engine) ReportAdvance(ctx context.Context, item vocabulary.Item) (vocabulary.Item, error) {
	if item.IsKnown {
		return item, fmt.Errorf("%w: %q", ErrItemKnown, item.Word)
	}
	now := e.now()
	updated := item
	updated.ScheduleNextReview(now)
	updated.MarkReviewed(now)
	return e.save(ctx, item, updated, "advance")
}

// ResetItem puts item back into review, due immediately.
func (e *Engine) ResetItem(ctx context.Context, item vocabulary.Item) (vocabulary.Item, error) {
	updated := item
	updated.ResetKnownStatus(e.now())
	return e.save(ctx, item, updated, "reset")
}

func (e *Engine) save(ctx context.Context, original, updated vocabulary.Item, outcome string) (vocabulary.Item, error) {
	if err := e.store.Save(ctx, &updated); err != nil {
		e.observer.ObserveStoreError("save")
		return original, wrapStoreError(vocabulary.ErrStoreWrite, "store.Save()", err)
	}
	e.observer.ObserveOutcome(outcome)
	return updated, nil
}

func (e *Engine) unlockedLevels(ctx context.Context) ([]vocabulary.Level, error) {
	if e.gate == nil {
		return vocabulary.AllLevels(), nil
	}
	levels, err := e.gate.UnlockedLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("gate.UnlockedLevels() > %w", err)
	}
	return levels, nil
}

func wrapStoreError(sentinel error, op string, err error) error {
	if errors.Is(err, sentinel) {
		return fmt.Errorf("%s > %w", op, err)
	}
	return fmt.Errorf("%s > %w: %w", op, sentinel, err)
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

type noopObserver struct{}

func (noopObserver) ObserveSelection(string)  {}
func (noopObserver) ObserveOutcome(string)    {}
func (noopObserver) ObserveStoreError(string) {}
