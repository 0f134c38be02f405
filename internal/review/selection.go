package review

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

const (
	PoolNew           = "new"
	PoolReviewOverdue = "review_overdue"
	PoolReviewRandom  = "review_random"
)

// newItemProbability is the chance of offering a new item given how many
// items are already in review. The bands are fixed.
func newItemProbability(inReviewCount int) float64 {
	switch {
	case inReviewCount < 50:
		return 0.70
	case inReviewCount < 100:
		return 0.30
	default:
		return 0
	}
}

type pools struct {
	new    []vocabulary.Item
	review []vocabulary.Item
}

// buildPools splits items into the new and review pools. Items the store
// should already have filtered out are dropped again here so that a known,
// excluded or locked item can never be selected.
func buildPools(logger *slog.Logger, items []vocabulary.Item, levels []vocabulary.Level, exclude []int64) pools {
	var p pools
	for _, item := range items {
		if item.Normalize() {
			logger.Warn("known vocabulary item had a review date",
				slog.Int64("id", item.ID),
				slog.String("word", item.Word),
			)
		}
		if slices.Contains(exclude, item.ID) || !slices.Contains(levels, item.Level) {
			continue
		}
		switch item.State() {
		case vocabulary.StateNew:
			p.new = append(p.new, item)
		case vocabulary.StateInReview:
			p.review = append(p.review, item)
		}
	}
	return p
}

func (e *Engine) pickNew(candidates []vocabulary.Item) (vocabulary.Item, string, bool) {
	if len(candidates) == 0 {
		return vocabulary.Item{}, "", false
	}
	return candidates[e.random.IntN(len(candidates))], PoolNew, true
}

// pickReview returns the earliest overdue item. When nothing is overdue any
// review item may come up, so the order does not feel mechanical.
func (e *Engine) pickReview(candidates []vocabulary.Item, now time.Time) (vocabulary.Item, string, bool) {
	if len(candidates) == 0 {
		return vocabulary.Item{}, "", false
	}

	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b vocabulary.Item) int {
		if c := a.EffectiveReviewDate(now).Compare(b.EffectiveReviewDate(now)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if sorted[0].IsDue(now) {
		return sorted[0], PoolReviewOverdue, true
	}
	return sorted[e.random.IntN(len(sorted))], PoolReviewRandom, true
}
