package review

import (
	"context"
	"time"

	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

// LevelStats counts items of a single level.
type LevelStats struct {
	TotalCount    int
	KnownCount    int
	InReviewCount int
	NewCount      int
	DueCount      int
}

func (s *LevelStats) add(item vocabulary.Item, now time.Time) {
	s.TotalCount++
	switch item.State() {
	case vocabulary.StateKnown:
		s.KnownCount++
	case vocabulary.StateInReview:
		s.InReviewCount++
		if item.IsDue(now) {
			s.DueCount++
		}
	case vocabulary.StateNew:
		s.NewCount++
	}
}

// Stats summarizes the unlocked items. DueCount is informational only.
type Stats struct {
	LevelStats
	Levels map[vocabulary.Level]LevelStats
}

// GetStats counts every item in the unlocked levels.
func (e *Engine) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{Levels: make(map[vocabulary.Level]LevelStats)}

	levels, err := e.unlockedLevels(ctx)
	if err != nil {
		return stats, err
	}
	if len(levels) == 0 {
		return stats, nil
	}

	items, err := e.store.FetchAll(ctx, vocabulary.Filter{Levels: levels})
	if err != nil {
		e.observer.ObserveStoreError("fetch")
		return stats, wrapStoreError(vocabulary.ErrStoreRead, "store.FetchAll()", err)
	}

	now := e.now()
	for _, level := range levels {
		stats.Levels[level] = LevelStats{}
	}
	for _, item := range items {
		item.Normalize()
		levelStats, ok := stats.Levels[item.Level]
		if !ok {
			continue
		}
		levelStats.add(item, now)
		stats.Levels[item.Level] = levelStats
		stats.add(item, now)
	}
	return stats, nil
}
