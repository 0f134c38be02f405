package vocabulary

import "time"

// IntervalDays is the day offset applied after each review cycle, indexed by
// the repetition count before the cycle. Counts past the end use the last entry.
var IntervalDays = []int{1, 3, 7, 14, 30}

func intervalFor(repetitions int) int {
	if repetitions < 0 {
		repetitions = 0
	}
	if repetitions >= len(IntervalDays) {
		return IntervalDays[len(IntervalDays)-1]
	}
	return IntervalDays[repetitions]
}

// ScheduleNextReview sets the next review date from the current repetition
// count and then increments the count.
func (item *Item) ScheduleNextReview(now time.Time) {
	next := now.AddDate(0, 0, intervalFor(item.Repetitions))
	item.NextReviewDate = &next
	item.Repetitions++
}

// MarkKnown removes the item from circulation until it is reset.
func (item *Item) MarkKnown() {
	item.IsKnown = true
	item.NextReviewDate = nil
}

// ResetKnownStatus puts the item back into review, due immediately.
func (item *Item) ResetKnownStatus(now time.Time) {
	due := now
	item.IsKnown = false
	item.Repetitions = 0
	item.NextReviewDate = &due
}

// MarkReviewed records that the item was shown.
func (item *Item) MarkReviewed(now time.Time) {
	reviewed := now
	item.ReviewCount++
	item.LastReviewedDate = &reviewed
}

// Normalize repairs a known item that still carries a review date.
// It reports whether anything changed.
func (item *Item) Normalize() bool {
	if item.IsKnown && item.NextReviewDate != nil {
		item.NextReviewDate = nil
		return true
	}
	return false
}
