package review

import "slices"

// DefaultHistorySize is how many recently shown items a session keeps out of
// the next selection.
const DefaultHistorySize = 10

// RecentHistory holds the most recently shown item IDs of one session.
// It belongs to the caller; the Engine never stores it.
type RecentHistory struct {
	size int
	ids  []int64
}

func NewRecentHistory(size int) *RecentHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &RecentHistory{size: size, ids: make([]int64, 0, size)}
}

// Push records id as the most recent one, evicting the oldest when full.
func (h *RecentHistory) Push(id int64) {
	if i := slices.Index(h.ids, id); i >= 0 {
		h.ids = slices.Delete(h.ids, i, i+1)
	}
	if len(h.ids) == h.size {
		h.ids = slices.Delete(h.ids, 0, 1)
	}
	h.ids = append(h.ids, id)
}

// IDs returns the recorded IDs from oldest to newest.
func (h *RecentHistory) IDs() []int64 {
	return slices.Clone(h.ids)
}

func (h *RecentHistory) Len() int {
	return len(h.ids)
}
