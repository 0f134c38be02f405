// Package vocabulary provides the vocabulary item model, its retention state
// transitions and the store that persists them.
package vocabulary

import "time"

// State is the logical retention state of an item.
type State int

const (
	StateNew State = iota
	StateInReview
	StateKnown
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInReview:
		return "in_review"
	case StateKnown:
		return "known"
	default:
		return "unknown"
	}
}

// Item is a single vocabulary entry together with its retention state.
type Item struct {
	ID    int64  `db:"id" yaml:"id"`
	Word  string `db:"word" yaml:"word"`
	Level Level  `db:"level" yaml:"level"`

	Definition      string `db:"definition" yaml:"definition,omitempty"`
	Translation     string `db:"translation" yaml:"translation,omitempty"`
	ExampleSentence string `db:"example_sentence" yaml:"example_sentence,omitempty"`
	PartOfSpeech    string `db:"part_of_speech" yaml:"part_of_speech,omitempty"`
	RelatedForms    string `db:"related_forms" yaml:"related_forms,omitempty"`
	Synonyms        string `db:"synonyms" yaml:"synonyms,omitempty"`
	Antonyms        string `db:"antonyms" yaml:"antonyms,omitempty"`
	Collocations    string `db:"collocations" yaml:"collocations,omitempty"`

	IsKnown          bool       `db:"is_known" yaml:"is_known"`
	Repetitions      int        `db:"repetitions" yaml:"repetitions"`
	NextReviewDate   *time.Time `db:"next_review_date" yaml:"next_review_date,omitempty"`
	LastReviewedDate *time.Time `db:"last_reviewed_date" yaml:"last_reviewed_date,omitempty"`
	ReviewCount      int        `db:"review_count" yaml:"review_count"`
	Version          int64      `db:"version" yaml:"version"`

	CreatedAt time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at"`
}

// State classifies the item. An unknown item with a due date but no
// repetitions has been reset and is back in review.
func (item Item) State() State {
	switch {
	case item.IsKnown:
		return StateKnown
	case item.Repetitions > 0 || item.NextReviewDate != nil:
		return StateInReview
	default:
		return StateNew
	}
}

// EffectiveReviewDate returns the date used to order in-review items.
// In-review items without a date are treated as due at now.
func (item Item) EffectiveReviewDate(now time.Time) time.Time {
	if item.NextReviewDate == nil {
		return now
	}
	return *item.NextReviewDate
}

// IsDue reports whether the item is in review and its review date has passed.
func (item Item) IsDue(now time.Time) bool {
	if item.State() != StateInReview {
		return false
	}
	return !item.EffectiveReviewDate(now).After(now)
}
