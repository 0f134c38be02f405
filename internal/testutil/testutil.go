// Package testutil provides shared test helpers for config files and vocabulary fixtures.
package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

// SetupTestConfig creates a config file pointing at a SQLite database and a
// report directory inside tmpDir. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	reportDir := filepath.Join(tmpDir, "report")
	require.NoError(t, os.MkdirAll(reportDir, 0755))

	configContent := fmt.Sprintf(`database:
  driver: sqlite3
  path: %s
  connect_retry_attempts: 1
session:
  history_size: 3
entitlement:
  tier: premium
outputs:
  report_directory: %s
`,
		filepath.Join(tmpDir, "wordcycle.db"),
		reportDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteCSV writes rows, header first, to name inside dir and returns its path.
func WriteCSV(t *testing.T, dir string, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	return path
}

// ItemOption configures optional fields of an item fixture.
type ItemOption func(*vocabulary.Item)

// WithID sets the item ID.
func WithID(id int64) ItemOption {
	return func(item *vocabulary.Item) {
		item.ID = id
	}
}

// WithReview puts the item into review with the given repetitions and next review date.
func WithReview(repetitions int, next time.Time) ItemOption {
	return func(item *vocabulary.Item) {
		item.Repetitions = repetitions
		item.NextReviewDate = &next
	}
}

// WithKnown marks the item known.
func WithKnown() ItemOption {
	return func(item *vocabulary.Item) {
		item.IsKnown = true
		item.NextReviewDate = nil
	}
}

// NewItem creates an item fixture. Without options the item is new.
func NewItem(word string, level vocabulary.Level, opts ...ItemOption) vocabulary.Item {
	item := vocabulary.Item{
		Word:  word,
		Level: level,
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}
