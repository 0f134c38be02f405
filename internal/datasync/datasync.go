// Package datasync imports vocabulary sources into the item store.
package datasync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

// ImportOptions controls a single import run.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
	// DefaultLevel is used for records with a missing or unrecognized level.
	DefaultLevel vocabulary.Level
}

// ImportResult holds counts of what happened during an import.
type ImportResult struct {
	New     int
	Skipped int
	Updated int
	Invalid int
}

// Importer writes source records to the item store.
type Importer struct {
	repo   vocabulary.Repository
	writer io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(repo vocabulary.Repository, writer io.Writer) *Importer {
	return &Importer{
		repo:   repo,
		writer: writer,
	}
}

// Import creates items for unseen words. Existing items only have their
// content refreshed, and only when UpdateExisting is set.
func (imp *Importer) Import(ctx context.Context, records []Record, opts ImportOptions) (*ImportResult, error) {
	defaultLevel := opts.DefaultLevel
	if defaultLevel == vocabulary.LevelUnknown {
		defaultLevel = vocabulary.LevelB2
	}

	existing, err := imp.repo.FetchAll(ctx, vocabulary.Filter{})
	if err != nil {
		return nil, fmt.Errorf("repo.FetchAll() > %w", err)
	}
	stored := make(map[string]*vocabulary.Item, len(existing))
	for i := range existing {
		stored[normalizeWord(existing[i].Word)] = &existing[i]
	}

	result := &ImportResult{}
	seen := make(map[string]bool, len(records))
	var newItems []*vocabulary.Item
	var updatedItems []*vocabulary.Item

	for _, record := range records {
		word := normalizeWord(record.Word)
		if word == "" {
			result.Invalid++
			_, _ = fmt.Fprintf(imp.writer, "  [INVALID] blank word (definition: %q)\n", record.Definition)
			continue
		}
		if seen[word] {
			result.Skipped++
			_, _ = fmt.Fprintf(imp.writer, "  [SKIP]   %q (duplicate in source)\n", word)
			continue
		}
		seen[word] = true

		if item, ok := stored[word]; ok {
			if !opts.UpdateExisting {
				result.Skipped++
				_, _ = fmt.Fprintf(imp.writer, "  [SKIP]   %q (already exists)\n", word)
				continue
			}
			applyContent(item, record)
			updatedItems = append(updatedItems, item)
			result.Updated++
			_, _ = fmt.Fprintf(imp.writer, "  [UPDATE] %q\n", word)
			continue
		}

		level, err := vocabulary.ParseLevel(record.Level)
		if err != nil {
			if record.Level != "" {
				slog.Default().Warn("unknown level, using default",
					slog.String("word", word),
					slog.String("level", record.Level),
					slog.String("default", defaultLevel.String()))
			}
			level = defaultLevel
		}
		item := &vocabulary.Item{
			Word:  word,
			Level: level,
		}
		applyContent(item, record)
		newItems = append(newItems, item)
		result.New++
		_, _ = fmt.Fprintf(imp.writer, "  [NEW]    %q (%s)\n", word, level)
	}

	if opts.DryRun {
		return result, nil
	}
	if len(newItems) > 0 {
		if err := imp.repo.BatchCreate(ctx, newItems); err != nil {
			return nil, fmt.Errorf("repo.BatchCreate() > %w", err)
		}
	}
	if len(updatedItems) > 0 {
		if err := imp.repo.UpdateContent(ctx, updatedItems); err != nil {
			return nil, fmt.Errorf("repo.UpdateContent() > %w", err)
		}
	}
	return result, nil
}

// ImportSource reads the source and imports its records.
func (imp *Importer) ImportSource(ctx context.Context, source Source, opts ImportOptions) (*ImportResult, error) {
	records, err := source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.Read() > %w", err)
	}
	return imp.Import(ctx, records, opts)
}

func normalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// applyContent copies descriptive fields. Level and review state are left alone.
func applyContent(item *vocabulary.Item, record Record) {
	item.Definition = strings.TrimSpace(record.Definition)
	item.Translation = strings.TrimSpace(record.Translation)
	item.ExampleSentence = strings.TrimSpace(record.ExampleSentence)
	item.PartOfSpeech = strings.TrimSpace(record.PartOfSpeech)
	item.RelatedForms = strings.TrimSpace(record.RelatedForms)
	item.Synonyms = strings.TrimSpace(record.Synonyms)
	item.Antonyms = strings.TrimSpace(record.Antonyms)
	item.Collocations = strings.TrimSpace(record.Collocations)
}
