package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/at-ishikawa/wordcycle/internal/dictionary/rapidapi"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

// Lookuper is implemented by Reader.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (rapidapi.Response, error)
}

// EnrichResult holds counts of what happened during an enrichment.
type EnrichResult struct {
	Enriched  int
	Complete  int
	NotFound  int
	NoChanges int
}

// Enricher fills empty content fields of items from a dictionary.
type Enricher struct {
	dictionary Lookuper
	writer     io.Writer
}

func NewEnricher(dictionary Lookuper, writer io.Writer) *Enricher {
	return &Enricher{
		dictionary: dictionary,
		writer:     writer,
	}
}

// Enrich returns the items that gained content. Fields that already have a
// value are never overwritten and review state is not touched.
func (e *Enricher) Enrich(ctx context.Context, items []vocabulary.Item) ([]*vocabulary.Item, *EnrichResult, error) {
	result := &EnrichResult{}
	var enriched []*vocabulary.Item

	for i := range items {
		item := items[i]
		if !needsContent(item) {
			result.Complete++
			continue
		}

		response, err := e.dictionary.Lookup(ctx, item.Word)
		if errors.Is(err, ErrWordNotFound) {
			result.NotFound++
			_, _ = fmt.Fprintf(e.writer, "  [NOT FOUND] %q\n", item.Word)
			continue
		}
		if err != nil {
			return enriched, result, fmt.Errorf("dictionary.Lookup(%s) > %w", item.Word, err)
		}

		best, ok := response.BestResult(item.PartOfSpeech)
		if !ok || !fillContent(&item, best) {
			result.NoChanges++
			_, _ = fmt.Fprintf(e.writer, "  [NO CHANGES] %q\n", item.Word)
			continue
		}
		enriched = append(enriched, &item)
		result.Enriched++
		_, _ = fmt.Fprintf(e.writer, "  [ENRICHED] %q\n", item.Word)
	}
	return enriched, result, nil
}

func needsContent(item vocabulary.Item) bool {
	return item.Definition == "" ||
		item.PartOfSpeech == "" ||
		item.ExampleSentence == "" ||
		item.Synonyms == "" ||
		item.Antonyms == "" ||
		item.RelatedForms == ""
}

func fillContent(item *vocabulary.Item, result rapidapi.Result) bool {
	changed := false
	fill := func(field *string, value string) {
		if *field == "" && value != "" {
			*field = value
			changed = true
		}
	}

	fill(&item.Definition, result.Definition)
	fill(&item.PartOfSpeech, result.PartOfSpeech)
	if len(result.Examples) > 0 {
		fill(&item.ExampleSentence, result.Examples[0])
	}
	fill(&item.Synonyms, strings.Join(result.Synonyms, ", "))
	fill(&item.Antonyms, strings.Join(result.Antonyms, ", "))
	fill(&item.RelatedForms, strings.Join(result.Derivation, ", "))
	return changed
}
