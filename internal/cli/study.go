package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/wordcycle/internal/review"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

//go:generate mockgen -source=study.go -destination=../mocks/cli/mock_study.go -package=mock_cli

// StudyEngine is the part of review.Engine a study session drives.
type StudyEngine interface {
	SelectNext(ctx context.Context, exclude []int64) (vocabulary.Item, error)
	ReportKnown(ctx context.Context, item vocabulary.Item) (vocabulary.Item, error)
	ReportAdvance(ctx context.Context, item vocabulary.Item) (vocabulary.Item, error)
}

// StudyCLI shows one item per session and applies the learner's answer
type StudyCLI struct {
	*InteractiveCLI
	engine  StudyEngine
	history *review.RecentHistory

	knownCount    int
	advancedCount int
}

func NewStudyCLI(engine StudyEngine, historySize int, stdin io.Reader, stdout io.Writer) *StudyCLI {
	return &StudyCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		engine:         engine,
		history:        review.NewRecentHistory(historySize),
	}
}

const studyPrompt = "(k) known, (n/enter) next, (d) details, (q) quit: "

func (cli *StudyCLI) Session(ctx context.Context) error {
	item, err := cli.engine.SelectNext(ctx, cli.history.IDs())
	if errors.Is(err, review.ErrNoCandidateAvailable) {
		_, _ = fmt.Fprintln(cli.stdoutWriter, "All caught up! Nothing is left to study right now.")
		return errEnd
	}
	if err != nil {
		return fmt.Errorf("engine.SelectNext() > %w", err)
	}

	_, _ = fmt.Fprintf(cli.stdoutWriter, "[%s] ", item.Level)
	_, _ = cli.bold.Fprint(cli.stdoutWriter, item.Word)
	if item.PartOfSpeech != "" {
		_, _ = cli.faint.Fprintf(cli.stdoutWriter, " (%s)", item.PartOfSpeech)
	}
	_, _ = fmt.Fprintln(cli.stdoutWriter)

	for {
		_, _ = fmt.Fprint(cli.stdoutWriter, studyPrompt)
		input, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("error reading input: %w", err)
			}
			if input == "" {
				_, _ = fmt.Fprintln(cli.stdoutWriter)
				return errEnd
			}
		}

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "d":
			cli.printDetails(item)
		case "k":
			updated, err := cli.engine.ReportKnown(ctx, item)
			if errors.Is(err, vocabulary.ErrStoreWrite) {
				cli.warnSaveFailed(item, err)
				return nil
			}
			if err != nil {
				return fmt.Errorf("engine.ReportKnown(%s) > %w", item.Word, err)
			}
			cli.history.Push(updated.ID)
			cli.knownCount++
			_, _ = fmt.Fprint(cli.stdoutWriter, "✅ ")
			_, _ = color.New(color.FgGreen).Fprintf(cli.stdoutWriter, "%s is marked as known\n\n", item.Word)
			return nil
		case "", "n":
			updated, err := cli.engine.ReportAdvance(ctx, item)
			if errors.Is(err, vocabulary.ErrStoreWrite) {
				cli.warnSaveFailed(item, err)
				return nil
			}
			if err != nil {
				return fmt.Errorf("engine.ReportAdvance(%s) > %w", item.Word, err)
			}
			cli.history.Push(updated.ID)
			cli.advancedCount++
			if updated.NextReviewDate != nil {
				_, _ = fmt.Fprintf(cli.stdoutWriter, "Next review on %s\n\n", updated.NextReviewDate.Format("2006-01-02"))
			}
			return nil
		case "q":
			return errEnd
		default:
			_, _ = fmt.Fprintf(cli.stdoutWriter, "Unknown key %q\n", strings.TrimSpace(input))
		}
	}
}

// warnSaveFailed reports a lost answer. The item stays out of the history so
// it can come up again later in the session.
func (cli *StudyCLI) warnSaveFailed(item vocabulary.Item, err error) {
	slog.Default().Warn("failed to save the answer",
		slog.Int64("id", item.ID),
		slog.String("word", item.Word),
		slog.Any("error", err),
	)
	_, _ = color.New(color.FgYellow).Fprintf(cli.stdoutWriter, "Could not save the answer for %s, it will come up again\n\n", item.Word)
}

func (cli *StudyCLI) printDetails(item vocabulary.Item) {
	fields := []struct {
		label string
		value string
	}{
		{"Definition", item.Definition},
		{"Translation", item.Translation},
		{"Example", item.ExampleSentence},
		{"Related forms", item.RelatedForms},
		{"Synonyms", item.Synonyms},
		{"Antonyms", item.Antonyms},
		{"Collocations", item.Collocations},
	}

	printed := false
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		_, _ = fmt.Fprintf(cli.stdoutWriter, "  %s: ", field.label)
		_, _ = cli.italic.Fprintln(cli.stdoutWriter, field.value)
		printed = true
	}
	if !printed {
		_, _ = fmt.Fprintln(cli.stdoutWriter, "  No details for this word")
	}
}

// Summary describes what happened in the finished sessions.
func (cli *StudyCLI) Summary() string {
	return fmt.Sprintf("Studied %d item(s): %d known, %d scheduled for review",
		cli.knownCount+cli.advancedCount, cli.knownCount, cli.advancedCount)
}
