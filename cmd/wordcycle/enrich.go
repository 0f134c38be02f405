package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/wordcycle/internal/dictionary"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

// levelsFlag collects level tags. It accepts repeated flags and comma separated values.
type levelsFlag []vocabulary.Level

// Set implements pflag.Value.
func (f *levelsFlag) Set(v string) error {
	for _, tag := range strings.Split(v, ",") {
		level, err := vocabulary.ParseLevel(tag)
		if err != nil {
			return err
		}
		*f = append(*f, level)
	}
	return nil
}

// String implements pflag.Value.
func (f *levelsFlag) String() string {
	if f == nil {
		return ""
	}
	tags := make([]string, 0, len(*f))
	for _, level := range *f {
		tags = append(tags, level.String())
	}
	return strings.Join(tags, ",")
}

// Type implements pflag.Value.
func (f *levelsFlag) Type() string {
	return "levels"
}

var (
	_ pflag.Value = (*levelsFlag)(nil)
)

func newEnrichCommand() *cobra.Command {
	var dryRun bool
	var levels levelsFlag

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Fill missing definitions and examples from WordsAPI",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			filter := vocabulary.Filter{Levels: levels}
			items, err := a.repo.FetchAll(ctx, filter)
			if err != nil {
				return fmt.Errorf("repo.FetchAll() > %w", err)
			}

			rapidAPI := a.cfg.Dictionaries.RapidAPI
			reader := dictionary.NewReader(rapidAPI.CacheDirectory, dictionary.Config{
				RapidAPIHost: rapidAPI.Host,
				RapidAPIKey:  rapidAPI.Key,
			})
			out := cmd.OutOrStdout()
			enriched, result, err := dictionary.NewEnricher(reader, out).Enrich(ctx, items)
			if err != nil {
				return fmt.Errorf("enricher.Enrich() > %w", err)
			}
			if !dryRun {
				if err := a.repo.UpdateContent(ctx, enriched); err != nil {
					return fmt.Errorf("repo.UpdateContent() > %w", err)
				}
			}

			_, _ = fmt.Fprintln(out, "\nEnrich Summary:")
			if dryRun {
				_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			_, _ = fmt.Fprintf(out, "  Items: %d enriched, %d complete, %d not found, %d without changes\n",
				result.Enriched, result.Complete, result.NotFound, result.NoChanges)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().Var(&levels, "level", "Only enrich items of these levels, e.g. A1,B2")
	return cmd
}
