package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcycle/internal/datasync"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

func newImportCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import [source]",
		Short: "Import vocabulary from a CSV, XLSX or YAML file or URL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			location := a.cfg.Import.Source
			if len(args) > 0 {
				location = args[0]
			}
			if location == "" {
				return errors.New("no source given: pass a file or URL, or set import.source")
			}

			source, err := datasync.NewSource(location)
			if err != nil {
				return fmt.Errorf("datasync.NewSource() > %w", err)
			}
			defaultLevel, err := vocabulary.ParseLevel(a.cfg.Import.DefaultLevel)
			if err != nil {
				return fmt.Errorf("vocabulary.ParseLevel(%s) > %w", a.cfg.Import.DefaultLevel, err)
			}

			out := cmd.OutOrStdout()
			importer := datasync.NewImporter(a.repo, out)
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
				DefaultLevel:   defaultLevel,
			}
			result, err := importer.ImportSource(ctx, source, opts)
			if err != nil {
				return fmt.Errorf("importer.ImportSource() > %w", err)
			}

			_, _ = fmt.Fprintln(out, "\nImport Summary:")
			if opts.DryRun {
				_, _ = fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			_, _ = fmt.Fprintf(out, "  Items: %d new, %d skipped, %d updated, %d invalid\n",
				result.New, result.Skipped, result.Updated, result.Invalid)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update the content of existing items")
	return cmd
}
