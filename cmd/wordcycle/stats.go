package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcycle/internal/cli"
	"github.com/at-ishikawa/wordcycle/internal/pdf"
)

func newStatsCommand() *cobra.Command {
	var writeMarkdown bool
	var generatePDF bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress for the unlocked levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			stats, err := engine.GetStats(ctx)
			if err != nil {
				return fmt.Errorf("engine.GetStats() > %w", err)
			}

			out := cmd.OutOrStdout()
			report := cli.NewStatsReport(out, a.cfg.Outputs.ReportDirectory, a.cfg.Outputs.TemplatePath)
			report.Print(stats)
			if !writeMarkdown && !generatePDF {
				return nil
			}

			markdownPath, err := report.WriteMarkdown(stats)
			if err != nil {
				return fmt.Errorf("report.WriteMarkdown() > %w", err)
			}
			_, _ = fmt.Fprintf(out, "Report written to: %s\n", markdownPath)

			if generatePDF {
				pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath)
				if err != nil {
					return fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", markdownPath, err)
				}
				_, _ = fmt.Fprintf(out, "PDF generated at: %s\n", pdfPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&writeMarkdown, "markdown", false, "Write the report as markdown")
	cmd.Flags().BoolVar(&generatePDF, "pdf", false, "Write the report as markdown and PDF")
	return cmd
}
