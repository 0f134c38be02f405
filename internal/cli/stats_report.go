package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/wordcycle/internal/assets"
	"github.com/at-ishikawa/wordcycle/internal/review"
	"github.com/at-ishikawa/wordcycle/internal/vocabulary"
)

// StatsReport renders review statistics to the terminal and to markdown files
type StatsReport struct {
	writer       io.Writer
	outputDir    string
	templatePath string
	now          func() time.Time
}

func NewStatsReport(writer io.Writer, outputDir string, templatePath string) *StatsReport {
	return &StatsReport{
		writer:       writer,
		outputDir:    outputDir,
		templatePath: templatePath,
		now:          time.Now,
	}
}

const statsRowFormat = "%-6s %6d %6d %10d %6d %6d %9s\n"

// Print writes a table with one row per level and a total row.
func (r *StatsReport) Print(stats review.Stats) {
	data := newStatsReportTemplate(stats, r.now())
	bold := color.New(color.Bold)
	due := color.New(color.FgYellow)

	_, _ = bold.Fprintf(r.writer, "%-6s %6s %6s %10s %6s %6s %9s\n", "Level", "Total", "New", "In review", "Due", "Known", "Progress")
	printRow := func(row assets.StatsRow, c *color.Color) {
		line := fmt.Sprintf(statsRowFormat, row.Level, row.Total, row.New, row.InReview, row.Due, row.Known, fmt.Sprintf("%.1f%%", row.Progress*100))
		if row.Due > 0 {
			c = due
		}
		if c == nil {
			_, _ = fmt.Fprint(r.writer, line)
			return
		}
		_, _ = c.Fprint(r.writer, line)
	}
	for _, row := range data.Levels {
		printRow(row, nil)
	}
	printRow(data.Total, bold)
}

// WriteMarkdown writes the report to the output directory and returns the file path.
func (r *StatsReport) WriteMarkdown(stats review.Stats) (string, error) {
	now := r.now()
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", r.outputDir, err)
	}

	outputFilename := filepath.Join(r.outputDir, "progress-"+now.Format("2006-01-02")+".md")
	output, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", outputFilename, err)
	}
	defer func() {
		_ = output.Close()
	}()

	if err := assets.WriteStatsReport(output, r.templatePath, newStatsReportTemplate(stats, now)); err != nil {
		return "", fmt.Errorf("assets.WriteStatsReport(%s, %s) > %w", outputFilename, r.templatePath, err)
	}
	return outputFilename, nil
}

func newStatsReportTemplate(stats review.Stats, now time.Time) assets.StatsReportTemplate {
	levels := make([]vocabulary.Level, 0, len(stats.Levels))
	for level := range stats.Levels {
		levels = append(levels, level)
	}
	slices.Sort(levels)

	data := assets.StatsReportTemplate{
		GeneratedAt: now,
		Levels:      make([]assets.StatsRow, 0, len(levels)),
		Total:       newStatsRow("All", stats.LevelStats),
	}
	for _, level := range levels {
		data.Levels = append(data.Levels, newStatsRow(level.String(), stats.Levels[level]))
	}
	return data
}

func newStatsRow(label string, stats review.LevelStats) assets.StatsRow {
	row := assets.StatsRow{
		Level:    label,
		Total:    stats.TotalCount,
		New:      stats.NewCount,
		InReview: stats.InReviewCount,
		Due:      stats.DueCount,
		Known:    stats.KnownCount,
	}
	if stats.TotalCount > 0 {
		row.Progress = float64(stats.KnownCount) / float64(stats.TotalCount)
	}
	return row
}
