package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/stats-report.md.go.tmpl
var fallbackStatsReportTemplate string

const statsReportTemplateName = "stats-report.md.go.tmpl"

// StatsReportTemplate is the top-level data structure for the progress report template
type StatsReportTemplate struct {
	GeneratedAt time.Time
	Levels      []StatsRow
	Total       StatsRow
}

// StatsRow holds the counts of one level, or of all levels for the total row
type StatsRow struct {
	Level    string
	Total    int
	New      int
	InReview int
	Due      int
	Known    int
	// Progress is the known share of Total, between 0 and 1
	Progress float64
}

func WriteStatsReport(output io.Writer, templatePath string, templateData StatsReportTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, statsReportTemplateName, fallbackStatsReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"percent": func(ratio float64) string {
			return fmt.Sprintf("%.1f%%", ratio*100)
		},
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
