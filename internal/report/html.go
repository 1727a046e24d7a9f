package report

import (
	"embed"
	"fmt"
	htmltemplate "html/template"
	"math"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
)

const (
	htmlTemplatePath     = "templates/report.html"
	markdownTemplatePath = "templates/report.md"
)

//go:embed templates/report.html templates/report.md
var templateFS embed.FS

var (
	templateFuncs = map[string]any{
		"statusIcon":  statusIcon,
		"formatTime":  formatTime,
		"formatScore": formatScore,
		"lower":       strings.ToLower,
		"safeCSS":     safeCSS,
		"cell":        markdownCell,
	}

	htmlReportTemplate = htmltemplate.Must(
		htmltemplate.New("report.html").Funcs(templateFuncs).ParseFS(templateFS, htmlTemplatePath),
	)
	markdownReportTemplate = texttemplate.Must(
		texttemplate.New("report.md").Funcs(templateFuncs).ParseFS(templateFS, markdownTemplatePath),
	)
)

// TemplateData is the view model shared by the document templates
type TemplateData struct {
	ID          string
	GeneratedAt time.Time
	OSVersion   string
	Benchmark   string
	Score       float64
	ScoreColor  string
	Band        check.Band
	Summary     check.Summary
	Groups      []GroupData
}

// GroupData is one category section
type GroupData struct {
	Category string
	Rows     []RowData
}

// RowData is one check line
type RowData struct {
	ID                string
	Name              string
	Status            check.Status
	StatusLabel       string
	Severity          int
	Details           string
	Remediation       string
	RequiresElevation bool
}

func buildTemplateData(r *check.Report) TemplateData {
	data := TemplateData{
		ID:          r.ID(),
		GeneratedAt: r.Timestamp(),
		OSVersion:   r.OSVersion(),
		Benchmark:   r.Benchmark(),
		Score:       r.Score(),
		ScoreColor:  r.Band().Color(),
		Band:        r.Band(),
		Summary:     r.Summary(),
	}
	for _, group := range r.Grouped() {
		g := GroupData{Category: string(group.Category)}
		for _, res := range group.Results {
			g.Rows = append(g.Rows, RowData{
				ID:                res.CheckID(),
				Name:              res.Name(),
				Status:            res.Status(),
				StatusLabel:       res.Status().Label(),
				Severity:          res.Severity(),
				Details:           res.Details(),
				Remediation:       res.Remediation(),
				RequiresElevation: res.RequiresElevation(),
			})
		}
		data.Groups = append(data.Groups, g)
	}
	return data
}

// HTML renders a standalone HTML document grouped by category
func HTML(r *check.Report) (string, error) {
	var buf strings.Builder
	if err := htmlReportTemplate.Execute(&buf, buildTemplateData(r)); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", htmlReportTemplate.Name(), err)
	}
	return buf.String(), nil
}

// Markdown renders the report as a Markdown document
func Markdown(r *check.Report) (string, error) {
	var buf strings.Builder
	if err := markdownReportTemplate.Execute(&buf, buildTemplateData(r)); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", markdownReportTemplate.Name(), err)
	}
	return buf.String(), nil
}

func statusIcon(s check.Status) string {
	switch s {
	case check.StatusPass:
		return "✓"
	case check.StatusWarning:
		return "⚠"
	case check.StatusFail:
		return "✕"
	default:
		return "?"
	}
}

func formatTime(t time.Time) string {
	return t.Format("January 2, 2006 at 15:04:05 MST")
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.0f", math.Round(score))
}

func safeCSS(s string) htmltemplate.CSS {
	return htmltemplate.CSS(s) // #nosec G203 -- only band colors from check.Band.Color reach this.
}

// markdownCell keeps free text inside a single table cell
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "<br>")
}
