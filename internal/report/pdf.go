package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/khanhnv2901/seca-host/internal/domain/check"
)

// core PDF fonts only cover cp1252
var pdfReplacer = strings.NewReplacer("→", "->", "✓", "yes", "✗", "no")

type rgb struct{ r, g, b int }

var statusFill = map[check.Status]rgb{
	check.StatusPass:    {240, 253, 244},
	check.StatusWarning: {255, 251, 235},
	check.StatusFail:    {254, 242, 242},
	check.StatusUnknown: {243, 244, 246},
}

var bandColor = map[check.Band]rgb{
	check.BandGreen: {0x00, 0xCC, 0x44},
	check.BandAmber: {0xFF, 0x99, 0x00},
	check.BandRed:   {0xCC, 0x00, 0x00},
}

// PDF renders the report as an A4 document grouped by category
func PDF(r *check.Report) ([]byte, error) {
	data := buildTemplateData(r)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(pdfReplacer.Replace(s)) }
	pdf.SetTitle("Host Security Report", true)
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Host Security Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Metadata
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, text(fmt.Sprintf("Generated: %s", formatTime(data.GeneratedAt))), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, text(fmt.Sprintf("OS version: %s", data.OSVersion)), "", 1, "", false, 0, "")
	if data.Benchmark != "" {
		pdf.CellFormat(0, 6, text(fmt.Sprintf("Benchmark: %s", data.Benchmark)), "", 1, "", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Report ID: %s", data.ID), "", 1, "", false, 0, "")
	pdf.Ln(4)

	// Score
	c := bandColor[data.Band]
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(c.r, c.g, c.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(40, 12, fmt.Sprintf("%s%%", formatScore(data.Score)), "", 0, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 12, fmt.Sprintf("   Passed: %d | Warnings: %d | Failed: %d | Unknown: %d | Total: %d",
		data.Summary.Passed, data.Summary.Warnings, data.Summary.Failed, data.Summary.Unknown, data.Summary.Total),
		"", 1, "", false, 0, "")
	pdf.Ln(6)

	for _, group := range data.Groups {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, text(group.Category), "B", 1, "", false, 0, "")
		pdf.Ln(2)

		for _, row := range group.Rows {
			if pdf.GetY() > 265 {
				pdf.AddPage()
			}
			fill := statusFill[row.Status]
			pdf.SetFillColor(fill.r, fill.g, fill.b)
			pdf.SetFont("Arial", "B", 10)
			title := fmt.Sprintf("[%s] %s (severity %d)", row.StatusLabel, row.Name, row.Severity)
			if row.RequiresElevation {
				title += " - requires elevation"
			}
			pdf.CellFormat(0, 7, text(title), "", 1, "", true, 0, "")

			pdf.SetFont("Arial", "", 8)
			if row.Details != "" {
				pdf.MultiCell(0, 4, text(row.Details), "", "", false)
			}
			if row.Remediation != "" {
				pdf.SetFont("Arial", "I", 8)
				pdf.MultiCell(0, 4, text("Remediation: "+row.Remediation), "", "", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
