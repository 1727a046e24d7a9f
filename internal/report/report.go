// Package report renders check reports as JSON, CSV, HTML, Markdown and PDF
// documents.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	consts "github.com/khanhnv2901/seca-host/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
	"github.com/khanhnv2901/seca-host/internal/shared/security"
)

// Format is an export format
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatHTML, FormatMarkdown, FormatPDF}
}

// ParseFormat parses a format name. "markdown" is accepted for md.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatHTML, FormatMarkdown, FormatPDF:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", sharedErrors.ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type served for the format
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Render serializes r in the given format
func Render(r *check.Report, format Format) ([]byte, error) {
	if r == nil {
		return nil, sharedErrors.ErrNoReport
	}
	switch format {
	case FormatJSON:
		return JSON(r)
	case FormatCSV:
		s, err := CSV(r)
		return []byte(s), err
	case FormatHTML:
		s, err := HTML(r)
		return []byte(s), err
	case FormatMarkdown:
		s, err := Markdown(r)
		return []byte(s), err
	case FormatPDF:
		return PDF(r)
	default:
		return nil, fmt.Errorf("%w: %q", sharedErrors.ErrUnsupportedFormat, format)
	}
}

// FileName returns Security_Report_<timestamp>.<ext> for r
func FileName(r *check.Report, format Format) string {
	return "Security_Report_" + r.Timestamp().Format("2006-01-02_15-04-05") + format.Extension()
}

// Write renders r into dir under its default file name and returns the path
func Write(dir string, r *check.Report, format Format) (string, error) {
	if r == nil {
		return "", sharedErrors.ErrNoReport
	}
	return WriteAs(dir, FileName(r, format), r, format)
}

// WriteAs renders r to name inside dir. Names that would leave dir are rejected.
func WriteAs(dir, name string, r *check.Report, format Format) (string, error) {
	path, err := security.ResolveWithin(dir, name)
	if err != nil {
		return "", err
	}
	data, err := Render(r, format)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), consts.DefaultDirPerm); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, consts.DefaultFilePerm); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Load reads a report previously exported as JSON
func Load(path string) (*check.Report, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is provided by the operator.
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return ParseJSON(data)
}
