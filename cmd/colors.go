package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/khanhnv2901/seca-host/internal/domain/check"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorMuted   = color.New(color.Faint).SprintFunc()
)

var scoreBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 2).
	Bold(true)

func statusIcon(status check.Status) string {
	switch status {
	case check.StatusPass:
		return "✓"
	case check.StatusWarning:
		return "!"
	case check.StatusFail:
		return "✗"
	default:
		return "?"
	}
}

func formatStatusWithColor(status check.Status) string {
	label := fmt.Sprintf("%s %-7s", statusIcon(status), status.Label())
	switch status {
	case check.StatusPass:
		return colorSuccess(label)
	case check.StatusWarning:
		return colorWarn(label)
	case check.StatusFail:
		return colorError(label)
	default:
		return colorMuted(label)
	}
}

// renderScoreBox draws the overall score in the band color. Plain text is
// returned when colors are disabled.
func renderScoreBox(r *check.Report) string {
	body := fmt.Sprintf("Security Score: %.0f%%\n%d passed · %d warnings · %d failed · %d unknown",
		r.Score(), r.Passed(), r.Warnings(), r.Failed(), r.Unknown())
	if color.NoColor {
		return body
	}
	band := lipgloss.Color(r.Band().Color())
	return scoreBoxStyle.BorderForeground(band).Foreground(band).Render(body)
}
