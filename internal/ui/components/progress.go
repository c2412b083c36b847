package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar. percent is clamped to [0, 1].
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     min(max(percent, 0), 1),
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar as label, filled cells, empty cells and percentage.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(p.Percent*100))
	}

	barWidth := max(p.Width-lipgloss.Width(b.String())-len(suffix), 4)
	filled := int(float64(barWidth) * p.Percent)

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled)))
	if suffix != "" {
		b.WriteString(theme.Dimmed.Render(suffix))
	}
	return b.String()
}
