package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mcqgen/internal/ui/theme"
)

const (
	MinWidth  = 50
	MinHeight = 12
)

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the title on the left and status on the right.
func RenderHeader(title, status string, width int) string {
	left := theme.Title.Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	innerWidth := max(width-4, 0) // border and padding
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFrame stacks header, content and footer. Content is padded so
// the footer sits on the last line.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Padding(0, 2).
		Render(content)

	return header + "\n" + body + "\n" + footer
}
