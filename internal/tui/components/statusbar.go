package components

import (
	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest notice on the right. Alert notices use the warning color.
func RenderStatusBar(width int, hints, notice string, alerting bool) string {
	t := theme.Active

	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noticeColor := t.Accent
	if alerting {
		noticeColor = t.Orange
	}
	noticeStyle := lipgloss.NewStyle().Foreground(noticeColor).Background(t.Surface).Bold(alerting)

	left := hintStyle.Render(" " + hints)
	right := ""
	if notice != "" {
		room := width - lipgloss.Width(left) - 3
		right = noticeStyle.Render(truncate(notice, room) + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	gap := lipgloss.NewStyle().Background(t.Surface).Width(padding).Render("")

	return lipgloss.NewStyle().MaxWidth(width).Render(left + gap + right)
}
