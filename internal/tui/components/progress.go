package components

import (
	"fmt"
	"math"

	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// UsageBar renders a solid bar for a percentage of budget used. Values over
// 100 fill the bar; NaN and ±Inf render empty in the over-budget color.
func UsageBar(pct float64, width int) string {
	t := theme.Active
	if width < 1 {
		width = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Usage(pct))),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	return bar.ViewAs(barFraction(pct))
}

// CategoryBar renders "<label> <bar> <pct> <spent>/<budget>" on one line.
func CategoryBar(label string, pct float64, amounts string, labelW, barW int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.Usage(pct)).Background(t.Surface).Bold(true)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		spaceStyle.Render(" ") +
		UsageBar(pct, barW) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%6s", pctLabel(pct))) +
		spaceStyle.Render("  ") +
		amountStyle.Render(amounts)
}

func barFraction(pct float64) float64 {
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct <= 0 {
		return 0
	}
	if pct >= 100 {
		return 1
	}
	return pct / 100
}

func pctLabel(pct float64) string {
	switch {
	case math.IsNaN(pct):
		return "n/a"
	case math.IsInf(pct, 1):
		return "∞"
	case math.IsInf(pct, -1):
		return "-∞"
	}
	return fmt.Sprintf("%.0f%%", pct)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
