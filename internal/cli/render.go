package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
	// TextCols is how many leading columns are left-aligned. The rest are
	// right-aligned as numbers. Zero means one.
	TextCols int
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderMuted renders secondary text such as hints and empty states.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}

// RenderTable renders a bordered table with headers and rows.
// A row holding the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	textCols := t.TextCols
	if textCols < 1 {
		textCols = 1
	}

	widths := columnWidths(t, numCols)

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}

			var padded string
			if i < textCols {
				padded = " " + cell + strings.Repeat(" ", pad) + " "
			} else {
				padded = " " + strings.Repeat(" ", pad) + cell + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

func columnWidths(t Table, numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			continue
		}
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// UsageColor picks green, yellow, orange or red for a percentage of budget
// used. Non-finite values count as over budget.
func UsageColor(pct float64) lipgloss.Color {
	switch {
	case math.IsNaN(pct) || math.IsInf(pct, 0) || pct > 100:
		return ColorRed
	case pct > 90:
		return ColorOrange
	case pct > 75:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// RenderUsageBar renders a fixed-width bar for a percentage of budget used.
// Values above 100 fill the bar; non-finite values render an empty bar.
func RenderUsageBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if !math.IsNaN(pct) && !math.IsInf(pct, 0) && pct > 0 {
		filled = int(math.Round(pct / 100 * float64(width)))
		if filled > width {
			filled = width
		}
	}

	bar := lipgloss.NewStyle().Foreground(UsageColor(pct)).Render(strings.Repeat("█", filled))
	return bar + dimStyle.Render(strings.Repeat("░", width-filled))
}
