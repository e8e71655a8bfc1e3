package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/tui/components"
	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	cats := a.budget.AllCategories()

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	const lineFmt = "%-20s %12s %12s %8s  %-8s"

	var body strings.Builder
	body.WriteString(headerStyle.Render("  " + fmt.Sprintf(lineFmt, "Name", "Budget", "Spent", "Used", "Color")))
	body.WriteString("\n")

	for i, c := range cats {
		ca, _ := a.stats.Category(c.ID)
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Background(t.Surface).Render("■")

		name := c.Name
		if c.IsCustom {
			name += " *"
		}
		line := fmt.Sprintf(lineFmt, cli.Truncate(name, 20),
			cli.FormatMoney(c.Amount), cli.FormatMoney(ca.Spent),
			cli.FormatPercent(ca.Percentage), c.Color)

		style := rowStyle
		if i == a.catCursor {
			style = selectedStyle
		}
		body.WriteString(swatch + style.Render(" "+line))
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("* custom category"))

	return components.ContentCard(fmt.Sprintf("Categories (%d)", len(cats)), body.String(), cw)
}
