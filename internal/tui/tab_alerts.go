package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"
	"github.com/theirongolddev/bplan/internal/tui/components"
	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderAlertsTab(cw int) string {
	t := theme.Active
	alerts := a.budget.Alerts

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	offStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	if len(alerts) == 0 {
		return components.ContentCard("Alerts",
			mutedStyle.Render("No alerts yet. Add one with `bplan alert add`."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	msgW := innerW - 4 - 14 - 10 - 16 - 4
	if msgW < 10 {
		msgW = 10
	}
	lineFmt := fmt.Sprintf("%%-4s %%-14s %%10s %%-16s %%-%ds", msgW)

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf(lineFmt, "On", "Type", "Threshold", "Category", "Message")))
	body.WriteString("\n")

	for i, al := range alerts {
		on := "[ ]"
		if al.IsActive {
			on = "[x]"
		}
		category := "-"
		if al.Type == model.AlertCategoryLimit {
			category = a.budget.CategoryName(al.CategoryID)
		}
		line := fmt.Sprintf(lineFmt, on, string(al.Type), cli.FormatPercent(al.Threshold),
			cli.Truncate(category, 16), cli.Truncate(al.Message, msgW))

		switch {
		case i == a.alertCursor:
			body.WriteString(selectedStyle.Render(line))
		case !al.IsActive:
			body.WriteString(offStyle.Render(line))
		default:
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	return components.ContentCard(fmt.Sprintf("Alerts (%d)", len(alerts)), body.String(), cw)
}
