package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/tui/components"
	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	b := a.budget
	s := a.stats

	income := "not set"
	if b.MonthlyIncome != nil {
		income = "income " + cli.FormatMoney(*b.MonthlyIncome)
	}

	metrics := []components.Metric{
		{
			Label: "Total Budget",
			Value: cli.FormatMoney(b.TotalBudget),
			Note:  income,
		},
		{
			Label: "Spent This Month",
			Value: cli.FormatMoney(s.TotalSpent),
			Note:  fmt.Sprintf("%d expenses", len(analytics.CurrentCycleExpenses(b.Expenses, a.now()))),
			Color: t.Usage(s.TotalSpent / b.TotalBudget * 100),
		},
		{
			Label: "Remaining",
			Value: cli.FormatMoney(s.RemainingBudget),
			Color: t.Signed(s.RemainingBudget),
		},
		{
			Label: "Savings Progress",
			Value: cli.FormatPercent(s.SavingsProgress),
			Note:  "goal " + cli.FormatMoney(b.SavingsGoal),
			Color: t.Signed(s.SavingsProgress),
		},
	}

	var out strings.Builder
	out.WriteString(components.MetricCardRow(metrics, cw))
	out.WriteString("\n")

	// Category breakdown
	innerW := components.CardInnerWidth(cw)
	labelW := 16
	amountW := 22
	barW := innerW - labelW - amountW - 10
	if barW < 10 {
		barW = 10
	}

	var bars strings.Builder
	for i, ca := range s.CategoryBreakdown {
		amounts := cli.FormatMoney(ca.Spent) + " / " + cli.FormatMoney(ca.Budget)
		bars.WriteString(components.CategoryBar(b.CategoryName(ca.CategoryID), ca.Percentage, amounts, labelW, barW))
		if i < len(s.CategoryBreakdown)-1 {
			bars.WriteString("\n")
		}
	}
	out.WriteString(components.ContentCard("Category Breakdown", bars.String(), cw))
	out.WriteString("\n")

	// Insights
	dangerStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)
	okStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)

	var notes strings.Builder
	if len(a.insights) == 0 {
		notes.WriteString(okStyle.Render("✓ Spending is on track"))
	}
	for i, in := range a.insights {
		style := warnStyle
		if in.Severity == analytics.SeverityDanger {
			style = dangerStyle
		}
		notes.WriteString(style.Render("● " + in.Message))
		if i < len(a.insights)-1 {
			notes.WriteString("\n")
		}
	}
	out.WriteString(components.ContentCard("Insights", notes.String(), cw))

	return out.String()
}
