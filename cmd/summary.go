package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget summary for the current month",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	b := s.Budget()
	a := s.Analytics()
	now := time.Now()

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET  " + now.Format("January 2006")))
	fmt.Println()

	income := "not set"
	if b.MonthlyIncome != nil {
		income = cli.FormatMoney(*b.MonthlyIncome)
	}

	spent := len(analytics.CurrentCycleExpenses(b.Expenses, now))
	rows := [][]string{
		{"Total Budget", cli.FormatMoney(b.TotalBudget)},
		{"Monthly Income", income},
		{"---"},
		{"Spent", fmt.Sprintf("%s  (%s expenses)", cli.FormatMoney(a.TotalSpent), cli.FormatNumber(int64(spent)))},
		{"Remaining", cli.FormatMoney(a.RemainingBudget)},
		{"---"},
		{"Savings Goal", cli.FormatMoney(b.SavingsGoal)},
		{"Savings Progress", cli.FormatPercent(a.SavingsProgress)},
		{"Projected Savings", cli.FormatMoney(a.ProjectedSavings)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Print(renderBreakdown(b, a))

	if insights := analytics.Insights(b, a); len(insights) > 0 {
		fmt.Println()
		for _, in := range insights {
			color := cli.ColorYellow
			if in.Severity == analytics.SeverityDanger {
				color = cli.ColorRed
			}
			fmt.Println("  " + lipgloss.NewStyle().Foreground(color).Render("● "+in.Message))
		}
	}
	fmt.Println()

	return nil
}

func renderBreakdown(b model.Budget, a model.BudgetAnalytics) string {
	rows := make([][]string, 0, len(a.CategoryBreakdown))
	for _, ca := range a.CategoryBreakdown {
		rows = append(rows, []string{
			b.CategoryName(ca.CategoryID),
			cli.FormatMoney(ca.Budget),
			cli.FormatMoney(ca.Spent),
			cli.FormatPercent(ca.Percentage),
			cli.RenderUsageBar(ca.Percentage, 20),
		})
	}

	return cli.RenderTable(cli.Table{
		Title:   "Category Breakdown",
		Headers: []string{"Category", "Budget", "Spent", "Used", ""},
		Rows:    rows,
	})
}
