// Package analytics derives spending statistics from a budget aggregate.
//
// Everything here is a pure function of its inputs. Results are recomputed in
// full on every call; nothing is cached between calls.
package analytics

import (
	"time"

	"github.com/theirongolddev/bplan/internal/model"
)

// Compute derives the analytics for b as of now.
//
// Only expenses dated within the calendar month containing now count. The
// budget's cycle settings are not consulted. Ratios are left unguarded, so a
// zero savings goal or category amount produces ±Inf or NaN.
func Compute(b model.Budget, now time.Time) model.BudgetAnalytics {
	current := CurrentCycleExpenses(b.Expenses, now)

	var totalSpent float64
	spentBy := make(map[string]float64)
	for _, e := range current {
		totalSpent += e.Amount
		spentBy[e.CategoryID] += e.Amount
	}

	remaining := b.TotalBudget - totalSpent

	categories := b.AllCategories()
	breakdown := make([]model.CategoryAnalytics, 0, len(categories))
	for _, c := range categories {
		spent := spentBy[c.ID]
		breakdown = append(breakdown, model.CategoryAnalytics{
			CategoryID: c.ID,
			Spent:      spent,
			Budget:     c.Amount,
			Percentage: spent / c.Amount * 100,
			Trend:      model.TrendStable,
		})
	}

	return model.BudgetAnalytics{
		TotalSpent:        totalSpent,
		RemainingBudget:   remaining,
		SavingsProgress:   remaining / b.SavingsGoal * 100,
		CategoryBreakdown: breakdown,
		MonthlyTrend:      []model.MonthlyTrend{},
		ProjectedSavings:  remaining,
	}
}

// CurrentCycleExpenses returns the expenses dated within the calendar month
// containing now, in their original order. Unparseable dates never match.
func CurrentCycleExpenses(expenses []model.Expense, now time.Time) []model.Expense {
	start, end := CycleBounds(now)

	var result []model.Expense
	for _, e := range expenses {
		d, ok := ParseDate(e.Date, now.Location())
		if !ok {
			continue
		}
		if d.Before(start) || !d.Before(end) {
			continue
		}
		result = append(result, e)
	}
	return result
}
