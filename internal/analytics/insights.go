package analytics

import (
	"fmt"

	"github.com/theirongolddev/bplan/internal/model"
)

// Severity ranks an insight for display.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

const (
	categoryWarnPercent = 90
	savingsWarnPercent  = 50
)

// Insight is a human-readable observation about the current cycle.
type Insight struct {
	Severity   Severity
	CategoryID string
	Message    string
}

// Insights lists categories above 90% of their budget and flags savings
// progress under 50%. NaN never triggers either rule.
func Insights(b model.Budget, a model.BudgetAnalytics) []Insight {
	var out []Insight
	for _, ca := range a.CategoryBreakdown {
		if ca.Percentage > categoryWarnPercent {
			out = append(out, Insight{
				Severity:   SeverityDanger,
				CategoryID: ca.CategoryID,
				Message: fmt.Sprintf("%s category has reached %.1f%% of its budget",
					b.CategoryName(ca.CategoryID), ca.Percentage),
			})
		}
	}
	if a.SavingsProgress < savingsWarnPercent {
		out = append(out, Insight{
			Severity: SeverityWarning,
			Message:  "You are behind on your savings goal for this month",
		})
	}
	return out
}
