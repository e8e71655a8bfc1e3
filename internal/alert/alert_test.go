package alert

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/bplan/internal/model"
)

func analyticsFor(totalSpent, savings float64, cats ...model.CategoryAnalytics) model.BudgetAnalytics {
	return model.BudgetAnalytics{
		TotalSpent:        totalSpent,
		SavingsProgress:   savings,
		CategoryBreakdown: cats,
		MonthlyTrend:      []model.MonthlyTrend{},
	}
}

func alertIDs(alerts []model.BudgetAlert) []string {
	var out []string
	for _, a := range alerts {
		out = append(out, a.ID)
	}
	return out
}

func TestEvaluateRules(t *testing.T) {
	b := model.Budget{
		TotalBudget: 2000,
		Alerts: []model.BudgetAlert{
			{ID: "over", Type: model.AlertOverspending, Threshold: 80, IsActive: true},
			{ID: "food", Type: model.AlertCategoryLimit, Threshold: 100, CategoryID: "Food", IsActive: true},
			{ID: "rent", Type: model.AlertCategoryLimit, Threshold: 10, CategoryID: "1", IsActive: true},
			{ID: "save", Type: model.AlertSavingsGoal, Threshold: 50, IsActive: true},
			{ID: "custom", Type: model.AlertCustom, Threshold: 0, IsActive: true},
			{ID: "off", Type: model.AlertOverspending, Threshold: 0, IsActive: false},
		},
	}
	a := analyticsFor(1700, 40,
		model.CategoryAnalytics{CategoryID: "1", Percentage: 95},
		model.CategoryAnalytics{CategoryID: "Food", Percentage: 112.5},
	)

	got := Evaluate(b, a, model.Expense{CategoryID: "Food", Amount: 450})

	assert.Equal(t, []string{"over", "food", "save"}, alertIDs(got))
}

func TestEvaluateThresholdsAreStrict(t *testing.T) {
	b := model.Budget{
		TotalBudget: 1000,
		Alerts: []model.BudgetAlert{
			{ID: "over", Type: model.AlertOverspending, Threshold: 50, IsActive: true},
			{ID: "food", Type: model.AlertCategoryLimit, Threshold: 100, CategoryID: "Food", IsActive: true},
			{ID: "save", Type: model.AlertSavingsGoal, Threshold: 50, IsActive: true},
		},
	}
	a := analyticsFor(500, 50, model.CategoryAnalytics{CategoryID: "Food", Percentage: 100})

	assert.Empty(t, Evaluate(b, a, model.Expense{CategoryID: "Food"}))
}

func TestEvaluateCategoryLimitMissingCategory(t *testing.T) {
	b := model.Budget{Alerts: []model.BudgetAlert{
		{ID: "x", Type: model.AlertCategoryLimit, Threshold: 0, CategoryID: "gone", IsActive: true},
	}}

	assert.Empty(t, Evaluate(b, analyticsFor(10, 100), model.Expense{CategoryID: "gone"}))
}

func TestDeliverSwallowsErrors(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	var titles, bodies []string
	n := NotifierFunc(func(title, body string) error {
		titles = append(titles, title)
		bodies = append(bodies, body)
		return errors.New("permission denied")
	})

	fired := []model.BudgetAlert{{ID: "a", Message: "first"}, {ID: "b", Message: "second"}}
	require.NotPanics(t, func() { Deliver(n, fired, logger) })

	assert.Equal(t, []string{Title, Title}, titles)
	assert.Equal(t, []string{"first", "second"}, bodies)
	assert.Contains(t, logs.String(), "permission denied")
}

func TestDeliverNilNotifier(t *testing.T) {
	assert.NotPanics(t, func() {
		Deliver(nil, []model.BudgetAlert{{ID: "a", Message: "m"}}, zerolog.Nop())
	})
}
