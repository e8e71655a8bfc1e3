package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/bplan/internal/model"
)

var fixedNow = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func newBudget(expenses ...model.Expense) model.Budget {
	return model.Budget{
		TotalBudget: 2000,
		Categories: []model.Category{
			{ID: "1", Name: "Housing", Amount: 1000},
			{ID: "Food", Name: "Food", Amount: 400},
		},
		CustomCategories: []model.Category{},
		Expenses:         expenses,
		SavingsGoal:      500,
		CycleType:        model.CycleMonthly,
		Alerts:           []model.BudgetAlert{},
	}
}

func TestComputeTotalsCurrentMonthOnly(t *testing.T) {
	b := newBudget(
		model.Expense{ID: "a", Amount: 500, CategoryID: "1", Date: "2024-05-01"},
		model.Expense{ID: "b", Amount: 20, CategoryID: "Food", Date: "2024-05-31"},
		model.Expense{ID: "c", Amount: 99, CategoryID: "Food", Date: "2024-04-30"},
		model.Expense{ID: "d", Amount: 77, CategoryID: "Food", Date: "2024-06-01"},
		model.Expense{ID: "e", Amount: 5, CategoryID: "Food", Date: "not a date"},
	)

	a := Compute(b, fixedNow)

	assert.Equal(t, 520.0, a.TotalSpent)
	assert.Equal(t, 1480.0, a.RemainingBudget)
	assert.Equal(t, a.RemainingBudget, a.ProjectedSavings)
	assert.Equal(t, 1480.0/500*100, a.SavingsProgress)
}

func TestComputeRemainingBudgetScenario(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 500, CategoryID: "1", Date: "2024-05-10"})

	a := Compute(b, fixedNow)

	assert.Equal(t, 500.0, a.TotalSpent)
	assert.Equal(t, 1500.0, a.RemainingBudget)
}

func TestComputeCategoryPercentage(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 450, CategoryID: "Food", Date: "2024-05-15"})

	a := Compute(b, fixedNow)

	food, ok := a.Category("Food")
	require.True(t, ok)
	assert.Equal(t, 450.0, food.Spent)
	assert.Equal(t, 400.0, food.Budget)
	assert.Equal(t, 112.5, food.Percentage)
	assert.Equal(t, model.TrendStable, food.Trend)

	housing, ok := a.Category("1")
	require.True(t, ok)
	assert.Equal(t, 0.0, housing.Spent)
	assert.Equal(t, 0.0, housing.Percentage)
}

func TestComputeRemainingGoesNegative(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 2500, CategoryID: "1", Date: "2024-05-02"})

	a := Compute(b, fixedNow)

	assert.Equal(t, -500.0, a.RemainingBudget)
	assert.Equal(t, -100.0, a.SavingsProgress)
}

func TestComputeZeroSavingsGoalIsNonFinite(t *testing.T) {
	b := newBudget()
	b.SavingsGoal = 0

	var a model.BudgetAnalytics
	require.NotPanics(t, func() { a = Compute(b, fixedNow) })
	assert.True(t, math.IsInf(a.SavingsProgress, 1))
}

func TestComputeZeroCategoryAmount(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 10, CategoryID: "z", Date: "2024-05-02"})
	b.Categories = append(b.Categories,
		model.Category{ID: "z", Name: "Zero", Amount: 0},
		model.Category{ID: "empty", Name: "Empty", Amount: 0},
	)

	a := Compute(b, fixedNow)

	z, _ := a.Category("z")
	assert.True(t, math.IsInf(z.Percentage, 1))
	empty, _ := a.Category("empty")
	assert.True(t, math.IsNaN(empty.Percentage))
}

func TestComputeIncludesCustomCategories(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 30, CategoryID: "pets", Date: "2024-05-02"})
	b.CustomCategories = []model.Category{{ID: "pets", Name: "Pets", Amount: 60, IsCustom: true}}

	a := Compute(b, fixedNow)

	require.Len(t, a.CategoryBreakdown, 3)
	assert.Equal(t, "pets", a.CategoryBreakdown[2].CategoryID)
	assert.Equal(t, 50.0, a.CategoryBreakdown[2].Percentage)
}

func TestComputeDanglingCategoryCountsTowardTotalOnly(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 42, CategoryID: "gone", Date: "2024-05-02"})

	a := Compute(b, fixedNow)

	assert.Equal(t, 42.0, a.TotalSpent)
	for _, ca := range a.CategoryBreakdown {
		assert.Equal(t, 0.0, ca.Spent)
	}
}

func TestComputeMonthlyTrendIsEmpty(t *testing.T) {
	a := Compute(newBudget(), fixedNow)

	assert.NotNil(t, a.MonthlyTrend)
	assert.Empty(t, a.MonthlyTrend)
}

func TestComputeIgnoresCycleSettings(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 10, CategoryID: "1", Date: "2024-05-02"})
	b.CycleType = model.CycleWeekly
	b.StartDate = "2024-05-14"
	days := 3
	b.CycleDuration = &days

	assert.Equal(t, 10.0, Compute(b, fixedNow).TotalSpent)
}

func TestCycleBoundsLastInstantIncluded(t *testing.T) {
	start, end := CycleBounds(fixedNow)

	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), end)

	b := newBudget(model.Expense{ID: "a", Amount: 1, CategoryID: "1", Date: "2024-05-31T23:59:59.999Z"})
	assert.Equal(t, 1.0, Compute(b, fixedNow).TotalSpent)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-05-03", time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), true},
		{" 2024-05-03 ", time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), true},
		{"2024-05-03T10:30:00Z", time.Date(2024, 5, 3, 10, 30, 0, 0, time.UTC), true},
		{"2024-05-03T10:30", time.Date(2024, 5, 3, 10, 30, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"05/03/2024", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in, time.UTC)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
		}
	}
}
