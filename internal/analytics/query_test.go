package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theirongolddev/bplan/internal/model"
)

func queryBudget() model.Budget {
	b := newBudget(
		model.Expense{ID: "rent", Amount: 900, CategoryID: "1", Description: "May rent", Date: "2024-05-01"},
		model.Expense{ID: "groceries", Amount: 80, CategoryID: "Food", Description: "Groceries", Date: "2024-05-09"},
		model.Expense{ID: "coffee", Amount: 4.5, CategoryID: "Food", Description: "Coffee beans", Date: "2024-05-12"},
		model.Expense{ID: "mystery", Amount: 80, CategoryID: "gone", Description: "", Date: "2024-05-03"},
	)
	return b
}

func ids(expenses []model.Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.ID
	}
	return out
}

func TestQueryDefaultsToNewestFirst(t *testing.T) {
	got := QueryExpenses(queryBudget(), ExpenseQuery{})

	assert.Equal(t, []string{"coffee", "groceries", "mystery", "rent"}, ids(got))
}

func TestQuerySortByAmount(t *testing.T) {
	b := queryBudget()

	asc := QueryExpenses(b, ExpenseQuery{SortBy: SortByAmount, Order: Ascending})
	assert.Equal(t, []string{"coffee", "groceries", "mystery", "rent"}, ids(asc))

	desc := QueryExpenses(b, ExpenseQuery{SortBy: SortByAmount, Order: Descending})
	assert.Equal(t, []string{"rent", "groceries", "mystery", "coffee"}, ids(desc))
}

func TestQuerySearchMatchesDescriptionOrCategory(t *testing.T) {
	b := queryBudget()

	assert.Equal(t, []string{"coffee"}, ids(QueryExpenses(b, ExpenseQuery{Search: "COFFEE"})))
	assert.Equal(t, []string{"coffee", "groceries"}, ids(QueryExpenses(b, ExpenseQuery{Search: "food"})))
	assert.Equal(t, []string{"mystery"}, ids(QueryExpenses(b, ExpenseQuery{Search: "unknown"})))
}

func TestQuerySearchGlob(t *testing.T) {
	got := QueryExpenses(queryBudget(), ExpenseQuery{Search: "*rent"})

	assert.Equal(t, []string{"rent"}, ids(got))
}

func TestQuerySearchStarMatchesLiterally(t *testing.T) {
	b := newBudget(
		model.Expense{ID: "coupon", Amount: 3, CategoryID: "Food", Description: "Deli 2*1 deal", Date: "2024-05-04"},
		model.Expense{ID: "plain", Amount: 5, CategoryID: "Food", Description: "Deli lunch", Date: "2024-05-05"},
	)

	assert.Equal(t, []string{"coupon"}, ids(QueryExpenses(b, ExpenseQuery{Search: "2*1"})))
	assert.Equal(t, []string{"plain", "coupon"}, ids(QueryExpenses(b, ExpenseQuery{Search: "deli*"})))
}

func TestQueryCategoryFilter(t *testing.T) {
	b := queryBudget()

	assert.Equal(t, []string{"coffee", "groceries"}, ids(QueryExpenses(b, ExpenseQuery{CategoryID: "Food"})))
	assert.Len(t, QueryExpenses(b, ExpenseQuery{CategoryID: AllCategories}), 4)
}

func TestQueryDoesNotReorderBudget(t *testing.T) {
	b := queryBudget()
	_ = QueryExpenses(b, ExpenseQuery{SortBy: SortByAmount})

	assert.Equal(t, []string{"rent", "groceries", "coffee", "mystery"}, ids(b.Expenses))
}

func TestInsights(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 380, CategoryID: "Food", Date: "2024-05-02"})
	b.SavingsGoal = 4000

	got := Insights(b, Compute(b, fixedNow))

	if assert.Len(t, got, 2) {
		assert.Equal(t, SeverityDanger, got[0].Severity)
		assert.Equal(t, "Food category has reached 95.0% of its budget", got[0].Message)
		assert.Equal(t, SeverityWarning, got[1].Severity)
	}
}

func TestInsightsQuietWhenHealthy(t *testing.T) {
	b := newBudget(model.Expense{ID: "a", Amount: 10, CategoryID: "Food", Date: "2024-05-02"})

	assert.Empty(t, Insights(b, Compute(b, fixedNow)))
}
