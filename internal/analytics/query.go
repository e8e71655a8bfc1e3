package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/ryanuber/go-glob"
	"github.com/theirongolddev/bplan/internal/model"
)

// SortField selects the key used to order an expense listing.
type SortField string

const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// SortOrder is the listing direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// AllCategories is the category filter value that matches every expense.
const AllCategories = "all"

// ExpenseQuery filters and orders an expense listing.
// The zero value lists everything, newest first.
type ExpenseQuery struct {
	Search     string
	CategoryID string
	SortBy     SortField
	Order      SortOrder
}

// QueryExpenses returns the expenses of b matching q, sorted.
//
// Search matches case-insensitively against the description or the category
// name as a substring. A term containing '*' also matches as a glob over the
// whole field.
func QueryExpenses(b model.Budget, q ExpenseQuery) []model.Expense {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	result := make([]model.Expense, 0, len(b.Expenses))
	for _, e := range b.Expenses {
		if q.CategoryID != "" && q.CategoryID != AllCategories && e.CategoryID != q.CategoryID {
			continue
		}
		if term != "" &&
			!matchTerm(e.Description, term) &&
			!matchTerm(b.CategoryName(e.CategoryID), term) {
			continue
		}
		result = append(result, e)
	}

	SortExpenses(result, q.SortBy, q.Order)
	return result
}

// SortExpenses orders expenses in place. Ties keep their insertion order.
// Unparseable dates sort as the zero time.
func SortExpenses(expenses []model.Expense, by SortField, order SortOrder) {
	if by == "" {
		by = SortByDate
	}
	desc := order != Ascending

	less := func(i, j int) bool {
		if by == SortByAmount {
			return expenses[i].Amount < expenses[j].Amount
		}
		return expenseTime(expenses[i]).Before(expenseTime(expenses[j]))
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}

// matchTerm reports whether field contains term. A term with * also matches
// as a whole-field glob.
func matchTerm(field, term string) bool {
	field = strings.ToLower(field)
	if strings.Contains(field, term) {
		return true
	}
	return strings.Contains(term, "*") && glob.Glob(term, field)
}

func expenseTime(e model.Expense) time.Time {
	t, _ := ParseDate(e.Date, time.Local)
	return t
}
