package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/budget"
	"github.com/theirongolddev/bplan/internal/model"
	"github.com/theirongolddev/bplan/internal/notify"
	"github.com/theirongolddev/bplan/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

var testNow = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, inbox *notify.Inbox) App {
	t.Helper()

	n := 0
	cfg := budget.Config{
		Persistence: &store.Memory{},
		Now:         func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
	if inbox != nil {
		cfg.Notifier = inbox
	}
	s := budget.New(cfg)
	s.AddExpense(model.Expense{Amount: 900, CategoryID: "1", Description: "Rent", Date: "2024-05-01"})
	s.AddExpense(model.Expense{Amount: 45, CategoryID: "2", Description: "Groceries", Date: "2024-05-10"})
	s.AddExpense(model.Expense{Amount: 12, CategoryID: "4", Description: "", Date: "2024-05-12"})

	a := NewApp(s, inbox)
	a.now = func() time.Time { return testNow }
	a.width, a.height = 120, 40
	return a
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

func descriptions(expenses []model.Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.Description
	}
	return out
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t, nil)

	tests := []struct {
		key  string
		want int
	}{
		{"e", tabExpenses},
		{"c", tabCategories},
		{"a", tabAlerts},
		{"o", tabOverview},
	}
	for _, tt := range tests {
		a = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Fatalf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestExpensesDefaultNewestFirst(t *testing.T) {
	a := newTestApp(t, nil)

	got := strings.Join(descriptions(a.visibleExpenses()), ",")
	if got != ",Groceries,Rent" {
		t.Fatalf("visible = %q", got)
	}
}

func TestExpensesSortKeys(t *testing.T) {
	a := press(t, newTestApp(t, nil), "e", "s")
	if a.exp.query.SortBy != analytics.SortByAmount {
		t.Fatalf("SortBy = %q", a.exp.query.SortBy)
	}
	if got := a.visibleExpenses()[0].Description; got != "Rent" {
		t.Fatalf("largest first = %q, want Rent", got)
	}

	a = press(t, a, "S")
	if a.exp.query.Order != analytics.Ascending {
		t.Fatalf("Order = %q", a.exp.query.Order)
	}
	if got := a.visibleExpenses()[0].Amount; got != 12 {
		t.Fatalf("smallest first = %v, want 12", got)
	}
}

func TestExpensesDeleteSelected(t *testing.T) {
	a := press(t, newTestApp(t, nil), "e", "j", "d")

	if n := len(a.budget.Expenses); n != 2 {
		t.Fatalf("expenses = %d, want 2", n)
	}
	for _, e := range a.store.Budget().Expenses {
		if e.Description == "Groceries" {
			t.Fatal("Groceries should have been deleted")
		}
	}
	if !strings.Contains(a.notice, "Groceries") {
		t.Fatalf("notice = %q", a.notice)
	}
}

func TestExpensesDeleteOnlyOnExpensesTab(t *testing.T) {
	a := press(t, newTestApp(t, nil), "d")
	if n := len(a.store.Budget().Expenses); n != 3 {
		t.Fatalf("expenses = %d, want 3", n)
	}
}

func TestExpensesSearch(t *testing.T) {
	a := press(t, newTestApp(t, nil), "e", "/")
	if !a.exp.searching {
		t.Fatal("expected search mode")
	}

	// Keys typed while searching go to the input, not to tab switching.
	a = press(t, a, "f", "o", "o", "d", "enter")
	if a.exp.searching {
		t.Fatal("search mode should end on enter")
	}
	if a.exp.query.Search != "food" {
		t.Fatalf("Search = %q", a.exp.query.Search)
	}
	if a.activeTab != tabExpenses {
		t.Fatalf("activeTab = %d", a.activeTab)
	}
	if got := descriptions(a.visibleExpenses()); len(got) != 1 || got[0] != "Groceries" {
		t.Fatalf("visible = %q", got)
	}

	a = press(t, a, "esc")
	if a.exp.query.Search != "" || len(a.visibleExpenses()) != 3 {
		t.Fatal("esc should clear the search")
	}
}

func TestExpensesCategoryFilterCycles(t *testing.T) {
	a := press(t, newTestApp(t, nil), "e", "f")
	if a.exp.query.CategoryID != "1" {
		t.Fatalf("CategoryID = %q, want 1", a.exp.query.CategoryID)
	}
	if got := descriptions(a.visibleExpenses()); len(got) != 1 || got[0] != "Rent" {
		t.Fatalf("visible = %q", got)
	}

	for range a.budget.AllCategories() {
		a = press(t, a, "f")
	}
	if a.exp.query.CategoryID != analytics.AllCategories {
		t.Fatalf("CategoryID = %q, want all", a.exp.query.CategoryID)
	}
}

func TestToggleAlert(t *testing.T) {
	a := newTestApp(t, nil)
	a.store.AddBudgetAlert(model.BudgetAlert{Type: model.AlertOverspending, Threshold: 80, Message: "Slow down"})
	a.refresh()

	a = press(t, a, "a", "t")
	if a.budget.Alerts[0].IsActive {
		t.Fatal("alert should be inactive after toggle")
	}
	a = press(t, a, "t")
	if !a.budget.Alerts[0].IsActive {
		t.Fatal("alert should be active after second toggle")
	}
}

func TestSubmittedExpenseShowsFiredAlert(t *testing.T) {
	inbox := &notify.Inbox{}
	a := newTestApp(t, inbox)
	a.store.AddBudgetAlert(model.BudgetAlert{
		Type: model.AlertCategoryLimit, Threshold: 50, CategoryID: "2", Message: "Food is over half",
	})
	a.refresh()

	a.formKind = formExpense
	a.expVals = &expenseValues{Amount: "$200", CategoryID: "2", Description: "Dinner", Date: "2024-05-14"}
	a.submitForm()

	if n := len(a.budget.Expenses); n != 4 {
		t.Fatalf("expenses = %d, want 4", n)
	}
	if !a.alerting || !strings.Contains(a.notice, "Food is over half") {
		t.Fatalf("notice = %q alerting=%v", a.notice, a.alerting)
	}
	if left := inbox.Drain(); len(left) != 0 {
		t.Fatalf("inbox not drained: %q", left)
	}
}

func TestExpenseValuesConversion(t *testing.T) {
	v := expenseValues{
		Amount:     "1,250.5",
		CategoryID: "1",
		Date:       "2024-05-02",
		Recurring:  false,
		Interval:   model.IntervalYearly,
		Tags:       "home, rent",
	}
	e := v.expense()
	if e.Amount != 1250.5 || e.RecurringInterval != "" || len(e.Tags) != 2 {
		t.Fatalf("expense = %+v", e)
	}

	v.Recurring = true
	if got := v.expense().RecurringInterval; got != model.IntervalYearly {
		t.Fatalf("interval = %q", got)
	}
}

func TestFormValidation(t *testing.T) {
	if validateAmount("0") == nil {
		t.Error("zero amount should be rejected")
	}
	if validateAmount("abc") == nil {
		t.Error("text amount should be rejected")
	}
	if validateAmount("12.50") != nil {
		t.Error("12.50 should be accepted")
	}
	if validateDate("05/02/2024") == nil {
		t.Error("US date should be rejected")
	}
	if validateColor("red") == nil || validateColor("") != nil || validateColor("#A0B0C0") != nil {
		t.Error("unexpected color validation")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t, nil)

	for tab := tabOverview; tab <= tabAlerts; tab++ {
		a.activeTab = tab
		out := a.View()
		if lines := strings.Count(out, "\n") + 1; lines != a.height {
			t.Errorf("tab %d rendered %d lines, want %d", tab, lines, a.height)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := newTestApp(t, nil)
	a.width = 60
	if !strings.Contains(a.View(), "too narrow") {
		t.Fatal("expected too-narrow message")
	}
}

func TestHelpToggle(t *testing.T) {
	a := press(t, newTestApp(t, nil), "?")
	if !a.showHelp {
		t.Fatal("help should be shown")
	}
	a = press(t, a, "e")
	if a.showHelp || a.activeTab != tabOverview {
		t.Fatal("any key should only dismiss help")
	}
}
