package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"
	"github.com/theirongolddev/bplan/internal/tui/components"
	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const unnamedExpense = "Unnamed Expense"

// expensesState holds the expenses tab state.
type expensesState struct {
	cursor int
	offset int // scroll offset for the list

	searching   bool
	searchInput textinput.Model
	query       analytics.ExpenseQuery
}

func newExpensesState() expensesState {
	return expensesState{
		query: analytics.ExpenseQuery{
			CategoryID: analytics.AllCategories,
			SortBy:     analytics.SortByDate,
			Order:      analytics.Descending,
		},
	}
}

func newSearchInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "description, category or glob (*rent)"
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Width = 40
	ti.SetValue(value)
	return ti
}

// visibleExpenses applies the current search, filter and sort.
func (a App) visibleExpenses() []model.Expense {
	return analytics.QueryExpenses(a.budget, a.exp.query)
}

// updateExpensesKey handles keys specific to the expenses tab.
func (a *App) updateExpensesKey(key string) (bool, tea.Cmd) {
	es := &a.exp
	visible := a.visibleExpenses()

	switch key {
	case "/":
		es.searching = true
		es.searchInput = newSearchInput(es.query.Search)
		es.searchInput.Focus()
		return true, textinput.Blink
	case "esc":
		if es.query.Search != "" || es.query.CategoryID != analytics.AllCategories {
			es.query.Search = ""
			es.query.CategoryID = analytics.AllCategories
			es.cursor, es.offset = 0, 0
		}
		return true, nil
	case "g":
		es.cursor, es.offset = 0, 0
		return true, nil
	case "G":
		es.cursor = clamp(len(visible)-1, len(visible))
		return true, nil
	case "s":
		if es.query.SortBy == analytics.SortByDate {
			es.query.SortBy = analytics.SortByAmount
		} else {
			es.query.SortBy = analytics.SortByDate
		}
		return true, nil
	case "S":
		if es.query.Order == analytics.Descending {
			es.query.Order = analytics.Ascending
		} else {
			es.query.Order = analytics.Descending
		}
		return true, nil
	case "f":
		es.query.CategoryID = nextCategoryFilter(a.budget, es.query.CategoryID)
		es.cursor, es.offset = 0, 0
		return true, nil
	case "d", "delete":
		if es.cursor >= len(visible) {
			return true, nil
		}
		e := visible[es.cursor]
		a.store.DeleteExpense(e.ID)
		a.refresh()
		a.setNotice("Deleted " + expenseLabel(e))
		return true, nil
	}
	return false, nil
}

// nextCategoryFilter cycles all -> each category in order -> all.
func nextCategoryFilter(b model.Budget, current string) string {
	cats := b.AllCategories()
	if current == analytics.AllCategories || current == "" {
		if len(cats) == 0 {
			return analytics.AllCategories
		}
		return cats[0].ID
	}
	for i, c := range cats {
		if c.ID == current && i+1 < len(cats) {
			return cats[i+1].ID
		}
	}
	return analytics.AllCategories
}

// updateExpenseSearch handles key events while in search mode.
func (a App) updateExpenseSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.exp.query.Search = strings.TrimSpace(a.exp.searchInput.Value())
		a.exp.searching = false
		a.exp.cursor, a.exp.offset = 0, 0
		return a, nil
	case "esc":
		a.exp.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.exp.searchInput, cmd = a.exp.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderExpensesTab(cw, h int) string {
	t := theme.Active
	es := a.exp
	expenses := a.visibleExpenses()

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)

	innerW := components.CardInnerWidth(cw)

	var body strings.Builder

	// Query line
	filterName := "all"
	if es.query.CategoryID != analytics.AllCategories {
		filterName = a.budget.CategoryName(es.query.CategoryID)
	}
	if es.searching {
		body.WriteString(es.searchInput.View())
	} else {
		search := es.query.Search
		if search == "" {
			search = "-"
		}
		body.WriteString(mutedStyle.Render("search ") + accentStyle.Render(search) +
			mutedStyle.Render("  category ") + accentStyle.Render(filterName) +
			mutedStyle.Render("  sort ") + accentStyle.Render(fmt.Sprintf("%s %s", es.query.SortBy, es.query.Order)))
	}
	body.WriteString("\n\n")

	if len(expenses) == 0 {
		body.WriteString(mutedStyle.Render("No expenses found"))
		return components.ContentCard(fmt.Sprintf("Expenses (%d)", len(a.budget.Expenses)), body.String(), cw)
	}

	// Fixed columns: date 12, amount 12, category 16; description gets the rest.
	descW := innerW - 12 - 12 - 16 - 3
	if descW < 10 {
		descW = 10
	}
	lineFmt := fmt.Sprintf("%%-12s %%-%ds %%-16s %%12s", descW)

	body.WriteString(headerStyle.Render(fmt.Sprintf(lineFmt, "Date", "Description", "Category", "Amount")))
	body.WriteString("\n")

	visible := h - 8 // card border (2) + title (1) + query (2) + header (1) + footer (2)
	if visible < 3 {
		visible = 3
	}
	offset := es.offset
	if es.cursor < offset {
		offset = es.cursor
	}
	if es.cursor >= offset+visible {
		offset = es.cursor - visible + 1
	}

	end := offset + visible
	if end > len(expenses) {
		end = len(expenses)
	}
	for i := offset; i < end; i++ {
		e := expenses[i]
		desc := e.Description
		if desc == "" {
			desc = unnamedExpense
		}
		if e.IsRecurring {
			desc = "↻ " + desc
		}
		line := fmt.Sprintf(lineFmt,
			cli.FormatDate(e.Date),
			cli.Truncate(desc, descW),
			cli.Truncate(a.budget.CategoryName(e.CategoryID), 16),
			cli.FormatMoney(e.Amount))

		if i == es.cursor {
			body.WriteString(selectedStyle.Render(line))
		} else {
			body.WriteString(rowStyle.Render(line))
		}
		body.WriteString("\n")
	}

	// Detail of the selected expense
	if es.cursor < len(expenses) {
		sel := expenses[es.cursor]
		var extra []string
		if sel.IsRecurring && sel.RecurringInterval != "" {
			extra = append(extra, "repeats "+string(sel.RecurringInterval))
		}
		if len(sel.Tags) > 0 {
			extra = append(extra, "#"+strings.Join(sel.Tags, " #"))
		}
		if sel.Notes != "" {
			extra = append(extra, sel.Notes)
		}
		if len(extra) > 0 {
			body.WriteString("\n")
			body.WriteString(mutedStyle.Render(cli.Truncate(strings.Join(extra, " · "), innerW)))
		}
	}

	title := fmt.Sprintf("Expenses (%d of %d)", len(expenses), len(a.budget.Expenses))
	return components.ContentCard(title, body.String(), cw)
}
