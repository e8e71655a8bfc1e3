// Package tui provides the interactive Bubble Tea dashboard for bplan.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/budget"
	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"
	"github.com/theirongolddev/bplan/internal/notify"
	"github.com/theirongolddev/bplan/internal/tui/components"
	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabExpenses
	tabCategories
	tabAlerts
)

// exportDoneMsg is sent when a background export finishes.
type exportDoneMsg struct {
	path string
	err  error
}

// App is the root Bubble Tea model.
type App struct {
	store *budget.Store
	inbox *notify.Inbox
	now   func() time.Time

	// Snapshot of the store, refreshed after every command
	budget   model.Budget
	stats    model.BudgetAnalytics
	insights []analytics.Insight

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	exp         expensesState
	catCursor   int
	alertCursor int

	// Add forms (huh)
	form     *huh.Form
	formKind formKind
	expVals  *expenseValues
	catVals  *categoryValues

	// Status bar
	notice    string
	alerting  bool
	exporting bool
	spinner   spinner.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a dashboard over store. Alerts delivered to inbox are shown
// in the status bar after each new expense; inbox may be nil.
func NewApp(store *budget.Store, inbox *notify.Inbox) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		store:   store,
		inbox:   inbox,
		now:     time.Now,
		spinner: sp,
		exp:     newExpensesState(),
	}
	a.refresh()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.EnableMouseCellMotion
}

// refresh reloads the snapshot and clamps cursors to the new lists.
func (a *App) refresh() {
	a.budget = a.store.Budget()
	a.stats = a.store.Analytics()
	a.insights = analytics.Insights(a.budget, a.stats)

	a.exp.cursor = clamp(a.exp.cursor, len(a.visibleExpenses()))
	a.catCursor = clamp(a.catCursor, len(a.budget.AllCategories()))
	a.alertCursor = clamp(a.alertCursor, len(a.budget.Alerts))
}

// drainInbox moves delivered alerts into the status bar.
func (a *App) drainInbox() {
	if a.inbox == nil {
		return
	}
	if msgs := a.inbox.Drain(); len(msgs) > 0 {
		a.notice = "⚠ " + strings.Join(msgs, " · ")
		a.alerting = true
	}
}

func (a *App) setNotice(s string) {
	a.notice = s
	a.alerting = false
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.contentWidth()).WithHeight(a.height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case exportDoneMsg:
		a.exporting = false
		if msg.err != nil {
			a.setNotice("Export failed: " + msg.err.Error())
		} else {
			a.setNotice("Exported to " + msg.path)
		}
		return a, nil

	case spinner.TickMsg:
		if a.exporting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the open form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// Open form intercepts all keys
	if a.form != nil {
		return a.updateForm(msg)
	}

	// Expense search intercepts all keys while typing
	if a.activeTab == tabExpenses && a.exp.searching {
		return a.updateExpenseSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "n":
		return a.openForm(formExpense)
	case "x":
		if a.exporting {
			return a, nil
		}
		a.exporting = true
		a.setNotice("Exporting…")
		return a, tea.Batch(a.spinner.Tick, exportCmd(a.store))
	case "j", "down":
		a.moveCursor(1)
		return a, nil
	case "k", "up":
		a.moveCursor(-1)
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	switch a.activeTab {
	case tabExpenses:
		if handled, cmd := a.updateExpensesKey(key); handled {
			return a, cmd
		}
	case tabCategories:
		if key == "N" {
			return a.openForm(formCategory)
		}
	case tabAlerts:
		if key == "t" || key == " " || key == "enter" {
			a.toggleSelectedAlert()
			return a, nil
		}
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabExpenses:
		if !a.exp.searching {
			a.exp.cursor = clamp(a.exp.cursor+delta, len(a.visibleExpenses()))
		}
	case tabCategories:
		a.catCursor = clamp(a.catCursor+delta, len(a.budget.AllCategories()))
	case tabAlerts:
		a.alertCursor = clamp(a.alertCursor+delta, len(a.budget.Alerts))
	}
}

func (a *App) toggleSelectedAlert() {
	if a.alertCursor >= len(a.budget.Alerts) {
		return
	}
	al := a.budget.Alerts[a.alertCursor]
	a.store.ToggleAlert(al.ID)
	a.refresh()
	state := "off"
	if !al.IsActive {
		state = "on"
	}
	a.setNotice(fmt.Sprintf("Alert %q turned %s", al.Message, state))
}

func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	switch kind {
	case formExpense:
		a.expVals = &expenseValues{}
		a.form = newExpenseForm(a.budget, a.now(), a.expVals)
	case formCategory:
		a.catVals = &categoryValues{}
		a.form = newCategoryForm(a.catVals)
	default:
		return a, nil
	}
	a.formKind = kind
	if a.width > 0 {
		a.form = a.form.WithWidth(a.contentWidth()).WithHeight(a.height)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.submitForm()
		a.form = nil
		a.formKind = formNone
		return a, nil
	case huh.StateAborted:
		a.form = nil
		a.formKind = formNone
		a.setNotice("Cancelled")
		return a, nil
	}
	return a, cmd
}

func (a *App) submitForm() {
	switch a.formKind {
	case formExpense:
		e := a.store.AddExpense(a.expVals.expense())
		a.refresh()
		a.setNotice("Added " + expenseLabel(e))
		a.drainInbox()
	case formCategory:
		c := a.store.AddCustomCategory(a.catVals.category())
		a.refresh()
		a.setNotice("Added category " + c.Name)
	}
}

func exportCmd(store *budget.Store) tea.Cmd {
	return func() tea.Msg {
		path, err := store.ExportBudgetData()
		return exportDoneMsg{path: path, err: err}
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  bplan needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(a.form.View()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o e c a", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move selection"},
			{"g G", "First / Last expense"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"n", "New expense"},
			{"N", "New category (Categories)"},
			{"d", "Delete expense (Expenses)"},
			{"/", "Search expenses"},
			{"s S", "Sort field / order"},
			{"f", "Cycle category filter"},
			{"t", "Toggle alert (Alerts)"},
			{"x", "Export JSON"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	notice := a.notice
	if a.exporting {
		notice = a.spinner.View() + " " + notice
	}
	statusBar := components.RenderStatusBar(w, a.statusHints(), notice, a.alerting)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case tabCategories:
		content = a.renderCategoriesTab(cw)
	case tabAlerts:
		content = a.renderAlertsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusHints() string {
	switch a.activeTab {
	case tabExpenses:
		return "[n]ew [d]elete [/]search [s]ort [f]ilter [?]help"
	case tabCategories:
		return "[n]ew expense [N]ew category [?]help"
	case tabAlerts:
		return "[t]oggle [n]ew expense [?]help"
	}
	return "[n]ew expense [x] export [?]help [q]uit"
}

// ─── Helpers ────────────────────────────────────────────────────

// clamp keeps a cursor inside [0, n).
func clamp(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func expenseLabel(e model.Expense) string {
	desc := e.Description
	if desc == "" {
		desc = unnamedExpense
	}
	return fmt.Sprintf("%s (%s)", desc, cli.FormatMoney(e.Amount))
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
