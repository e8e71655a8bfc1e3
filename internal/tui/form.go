package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"

	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formNone formKind = iota
	formExpense
	formCategory
)

// expenseValues is bound to the add-expense form fields.
type expenseValues struct {
	Amount      string
	CategoryID  string
	Description string
	Date        string
	Recurring   bool
	Interval    model.RecurringInterval
	Tags        string
	Notes       string
}

// categoryValues is bound to the add-category form fields.
type categoryValues struct {
	Name   string
	Amount string
	Color  string
}

const defaultCustomColor = "#B8B8FF"

func validateAmount(s string) error {
	v, err := cli.ParseAmount(s)
	if err != nil {
		return err
	}
	if v == 0 {
		return errors.New("amount must not be zero")
	}
	return nil
}

func validateDate(s string) error {
	if _, ok := analytics.ParseDate(s, time.Local); !ok {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validateColor(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if len(s) != 7 || s[0] != '#' {
		return errors.New("use #RRGGBB")
	}
	return nil
}

// newExpenseForm builds the add-expense form. The date defaults to today and
// the category to the first one available.
func newExpenseForm(b model.Budget, now time.Time, vals *expenseValues) *huh.Form {
	cats := b.AllCategories()
	opts := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}

	*vals = expenseValues{
		Date:     analytics.Today(now),
		Interval: model.IntervalMonthly,
	}
	if len(cats) > 0 {
		vals.CategoryID = cats[0].ID
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&vals.Amount).
				Validate(validateAmount),
			huh.NewSelect[string]().
				Title("Category").
				Options(opts...).
				Value(&vals.CategoryID),
			huh.NewInput().
				Title("Description").
				Value(&vals.Description),
			huh.NewInput().
				Title("Date").
				Value(&vals.Date).
				Validate(validateDate),
			huh.NewConfirm().
				Title("Recurring?").
				Value(&vals.Recurring),
		).Title("New expense"),
		huh.NewGroup(
			huh.NewSelect[model.RecurringInterval]().
				Title("Repeats").
				Options(
					huh.NewOption("Weekly", model.IntervalWeekly),
					huh.NewOption("Monthly", model.IntervalMonthly),
					huh.NewOption("Yearly", model.IntervalYearly),
				).
				Value(&vals.Interval),
		).WithHideFunc(func() bool { return !vals.Recurring }),
		huh.NewGroup(
			huh.NewInput().
				Title("Tags").
				Placeholder("comma,separated").
				Value(&vals.Tags),
			huh.NewText().
				Title("Notes").
				Value(&vals.Notes),
		),
	).WithShowHelp(true)
}

// expense converts submitted form values. Values were validated by the form.
func (v expenseValues) expense() model.Expense {
	amount, _ := cli.ParseAmount(v.Amount)
	e := model.Expense{
		Amount:      amount,
		CategoryID:  v.CategoryID,
		Description: strings.TrimSpace(v.Description),
		Date:        strings.TrimSpace(v.Date),
		IsRecurring: v.Recurring,
		Tags:        cli.ParseTags(v.Tags),
		Notes:       strings.TrimSpace(v.Notes),
	}
	if v.Recurring {
		e.RecurringInterval = v.Interval
	}
	return e
}

func newCategoryForm(vals *categoryValues) *huh.Form {
	*vals = categoryValues{Color: defaultCustomColor}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&vals.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Monthly budget").
				Placeholder("0.00").
				Value(&vals.Amount).
				Validate(func(s string) error {
					_, err := cli.ParseAmount(s)
					return err
				}),
			huh.NewInput().
				Title("Color").
				Value(&vals.Color).
				Validate(validateColor),
		).Title("New category"),
	).WithShowHelp(true)
}

func (v categoryValues) category() model.Category {
	amount, _ := cli.ParseAmount(v.Amount)
	color := strings.TrimSpace(v.Color)
	if color == "" {
		color = defaultCustomColor
	}
	return model.Category{
		Name:   strings.TrimSpace(v.Name),
		Amount: amount,
		Color:  color,
	}
}
