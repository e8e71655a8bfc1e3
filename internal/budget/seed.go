package budget

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/model"
)

// Seed returns the budget a new user starts with.
func Seed(now time.Time) model.Budget {
	income := 3000.0
	return model.Budget{
		TotalBudget: 2000,
		Categories: []model.Category{
			{ID: "1", Name: "Housing", Amount: 1000, Color: "#FF6B6B", Icon: "home"},
			{ID: "2", Name: "Food", Amount: 400, Color: "#4ECDC4", Icon: "utensils"},
			{ID: "3", Name: "Transportation", Amount: 200, Color: "#45B7D1", Icon: "car"},
			{ID: "4", Name: "Entertainment", Amount: 200, Color: "#96CEB4", Icon: "tv"},
			{ID: "5", Name: "Utilities", Amount: 200, Color: "#FFEEAD", Icon: "zap"},
		},
		CustomCategories: []model.Category{},
		Expenses:         []model.Expense{},
		SavingsGoal:      500,
		MonthlyIncome:    &income,
		StartDate:        analytics.Today(now),
		CycleType:        model.CycleMonthly,
		Alerts:           []model.BudgetAlert{},
	}
}

// Decode reads a persisted budget. A field or list element with the wrong
// shape is dropped on its own and the rest of the document is kept. The
// returned paths name what was dropped. Decode fails only when data is not a
// JSON object.
func Decode(data []byte) (model.Budget, []string, error) {
	fields, err := objectFields(data)
	if err != nil {
		return model.Budget{}, nil, fmt.Errorf("decoding budget: %w", err)
	}

	var d decoder
	var b model.Budget
	decodeField(&d, fields, "", "totalBudget", &b.TotalBudget)
	decodeList(&d, fields, "categories", &b.Categories, decodeCategory)
	decodeList(&d, fields, "customCategories", &b.CustomCategories, decodeCategory)
	decodeList(&d, fields, "expenses", &b.Expenses, decodeExpense)
	decodeField(&d, fields, "", "savingsGoal", &b.SavingsGoal)
	decodeField(&d, fields, "", "monthlyIncome", &b.MonthlyIncome)
	decodeField(&d, fields, "", "startDate", &b.StartDate)
	decodeField(&d, fields, "", "cycleType", &b.CycleType)
	decodeField(&d, fields, "", "cycleDuration", &b.CycleDuration)
	decodeList(&d, fields, "alerts", &b.Alerts, decodeAlert)
	return Normalize(b), d.dropped, nil
}

type decoder struct {
	dropped []string
}

func objectFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, errors.New("document is null")
	}
	return fields, nil
}

// decodeField sets *dst from fields[key] when present and well formed.
func decodeField[T any](d *decoder, fields map[string]json.RawMessage, prefix, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		d.dropped = append(d.dropped, prefix+key)
		return
	}
	*dst = v
}

func decodeList[T any](d *decoder, fields map[string]json.RawMessage, key string, dst *[]T,
	one func(d *decoder, prefix string, fields map[string]json.RawMessage) T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.dropped = append(d.dropped, key)
		return
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", key, i)
		obj, err := objectFields(item)
		if err != nil {
			d.dropped = append(d.dropped, path)
			continue
		}
		out = append(out, one(d, path+".", obj))
	}
	*dst = out
}

func decodeCategory(d *decoder, prefix string, f map[string]json.RawMessage) model.Category {
	var c model.Category
	decodeField(d, f, prefix, "id", &c.ID)
	decodeField(d, f, prefix, "name", &c.Name)
	decodeField(d, f, prefix, "amount", &c.Amount)
	decodeField(d, f, prefix, "color", &c.Color)
	decodeField(d, f, prefix, "icon", &c.Icon)
	decodeField(d, f, prefix, "isCustom", &c.IsCustom)
	return c
}

func decodeExpense(d *decoder, prefix string, f map[string]json.RawMessage) model.Expense {
	var e model.Expense
	decodeField(d, f, prefix, "id", &e.ID)
	decodeField(d, f, prefix, "amount", &e.Amount)
	decodeField(d, f, prefix, "categoryId", &e.CategoryID)
	decodeField(d, f, prefix, "description", &e.Description)
	decodeField(d, f, prefix, "date", &e.Date)
	decodeField(d, f, prefix, "isRecurring", &e.IsRecurring)
	decodeField(d, f, prefix, "recurringInterval", &e.RecurringInterval)
	decodeField(d, f, prefix, "tags", &e.Tags)
	decodeField(d, f, prefix, "notes", &e.Notes)
	return e
}

func decodeAlert(d *decoder, prefix string, f map[string]json.RawMessage) model.BudgetAlert {
	var a model.BudgetAlert
	decodeField(d, f, prefix, "id", &a.ID)
	decodeField(d, f, prefix, "type", &a.Type)
	decodeField(d, f, prefix, "threshold", &a.Threshold)
	decodeField(d, f, prefix, "categoryId", &a.CategoryID)
	decodeField(d, f, prefix, "message", &a.Message)
	decodeField(d, f, prefix, "isActive", &a.IsActive)
	return a
}

// Normalize fills in collections and defaults missing from older snapshots.
func Normalize(b model.Budget) model.Budget {
	if b.Categories == nil {
		b.Categories = []model.Category{}
	}
	if b.CustomCategories == nil {
		b.CustomCategories = []model.Category{}
	}
	if b.Expenses == nil {
		b.Expenses = []model.Expense{}
	}
	if b.Alerts == nil {
		b.Alerts = []model.BudgetAlert{}
	}
	if b.CycleType == "" {
		b.CycleType = model.CycleMonthly
	}
	return b
}

// normalizeExpense applies the form rules: tags are a set, and an interval is
// only meaningful on a recurring expense.
func normalizeExpense(e model.Expense) model.Expense {
	e.Tags = dedupeTags(e.Tags)
	if !e.IsRecurring {
		e.RecurringInterval = ""
	}
	return e
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
