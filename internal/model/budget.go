// Package model defines the budget aggregate and its derived analytics types.
package model

// CycleType is the declared budget cycle. Analytics currently always use the
// calendar month regardless of this value.
type CycleType string

const (
	CycleMonthly CycleType = "monthly"
	CycleWeekly  CycleType = "weekly"
	CycleCustom  CycleType = "custom"
)

// RecurringInterval is how often a recurring expense repeats.
type RecurringInterval string

const (
	IntervalWeekly  RecurringInterval = "weekly"
	IntervalMonthly RecurringInterval = "monthly"
	IntervalYearly  RecurringInterval = "yearly"
)

// AlertType selects the evaluation rule for a BudgetAlert.
type AlertType string

const (
	AlertOverspending  AlertType = "overspending"
	AlertCategoryLimit AlertType = "categoryLimit"
	AlertSavingsGoal   AlertType = "savingsGoal"
	AlertCustom        AlertType = "custom"
)

// UnknownCategory is the label shown for expenses whose category is missing.
const UnknownCategory = "Unknown"

// Category is a labeled spending bucket with its own budget ceiling.
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon,omitempty"`
	IsCustom bool    `json:"isCustom,omitempty"`
}

// Expense is a single logged spend. Date is an ISO date string.
type Expense struct {
	ID                string            `json:"id"`
	Amount            float64           `json:"amount"`
	CategoryID        string            `json:"categoryId"`
	Description       string            `json:"description"`
	Date              string            `json:"date"`
	IsRecurring       bool              `json:"isRecurring,omitempty"`
	RecurringInterval RecurringInterval `json:"recurringInterval,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	Notes             string            `json:"notes,omitempty"`
}

// BudgetAlert is a user-defined threshold rule checked after each new expense.
// Threshold is a percentage for every built-in type.
type BudgetAlert struct {
	ID         string    `json:"id"`
	Type       AlertType `json:"type"`
	Threshold  float64   `json:"threshold"`
	CategoryID string    `json:"categoryId,omitempty"`
	Message    string    `json:"message"`
	IsActive   bool      `json:"isActive"`
}

// Budget is the root aggregate. The whole value is the unit of persistence.
type Budget struct {
	TotalBudget      float64       `json:"totalBudget"`
	Categories       []Category    `json:"categories"`
	CustomCategories []Category    `json:"customCategories"`
	Expenses         []Expense     `json:"expenses"`
	SavingsGoal      float64       `json:"savingsGoal"`
	MonthlyIncome    *float64      `json:"monthlyIncome,omitempty"`
	StartDate        string        `json:"startDate"`
	CycleType        CycleType     `json:"cycleType"`
	CycleDuration    *int          `json:"cycleDuration,omitempty"`
	Alerts           []BudgetAlert `json:"alerts"`
}

// Clone returns a deep copy. Empty collections stay non-nil so they encode
// as [] rather than null.
func (b Budget) Clone() Budget {
	out := b
	out.Categories = cloneSlice(b.Categories)
	out.CustomCategories = cloneSlice(b.CustomCategories)
	out.Alerts = cloneSlice(b.Alerts)
	out.Expenses = make([]Expense, len(b.Expenses))
	for i, e := range b.Expenses {
		out.Expenses[i] = e.Clone()
	}
	if b.MonthlyIncome != nil {
		v := *b.MonthlyIncome
		out.MonthlyIncome = &v
	}
	if b.CycleDuration != nil {
		v := *b.CycleDuration
		out.CycleDuration = &v
	}
	return out
}

// Clone returns a copy of e that shares no memory with it.
func (e Expense) Clone() Expense {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}

// AllCategories returns the default categories followed by the custom ones.
func (b Budget) AllCategories() []Category {
	all := make([]Category, 0, len(b.Categories)+len(b.CustomCategories))
	all = append(all, b.Categories...)
	return append(all, b.CustomCategories...)
}

// FindCategory looks up a category in either collection.
func (b Budget) FindCategory(id string) (Category, bool) {
	for _, c := range b.Categories {
		if c.ID == id {
			return c, true
		}
	}
	for _, c := range b.CustomCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName returns the display name for id, or UnknownCategory.
func (b Budget) CategoryName(id string) string {
	if c, ok := b.FindCategory(id); ok {
		return c.Name
	}
	return UnknownCategory
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
