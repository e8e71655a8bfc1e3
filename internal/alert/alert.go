// Package alert decides which budget alerts fire after a new expense and
// hands their messages to a notifier.
package alert

import (
	"github.com/rs/zerolog"
	"github.com/theirongolddev/bplan/internal/model"
)

// Title is the heading used for every alert notification.
const Title = "Budget Alert"

// Notifier delivers a one-way message to the user.
type Notifier interface {
	Notify(title, body string) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(title, body string) error

// Notify calls f.
func (f NotifierFunc) Notify(title, body string) error { return f(title, body) }

// Evaluate returns the active alerts of b that fire for newExpense, in list
// order. a must be computed from b itself, after newExpense was applied.
//
// Custom alerts and alerts of unknown type never fire.
func Evaluate(b model.Budget, a model.BudgetAnalytics, newExpense model.Expense) []model.BudgetAlert {
	var fired []model.BudgetAlert
	for _, al := range b.Alerts {
		if !al.IsActive {
			continue
		}
		if fires(al, b, a, newExpense) {
			fired = append(fired, al)
		}
	}
	return fired
}

func fires(al model.BudgetAlert, b model.Budget, a model.BudgetAnalytics, e model.Expense) bool {
	switch al.Type {
	case model.AlertOverspending:
		return a.TotalSpent > b.TotalBudget*(al.Threshold/100)
	case model.AlertCategoryLimit:
		if al.CategoryID != e.CategoryID {
			return false
		}
		ca, ok := a.Category(al.CategoryID)
		return ok && ca.Percentage > al.Threshold
	case model.AlertSavingsGoal:
		return a.SavingsProgress < al.Threshold
	default:
		return false
	}
}

// Deliver sends each fired alert's message to n. A nil notifier drops them
// silently. Delivery errors are logged and never returned.
func Deliver(n Notifier, fired []model.BudgetAlert, logger zerolog.Logger) {
	for _, al := range fired {
		logger.Info().
			Str("alert", al.ID).
			Str("type", string(al.Type)).
			Float64("threshold", al.Threshold).
			Msg("alert fired")
		if n == nil {
			continue
		}
		if err := n.Notify(Title, al.Message); err != nil {
			logger.Warn().Err(err).Str("alert", al.ID).Msg("notification not delivered")
		}
	}
}
