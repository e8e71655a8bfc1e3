package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/bplan/internal/model"
)

var (
	errNotFound  = errors.New("not found")
	errAmbiguous = errors.New("ambiguous")
)

// resolveCategory finds a category by exact id, then by case-insensitive name.
func resolveCategory(b model.Budget, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	if c, ok := b.FindCategory(ref); ok {
		return c, nil
	}

	var matches []model.Category
	for _, c := range b.AllCategories() {
		if strings.EqualFold(c.Name, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return model.Category{}, fmt.Errorf("category %q: %w", ref, errNotFound)
	case 1:
		return matches[0], nil
	}
	return model.Category{}, fmt.Errorf("category %q matches %d categories, use the id: %w", ref, len(matches), errAmbiguous)
}

// resolveExpense finds an expense by id or unique id prefix.
func resolveExpense(b model.Budget, ref string) (model.Expense, error) {
	return byPrefix(b.Expenses, func(e model.Expense) string { return e.ID }, "expense", ref)
}

// resolveAlert finds an alert by id or unique id prefix.
func resolveAlert(b model.Budget, ref string) (model.BudgetAlert, error) {
	return byPrefix(b.Alerts, func(a model.BudgetAlert) string { return a.ID }, "alert", ref)
}

func byPrefix[T any](items []T, id func(T) string, kind, ref string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, fmt.Errorf("%s id is required", kind)
	}

	var matches []T
	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
		if strings.HasPrefix(id(it), ref) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, ref, errNotFound)
	case 1:
		return matches[0], nil
	}
	return zero, fmt.Errorf("%s %q matches %d ids: %w", kind, ref, len(matches), errAmbiguous)
}

// shortID is the id prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
