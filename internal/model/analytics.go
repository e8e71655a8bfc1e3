package model

import (
	"encoding/json"
	"math"
)

// Trend is the direction of a category's spending over time.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// BudgetAnalytics is derived from a Budget on demand and never persisted.
// Ratios are not guarded: a zero savings goal or category amount yields
// ±Inf or NaN, and callers must tolerate that.
type BudgetAnalytics struct {
	TotalSpent        float64             `json:"totalSpent"`
	RemainingBudget   float64             `json:"remainingBudget"`
	SavingsProgress   float64             `json:"savingsProgress"`
	CategoryBreakdown []CategoryAnalytics `json:"categoryBreakdown"`
	MonthlyTrend      []MonthlyTrend      `json:"monthlyTrend"`
	ProjectedSavings  float64             `json:"projectedSavings"`
}

// CategoryAnalytics holds current-cycle spending for one category.
type CategoryAnalytics struct {
	CategoryID string  `json:"categoryId"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"`
	Trend      Trend   `json:"trend"`
}

// MonthlyTrend is one month of historical spending.
type MonthlyTrend struct {
	Month           string             `json:"month"`
	TotalSpent      float64            `json:"totalSpent"`
	CategoriesSpent map[string]float64 `json:"categoriesSpent"`
}

// Category returns the breakdown entry for id.
func (a BudgetAnalytics) Category(id string) (CategoryAnalytics, bool) {
	for _, ca := range a.CategoryBreakdown {
		if ca.CategoryID == id {
			return ca, true
		}
	}
	return CategoryAnalytics{}, false
}

// MarshalJSON writes non-finite numbers as null; encoding/json rejects them.
func (a BudgetAnalytics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalSpent        *float64            `json:"totalSpent"`
		RemainingBudget   *float64            `json:"remainingBudget"`
		SavingsProgress   *float64            `json:"savingsProgress"`
		CategoryBreakdown []CategoryAnalytics `json:"categoryBreakdown"`
		MonthlyTrend      []MonthlyTrend      `json:"monthlyTrend"`
		ProjectedSavings  *float64            `json:"projectedSavings"`
	}{
		TotalSpent:        finite(a.TotalSpent),
		RemainingBudget:   finite(a.RemainingBudget),
		SavingsProgress:   finite(a.SavingsProgress),
		CategoryBreakdown: nonNil(a.CategoryBreakdown),
		MonthlyTrend:      nonNil(a.MonthlyTrend),
		ProjectedSavings:  finite(a.ProjectedSavings),
	})
}

// MarshalJSON writes non-finite numbers as null.
func (c CategoryAnalytics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CategoryID string   `json:"categoryId"`
		Spent      *float64 `json:"spent"`
		Budget     *float64 `json:"budget"`
		Percentage *float64 `json:"percentage"`
		Trend      Trend    `json:"trend"`
	}{
		CategoryID: c.CategoryID,
		Spent:      finite(c.Spent),
		Budget:     finite(c.Budget),
		Percentage: finite(c.Percentage),
		Trend:      c.Trend,
	})
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
