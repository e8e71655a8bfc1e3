package export

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/bplan/internal/model"
)

func sampleBudget() model.Budget {
	return model.Budget{
		TotalBudget:      100,
		Categories:       []model.Category{{ID: "1", Name: "Housing", Amount: 50, Color: "#FF6B6B"}},
		CustomCategories: []model.Category{},
		Expenses:         []model.Expense{},
		SavingsGoal:      0,
		StartDate:        "2024-01-01",
		CycleType:        model.CycleMonthly,
		Alerts:           []model.BudgetAlert{},
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "budget-export-2024-03-09.json", FileName(now))
}

func TestEncode(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, time.March, 9, 1, 2, 3, 4_000_000, loc)
	a := model.BudgetAnalytics{
		TotalSpent:       0,
		RemainingBudget:  100,
		SavingsProgress:  math.Inf(1),
		ProjectedSavings: 100,
	}

	data, err := NewBundle(sampleBudget(), a, now).Encode()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "{\n  \"budget\": {"), string(data))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.JSONEq(t, `"2024-03-08T23:02:03.004Z"`, string(decoded["exportDate"]))

	var an map[string]any
	require.NoError(t, json.Unmarshal(decoded["analytics"], &an))
	assert.Nil(t, an["savingsProgress"])
	assert.Equal(t, []any{}, an["monthlyTrend"])
	assert.Equal(t, []any{}, an["categoryBreakdown"])
}

func TestDirDownloader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	d := DirDownloader{Dir: dir}

	path, err := d.Download("budget-export-2024-03-09.json", []byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "budget-export-2024-03-09.json"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}
