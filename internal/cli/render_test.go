package cli

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := RenderTable(Table{
		Headers:  []string{"Date", "Description", "Amount"},
		TextCols: 2,
		Rows: [][]string{
			{"May 3, 2024", "Coffee", "$4.50"},
			{"---"},
			{"May 9, 2024", "Groceries", "$80.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if lines[3] != "│ May 3, 2024 │ Coffee      │  $4.50 │" {
		t.Errorf("row = %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "├") {
		t.Errorf("separator = %q", lines[4])
	}
	for _, l := range lines {
		if lipgloss.Width(l) != lipgloss.Width(lines[0]) {
			t.Errorf("ragged line %q", l)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("empty table rendered %q", got)
	}
}

func TestRenderUsageBar(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tests := []struct {
		pct    float64
		filled int
	}{
		{0, 0},
		{50, 5},
		{112.5, 10},
		{math.Inf(1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		bar := RenderUsageBar(tt.pct, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("RenderUsageBar(%v) filled %d, want %d", tt.pct, got, tt.filled)
		}
		if lipgloss.Width(bar) != 10 {
			t.Errorf("RenderUsageBar(%v) width %d", tt.pct, lipgloss.Width(bar))
		}
	}
}

func TestUsageColor(t *testing.T) {
	if UsageColor(10) != ColorGreen || UsageColor(80) != ColorYellow ||
		UsageColor(95) != ColorOrange || UsageColor(101) != ColorRed ||
		UsageColor(math.NaN()) != ColorRed {
		t.Fatal("unexpected usage color")
	}
}
