package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/bplan/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("Test setup error: short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Errorf("Joined height should match tallest card: got %d, want %d", len(lines), tallLines)
	}

	for i, line := range lines {
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Errorf("Line %d has no ANSI codes - padding would show unstyled", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("Line %d width %d, want %d", i, w, want)
		}
	}
}

func TestMetricCardRowSumsToWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Total Spent", Value: "$450.00"},
		{Label: "Remaining", Value: "-$50.00", Color: theme.Active.Red},
		{Label: "Savings", Value: "∞", Note: "goal $0.00"},
	}, 91)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 91 {
			t.Errorf("line %d width %d, want 91", i, w)
		}
	}
}

func TestLayoutRow(t *testing.T) {
	got := LayoutRow(10, 3)
	if len(got) != 3 || got[0] != 4 || got[1] != 3 || got[2] != 3 {
		t.Fatalf("LayoutRow(10, 3) = %v", got)
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow with n=0 should be nil")
	}
}
