package components

import (
	"strings"

	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Expenses", Key: 'e', KeyPos: 0},
	{Name: "Categories", Key: 'c', KeyPos: 0},
	{Name: "Alerts", Key: 'a', KeyPos: 0},
}

// TabVisualWidth is the rendered width of tab, which is the same whether or
// not it is active.
func TabVisualWidth(tab Tab, _ bool) int {
	return lipgloss.Width(tab.Name) + 2
}

// RenderTabBar renders the tab bar on one line, tabs separated by "│".
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true).
		Underline(true)

	sepStyle := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Surface)

	var parts []string
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		before := tab.Name[:tab.KeyPos]
		key := string(tab.Name[tab.KeyPos])
		after := tab.Name[tab.KeyPos+1:]
		parts = append(parts, inactiveStyle.Render(" "+before)+
			keyStyle.Render(key)+
			inactiveStyle.Render(after+" "))
	}

	row := strings.Join(parts, sepStyle.Render("│"))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
