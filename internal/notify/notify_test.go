package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/bplan/internal/cli"
)

func TestTerminalNotify(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	var buf bytes.Buffer
	if err := (Terminal{Out: &buf}).Notify("Budget Alert", "Food over budget"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "Budget Alert: Food over budget" {
		t.Fatalf("got %q", got)
	}
}

func TestTerminalWithoutOutput(t *testing.T) {
	if err := (Terminal{}).Notify("Budget Alert", "x"); err == nil {
		t.Fatal("expected error without output")
	}
}

func TestInboxDrain(t *testing.T) {
	var in Inbox
	_ = in.Notify("Budget Alert", "one")
	_ = in.Notify("Budget Alert", "two")

	got := in.Drain()
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("Drain = %v", got)
	}
	if len(in.Drain()) != 0 {
		t.Fatal("second Drain not empty")
	}
}

func TestStylesUseCLIPalette(t *testing.T) {
	if got := titleStyle.GetForeground(); got != cli.ColorRed {
		t.Fatalf("title color = %v, want %v", got, cli.ColorRed)
	}
	if got := bodyStyle.GetForeground(); got != cli.ColorText {
		t.Fatalf("body color = %v, want %v", got, cli.ColorText)
	}
}
