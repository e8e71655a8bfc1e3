// Package notify delivers alert messages to the terminal.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/bplan/internal/cli"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.ColorRed)
	bodyStyle  = lipgloss.NewStyle().Foreground(cli.ColorText)
)

// Terminal prints each notification as one styled line on Out.
type Terminal struct {
	Out io.Writer
}

// Notify writes "title: body" to t.Out.
func (t Terminal) Notify(title, body string) error {
	if t.Out == nil {
		return fmt.Errorf("notify: no output")
	}
	_, err := fmt.Fprintf(t.Out, "%s %s\n", titleStyle.Render(title+":"), bodyStyle.Render(body))
	return err
}

// Inbox collects notifications for later display, newest last.
// It is safe for concurrent use.
type Inbox struct {
	mu    sync.Mutex
	items []string
}

// Notify records body.
func (b *Inbox) Notify(title, body string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, body)
	return nil
}

// Drain returns and clears the pending messages.
func (b *Inbox) Drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}
