package cmd

import (
	"fmt"

	"github.com/theirongolddev/bplan/internal/alert"
	"github.com/theirongolddev/bplan/internal/notify"
	"github.com/theirongolddev/bplan/internal/tui"
	"github.com/theirongolddev/bplan/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appConfig.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Fired alerts go to the status bar instead of the terminal.
	var inbox *notify.Inbox
	var n alert.Notifier
	if appConfig.Alerts.Notify {
		inbox = &notify.Inbox{}
		n = inbox
	}
	s, closeDB, err := openStore(n)
	if err != nil {
		return err
	}
	defer closeDB()

	p := tea.NewProgram(tui.NewApp(s, inbox), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
