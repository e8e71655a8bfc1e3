package cmd

import (
	"fmt"

	"github.com/theirongolddev/bplan/internal/config"
	"github.com/theirongolddev/bplan/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to bplan!").
				Description("A few settings. Run `bplan setup` anytime to change them."),
			huh.NewInput().
				Title("Database path").
				Description("Leave blank for " + dbPathHint()).
				Value(&cfg.General.DBPath),
			huh.NewInput().
				Title("Export directory").
				Description("Leave blank to export into the current directory").
				Value(&cfg.General.ExportDir),
			huh.NewConfirm().
				Title("Print budget alerts when they fire?").
				Value(&cfg.Alerts.Notify),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println()
	return nil
}

func dbPathHint() string {
	if flagDB != "" {
		return flagDB
	}
	return "the default data directory"
}
