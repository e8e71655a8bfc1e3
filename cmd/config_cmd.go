// Package cmd implements the bplan CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/bplan/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:   %s\n", dbPath())
	fmt.Printf("    Export dir: %s\n", exportDir())
	fmt.Println()

	fmt.Println("  [Alerts]")
	fmt.Printf("    Notify: %v\n", cfg.Alerts.Notify)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:  %s\n", config.GetLogLevel(cfg))
	fmt.Printf("    Format: %s\n", cfg.Log.Format)
	fmt.Println()

	fmt.Println("  Run `bplan setup` to reconfigure.")
	return nil
}
