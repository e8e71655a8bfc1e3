package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/bplan/internal/alert"
	"github.com/theirongolddev/bplan/internal/budget"
	"github.com/theirongolddev/bplan/internal/config"
	"github.com/theirongolddev/bplan/internal/export"
	"github.com/theirongolddev/bplan/internal/logging"
	"github.com/theirongolddev/bplan/internal/notify"
	"github.com/theirongolddev/bplan/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDB        string
	flagQuiet     bool
	flagConfigDir string
)

// Loaded once per invocation by initApp.
var (
	appConfig config.Config
	logger    zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "bplan",
	Short:             "Personal budget planner",
	Long:              "Track spending against a monthly budget: categories, expenses, alerts and savings.",
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Budget database path (default $XDG_DATA_HOME/bplan/bplan.db)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Config directory (default $XDG_CONFIG_HOME/bplan)")
}

// initApp loads .env, the config file and the logger before any command runs.
func initApp(_ *cobra.Command, _ []string) error {
	config.LoadEnv()
	if flagConfigDir != "" {
		if err := os.Setenv(config.EnvConfigDir, flagConfigDir); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	level := config.GetLogLevel(cfg)
	if flagQuiet {
		level = "error"
	}
	logger = logging.Setup(level, cfg.Log.Format, os.Stderr)
	return nil
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	if p := config.GetDBPath(appConfig); p != "" {
		return p
	}
	return store.DefaultPath()
}

func exportDir() string {
	if flagExportDir != "" {
		return flagExportDir
	}
	if d := config.GetExportDir(appConfig); d != "" {
		return d
	}
	return "."
}

// openStore opens the budget database and the store on top of it. When n is
// nil and notifications are enabled, fired alerts print to stderr. The
// returned func closes the database.
func openStore(n alert.Notifier) (*budget.Store, func(), error) {
	path := dbPath()
	db, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening budget database: %w", err)
	}
	logger.Debug().Str("path", path).Msg("budget database opened")

	if n == nil && appConfig.Alerts.Notify {
		n = notify.Terminal{Out: os.Stderr}
	}

	s := budget.New(budget.Config{
		Persistence: db,
		Notifier:    n,
		Downloader:  export.DirDownloader{Dir: exportDir()},
		Logger:      logger,
	})
	return s, func() { _ = db.Close() }, nil
}
