package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "A trade journal with stop-loss tracking",
	Long: `Tradebook keeps a journal of your trades: ticker, entry price,
initial and current stop-loss, and open/closed status.

It provides tools for:
  - Logging, editing and deleting trades from the command line
  - Filtering the journal by trade status
  - Serving a JSON API for the browser UI
  - Exporting the journal to CSV or Org-mode review notes
  - Compressed journal backups and restore`,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is env/TRADEBOOK_CONFIG)")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})
}

// openStore opens the journal backend named by the config.
func openStore(cfg *config.Config, log zerolog.Logger) (journal.Store, error) {
	switch cfg.Store.Type {
	case "sqlite":
		return journal.OpenSQLite(cfg.Store.Path)
	default:
		return journal.OpenJSON(cfg.Store.Path, log)
	}
}
