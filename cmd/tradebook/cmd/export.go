package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal",
	Long: `Export journal records for use outside tradebook.

Subcommands:
  csv  - Write the journal to a CSV file
  org  - Print trades as Org-mode review blocks

Examples:
  tradebook export csv --output trades.csv
  tradebook export org --status closed`,
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write the journal to a CSV file",
	RunE:  runExportCSV,
}

var exportOrgCmd = &cobra.Command{
	Use:   "org",
	Short: "Print trades as Org-mode review blocks",
	RunE:  runExportOrg,
}

var (
	exportOutput string
	exportStatus string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportOrgCmd)

	exportCSVCmd.Flags().StringVarP(&exportOutput, "output", "o", "trades.csv", "output CSV path")
	exportCmd.PersistentFlags().StringVarP(&exportStatus, "status", "s", "all", "filter by status: open, closed or all")
}

func exportTrades() ([]journal.Trade, error) {
	status := journal.Status(exportStatus)
	if status != journal.StatusAll {
		if _, err := journal.ParseStatus(exportStatus); err != nil {
			return nil, err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	trades, err := store.All()
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return journal.Filter(trades, status), nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	trades, err := exportTrades()
	if err != nil {
		return err
	}

	if err := journal.ExportCSV(exportOutput, trades); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	fmt.Printf("✓ Exported %d trades to %s\n", len(trades), exportOutput)
	return nil
}

func runExportOrg(cmd *cobra.Command, args []string) error {
	trades, err := exportTrades()
	if err != nil {
		return err
	}

	fmt.Println(journal.FormatTradesOrg(trades))
	return nil
}
