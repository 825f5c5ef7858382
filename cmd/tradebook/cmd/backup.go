package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var backupCmd = &cobra.Command{
	Use:   "backup [path]",
	Short: "Write a compressed snapshot of the journal",
	Long: `Write an xz-compressed JSON snapshot of every journaled trade.

The default path is tradebook-<date>.json.xz in the current directory.

Example:
  tradebook backup snapshots/before-migration.json.xz`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <path>",
	Short: "Replace the journal from a snapshot",
	Long: `Replace the journal contents with the trades in a snapshot.

The current contents are discarded; take a backup first if they matter.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	path := fmt.Sprintf("tradebook-%s.json.xz", time.Now().UTC().Format("2006-01-02"))
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	trades, err := store.All()
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	if err := journal.Backup(path, trades); err != nil {
		return fmt.Errorf("backup: %w", err)
	}

	fmt.Printf("✓ Backed up %d trades to %s\n", len(trades), path)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	trades, err := journal.ReadBackup(args[0])
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	restorer, ok := store.(journal.Restorer)
	if !ok {
		return fmt.Errorf("store %T does not support restore", store)
	}
	if err := restorer.Restore(trades); err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	fmt.Printf("✓ Restored %d trades from %s\n", len(trades), args[0])
	return nil
}
