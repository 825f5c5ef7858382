package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Log, list, edit and delete journal entries",
	Long: `Manage trade journal records.

Subcommands:
  add   - Journal a new trade
  list  - List trades, optionally filtered by status
  edit  - Edit fields of an existing trade
  rm    - Delete a trade

Examples:
  tradebook trade add --ticker AAPL --entry 150.50 --sl 145.00
  tradebook trade list --status open
  tradebook trade edit <trade-id> --current-sl 148.00
  tradebook trade rm <trade-id>`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Journal a new trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled trades",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeEditCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Edit fields of an existing trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeEdit,
}

var tradeRmCmd = &cobra.Command{
	Use:   "rm <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeRm,
}

var (
	tradeForm  journal.TradeForm
	listStatus string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeEditCmd)
	tradeCmd.AddCommand(tradeRmCmd)

	for _, c := range []*cobra.Command{tradeAddCmd, tradeEditCmd} {
		c.Flags().StringVarP(&tradeForm.Ticker, "ticker", "t", "", "ticker symbol, e.g. AAPL")
		c.Flags().StringVarP(&tradeForm.EntryPrice, "entry", "e", "", "entry price")
		c.Flags().StringVar(&tradeForm.InitialSL, "sl", "", "initial stop-loss")
		c.Flags().StringVar(&tradeForm.CurrentSL, "current-sl", "", "current stop-loss (defaults to --sl on add)")
		c.Flags().StringVar(&tradeForm.Status, "status", "", "trade status: open or closed")
	}

	tradeListCmd.Flags().StringVarP(&listStatus, "status", "s", "all", "filter by status: open, closed or all")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	trade, err := tradeForm.Trade()
	if err != nil {
		return err
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

	stored, err := store.Add(trade)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	fmt.Printf("✓ Journaled %s @ %s (id %s)\n", stored.Ticker, stored.EntryPrice, stored.ID)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	status := journal.Status(listStatus)
	if status != journal.StatusAll {
		if _, err := journal.ParseStatus(listStatus); err != nil {
			return err
		}
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
	trades = journal.Filter(trades, status)

	if len(trades) == 0 {
		fmt.Println("No trades journaled.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTICKER\tENTRY\tINIT SL\tCURR SL\tSTATUS\tCREATED")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Ticker, t.EntryPrice, t.InitialSL, t.CurrentSL,
			t.Status, t.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func runTradeEdit(cmd *cobra.Command, args []string) error {
	upd, err := tradeForm.Update()
	if err != nil {
		return err
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

	trade, err := store.Update(args[0], upd)
	if err != nil {
		return fmt.Errorf("edit trade: %w", err)
	}

	fmt.Printf("✓ Updated %s (%s)\n", trade.Ticker, trade.ID)
	return nil
}

func runTradeRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := openStore(cfg, newLogger(cfg))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.Remove(args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}

	fmt.Printf("✓ Deleted trade %s\n", args[0])
	return nil
}
