// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"
)

var csvHeader = []string{"id", "ticker", "entry_price", "initial_sl", "current_sl", "status", "created_at", "updated_at"}

// WriteCSV renders the trades as CSV with a header row.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Ticker,
			t.EntryPrice.String(),
			t.InitialSL.String(),
			t.CurrentSL.String(),
			string(t.Status),
			t.CreatedAt.UTC().Format(time.RFC3339),
			t.UpdatedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the trades to a CSV file at path.
func ExportCSV(path string, trades []Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	if err := WriteCSV(f, trades); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
