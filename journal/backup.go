// journal/backup.go
package journal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ulikunitz/xz"
)

// Restorer is implemented by stores that can replace their full
// contents from a snapshot.
type Restorer interface {
	Restore([]Trade) error
}

// Backup writes an xz-compressed JSON snapshot of the trades to path.
func Backup(path string, trades []Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	xw, err := xz.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("xz writer: %w", err)
	}

	if err := json.NewEncoder(xw).Encode(trades); err != nil {
		xw.Close()
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := xw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finish snapshot: %w", err)
	}
	return f.Close()
}

// ReadBackup loads the trades from an xz-compressed snapshot. Unlike a
// live journal file, a corrupt snapshot is an error.
func ReadBackup(path string) ([]Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}

	var trades []Trade
	if err := json.NewDecoder(xr).Decode(&trades); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return trades, nil
}
