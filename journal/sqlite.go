// journal/sqlite.go
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradebook/pkg/id"
)

// tradesColumns avoids SELECT *; order must match scanTrade.
const tradesColumns = `id, ticker, entry_price, initial_sl, current_sl, status, created_at, updated_at`

// SQLiteStore keeps the journal in a SQLite database. Prices are stored
// as TEXT so decimals round-trip exactly.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer at a time; a single pooled connection
	// serializes writes instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Add(t Trade) (Trade, error) {
	now := time.Now().UTC()
	t.ID = id.New()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.Exec(`
		INSERT INTO trades
		(id, ticker, entry_price, initial_sl, current_sl, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Ticker, t.EntryPrice.String(), t.InitialSL.String(),
		t.CurrentSL.String(), string(t.Status), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return Trade{}, fmt.Errorf("insert trade: %w", err)
	}
	return t, nil
}

// Update writes only the submitted fields in a single UPDATE, so two
// concurrent partial edits of the same trade never clobber each other
// with stale copies of the unsubmitted columns.
func (s *SQLiteStore) Update(tradeID string, upd Update) (Trade, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if upd.Ticker != nil {
		set = append(set, "ticker = ?")
		args = append(args, *upd.Ticker)
	}
	if upd.EntryPrice != nil {
		set = append(set, "entry_price = ?")
		args = append(args, upd.EntryPrice.String())
	}
	if upd.InitialSL != nil {
		set = append(set, "initial_sl = ?")
		args = append(args, upd.InitialSL.String())
	}
	if upd.CurrentSL != nil {
		set = append(set, "current_sl = ?")
		args = append(args, upd.CurrentSL.String())
	}
	if upd.Status != nil {
		set = append(set, "status = ?")
		args = append(args, string(*upd.Status))
	}
	args = append(args, tradeID)

	res, err := s.db.Exec(`UPDATE trades SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return Trade{}, fmt.Errorf("update trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Trade{}, err
	}
	if n == 0 {
		return Trade{}, fmt.Errorf("update %q: %w", tradeID, ErrNotFound)
	}

	return s.Get(tradeID)
}

func (s *SQLiteStore) Remove(tradeID string) error {
	res, err := s.db.Exec(`DELETE FROM trades WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("remove %q: %w", tradeID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Get(tradeID string) (Trade, error) {
	row := s.db.QueryRow(`
		SELECT `+tradesColumns+`
		FROM trades
		WHERE id = ?`, tradeID)

	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Trade{}, fmt.Errorf("get %q: %w", tradeID, ErrNotFound)
	}
	if err != nil {
		return Trade{}, err
	}
	return t, nil
}

// All returns trades ordered by id. Ids are ULIDs, so id order is
// insertion order.
func (s *SQLiteStore) All() ([]Trade, error) {
	rows, err := s.db.Query(`
		SELECT ` + tradesColumns + `
		FROM trades
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// Restore replaces the journal contents, used by snapshot restore.
func (s *SQLiteStore) Restore(trades []Trade) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		return fmt.Errorf("clear trades: %w", err)
	}
	for _, t := range trades {
		_, err := tx.Exec(`
			INSERT INTO trades
			(id, ticker, entry_price, initial_sl, current_sl, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Ticker, t.EntryPrice.String(), t.InitialSL.String(),
			t.CurrentSL.String(), string(t.Status), t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("restore trade %q: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (Trade, error) {
	var (
		t      Trade
		entry  string
		isl    string
		csl    string
		status string
	)
	err := row.Scan(&t.ID, &t.Ticker, &entry, &isl, &csl, &status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Trade{}, err
	}

	if t.EntryPrice, err = decimal.NewFromString(entry); err != nil {
		return Trade{}, fmt.Errorf("trade %s entry_price: %w", t.ID, err)
	}
	if t.InitialSL, err = decimal.NewFromString(isl); err != nil {
		return Trade{}, fmt.Errorf("trade %s initial_sl: %w", t.ID, err)
	}
	if t.CurrentSL, err = decimal.NewFromString(csl); err != nil {
		return Trade{}, fmt.Errorf("trade %s current_sl: %w", t.ID, err)
	}
	t.Status = Status(status)
	return t, nil
}

func collectTrades(rows *sql.Rows) ([]Trade, error) {
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
