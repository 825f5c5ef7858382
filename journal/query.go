// journal/query.go
package journal

import (
	"database/sql"
	"errors"
	"time"
)

// ListByStatus returns trades with the given status, StatusAll for
// everything, ordered by id (insertion order).
func (s *SQLiteStore) ListByStatus(status Status) ([]Trade, error) {
	if status == StatusAll || status == "" {
		return s.All()
	}

	rows, err := s.db.Query(`
		SELECT `+tradesColumns+`
		FROM trades
		WHERE status = ?
		ORDER BY id ASC`, string(status))
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// ListCreatedBetween returns trades created within [start, end).
func (s *SQLiteStore) ListCreatedBetween(start, end time.Time) ([]Trade, error) {
	rows, err := s.db.Query(`
		SELECT `+tradesColumns+`
		FROM trades
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return collectTrades(rows)
}

// Exists reports whether a trade with the given id is journaled.
func (s *SQLiteStore) Exists(tradeID string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM trades WHERE id = ? LIMIT 1`, tradeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
