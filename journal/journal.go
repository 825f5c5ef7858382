// journal/journal.go
package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status of a journaled trade.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"

	// StatusAll is only valid as a filter value, never stored on a trade.
	StatusAll Status = "all"
)

// ParseStatus validates a status string as stored on a trade.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q (want open or closed)", s)
}

// Trade is one logged position with entry and stop-loss prices.
type Trade struct {
	ID         string          `json:"id"`
	Ticker     string          `json:"ticker"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	InitialSL  decimal.Decimal `json:"initial_sl"`
	CurrentSL  decimal.Decimal `json:"current_sl"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Update is a partial mutation of an existing trade. Nil fields are
// left untouched; ID and CreatedAt can never change.
type Update struct {
	Ticker     *string
	EntryPrice *decimal.Decimal
	InitialSL  *decimal.Decimal
	CurrentSL  *decimal.Decimal
	Status     *Status
}

// apply merges the update into t and refreshes UpdatedAt.
func (u Update) apply(t Trade, now time.Time) Trade {
	if u.Ticker != nil {
		t.Ticker = *u.Ticker
	}
	if u.EntryPrice != nil {
		t.EntryPrice = *u.EntryPrice
	}
	if u.InitialSL != nil {
		t.InitialSL = *u.InitialSL
	}
	if u.CurrentSL != nil {
		t.CurrentSL = *u.CurrentSL
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	t.UpdatedAt = now
	return t
}

// ErrNotFound is returned by store operations referencing an unknown id.
var ErrNotFound = errors.New("trade not found")

// Store owns the journaled trades. The store assigns ids, persists on
// every mutation and is the only component that mutates records.
type Store interface {
	Add(Trade) (Trade, error)
	Update(id string, upd Update) (Trade, error)
	Remove(id string) error
	Get(id string) (Trade, error)
	All() ([]Trade, error)
	Close() error
}

// Filter narrows trades by status. StatusAll (or empty) returns the
// input unchanged.
func Filter(trades []Trade, status Status) []Trade {
	if status == StatusAll || status == "" {
		return trades
	}
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}
