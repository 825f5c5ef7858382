package journal

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteAdd(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)

	stored, err := s.Add(tradeFixture("AAPL", StatusOpen))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	require.NoError(t, s.Close())

	// Re-open the database and verify the persisted row directly.
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		id     string
		ticker string
		entry  string
		status string
	)
	err = db.QueryRow(`SELECT id, ticker, entry_price, status FROM trades LIMIT 1`).
		Scan(&id, &ticker, &entry, &status)
	require.NoError(t, err)

	assert.Equal(t, stored.ID, id)
	assert.Equal(t, "AAPL", ticker)
	assert.Equal(t, "150.50", entry)
	assert.Equal(t, "open", status)
}

func TestSQLitePersistenceRoundTrip(t *testing.T) {
	t.Parallel()

	s, path := newTestSQLite(t)

	stored, err := s.Add(tradeFixture("AAPL", StatusOpen))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(stored.ID)
	require.NoError(t, err)

	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, stored.Ticker, got.Ticker)
	assert.True(t, got.EntryPrice.Equal(stored.EntryPrice))
	assert.True(t, got.InitialSL.Equal(stored.InitialSL))
	assert.True(t, got.CurrentSL.Equal(stored.CurrentSL))
	assert.Equal(t, stored.Status, got.Status)
	assert.True(t, got.CreatedAt.Equal(stored.CreatedAt))
}

func TestSQLiteUpdate(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	stored, err := s.Add(tradeFixture("AAPL", StatusOpen))
	require.NoError(t, err)

	newSL := decimal.RequireFromString("149.25")
	updated, err := s.Update(stored.ID, Update{CurrentSL: &newSL})
	require.NoError(t, err)

	assert.Equal(t, stored.ID, updated.ID)
	assert.True(t, updated.CurrentSL.Equal(newSL))
	assert.True(t, updated.InitialSL.Equal(stored.InitialSL), "initial stop untouched")

	got, err := s.Get(stored.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentSL.Equal(newSL))
}

// Two concurrent partial edits of one trade must both survive: each
// UPDATE touches only its submitted columns, never a stale full row.
func TestSQLiteUpdateConcurrentFields(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	stored, err := s.Add(tradeFixture("AAPL", StatusOpen))
	require.NoError(t, err)

	newSL := decimal.RequireFromString("148.00")
	closed := StatusClosed

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.Update(stored.ID, Update{CurrentSL: &newSL})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := s.Update(stored.ID, Update{Status: &closed})
		assert.NoError(t, err)
	}()
	wg.Wait()

	got, err := s.Get(stored.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentSL.Equal(newSL), "stop-loss move lost")
	assert.Equal(t, StatusClosed, got.Status, "status change lost")
	assert.True(t, got.InitialSL.Equal(stored.InitialSL))
}

func TestSQLiteUpdateNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)
	_, err := s.Update("missing", Update{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRemove(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	stored, err := s.Add(tradeFixture("AAPL", StatusOpen))
	require.NoError(t, err)

	require.NoError(t, s.Remove(stored.ID))

	all, err := s.All()
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, s.Remove(stored.ID), ErrNotFound)
}

func TestSQLiteAllInsertionOrder(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	for _, ticker := range []string{"AAPL", "MSFT", "NVDA"} {
		_, err := s.Add(tradeFixture(ticker, StatusOpen))
		require.NoError(t, err)
	}

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "AAPL", all[0].Ticker)
	assert.Equal(t, "MSFT", all[1].Ticker)
	assert.Equal(t, "NVDA", all[2].Ticker)
}

func TestSQLiteRestore(t *testing.T) {
	t.Parallel()

	s, _ := newTestSQLite(t)

	_, err := s.Add(tradeFixture("AAPL", StatusOpen))
	require.NoError(t, err)

	snap := tradeFixture("MSFT", StatusClosed)
	snap.ID = "SNAP1"
	require.NoError(t, s.Restore([]Trade{snap}))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "SNAP1", all[0].ID)
}
