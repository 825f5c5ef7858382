// journal/jsonfile.go
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/tradebook/pkg/id"
)

// JSONStore keeps the whole journal in one JSON document on disk: a
// serialized array of trades, rewritten on every mutation. This is the
// default backend; the file is small enough that a full rewrite beats
// managing a database.
type JSONStore struct {
	path string
	log  zerolog.Logger

	mu     sync.Mutex
	trades []Trade
}

// OpenJSON loads the journal at path. A missing or corrupt file starts
// an empty journal; load never fails the caller for bad content.
func OpenJSON(path string, log zerolog.Logger) (*JSONStore, error) {
	s := &JSONStore{
		path: path,
		log:  log.With().Str("store", "json").Logger(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read journal: %w", err)
		}
		return s, nil
	}

	if err := json.Unmarshal(data, &s.trades); err != nil {
		s.log.Warn().Err(err).Str("path", path).
			Msg("Journal file corrupt, starting empty")
		s.trades = nil
	}
	return s, nil
}

func (s *JSONStore) Add(t Trade) (Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	t.ID = id.New()
	t.CreatedAt = now
	t.UpdatedAt = now

	s.trades = append(s.trades, t)
	if err := s.persist(); err != nil {
		s.trades = s.trades[:len(s.trades)-1]
		return Trade{}, err
	}
	return t, nil
}

func (s *JSONStore) Update(tradeID string, upd Update) (Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.trades {
		if t.ID != tradeID {
			continue
		}
		merged := upd.apply(t, time.Now().UTC())
		s.trades[i] = merged
		if err := s.persist(); err != nil {
			s.trades[i] = t
			return Trade{}, err
		}
		return merged, nil
	}
	return Trade{}, fmt.Errorf("update %q: %w", tradeID, ErrNotFound)
}

func (s *JSONStore) Remove(tradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.trades {
		if t.ID != tradeID {
			continue
		}
		s.trades = append(s.trades[:i:i], s.trades[i+1:]...)
		if err := s.persist(); err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("remove %q: %w", tradeID, ErrNotFound)
}

func (s *JSONStore) Get(tradeID string) (Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.trades {
		if t.ID == tradeID {
			return t, nil
		}
	}
	return Trade{}, fmt.Errorf("get %q: %w", tradeID, ErrNotFound)
}

// All returns the trades in insertion order.
func (s *JSONStore) All() ([]Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Trade, len(s.trades))
	copy(out, s.trades)
	return out, nil
}

// Restore replaces the journal contents, used by snapshot restore.
func (s *JSONStore) Restore(trades []Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.trades
	s.trades = append([]Trade(nil), trades...)
	if err := s.persist(); err != nil {
		s.trades = prev
		return err
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// persist rewrites the journal document. Written to a temp file first
// so a crash mid-write never corrupts the previous journal.
func (s *JSONStore) persist() error {
	data, err := json.MarshalIndent(s.trades, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("journal dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace journal: %w", err)
	}
	return nil
}
