package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fight-ledger/internal/domain/fighter"
	"github.com/riskibarqy/fight-ledger/internal/domain/record"
)

// RecordStore keeps one row per collection and identity. A second write to
// the same identity replaces the first, except fighters, which merge so a
// blank optional field keeps the stored value.
type RecordStore struct {
	mu     sync.RWMutex
	rows   map[record.Collection]map[string]any
	writes int
}

var _ record.Upserter = (*RecordStore)(nil)

func NewRecordStore() *RecordStore {
	return &RecordStore{rows: make(map[record.Collection]map[string]any, len(record.Collections))}
}

func (s *RecordStore) Upsert(ctx context.Context, collection record.Collection, rec any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := record.Identity(collection, rec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.rows[collection]
	if !ok {
		rows = make(map[string]any)
		s.rows[collection] = rows
	}
	if next, ok := rec.(fighter.Fighter); ok {
		if prev, found := rows[key].(fighter.Fighter); found {
			rec = prev.Merge(next)
		}
	}
	rows[key] = rec
	s.writes++
	return nil
}

func (s *RecordStore) Get(collection record.Collection, key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.rows[collection][key]
	return rec, ok
}

func (s *RecordStore) Count(collection record.Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rows[collection])
}

// Keys returns the identities stored in collection, sorted.
func (s *RecordStore) Keys(collection record.Collection) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.rows[collection]))
	for key := range s.rows[collection] {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Writes counts accepted upserts, including ones that replaced a row.
func (s *RecordStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.writes
}
