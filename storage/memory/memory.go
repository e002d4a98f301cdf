package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sig-0/usdreport/storage/types"
)

// Storage is an in-memory history store, used for tests and
// throwaway serve runs
type Storage struct {
	rows []types.HistoryRow

	mu sync.RWMutex
}

func NewStorage() *Storage {
	return &Storage{}
}

func (s *Storage) SaveRate(_ context.Context, row *types.HistoryRow) error {
	elem := *row
	elem.Date = elem.Date.UTC()

	s.mu.Lock()
	s.rows = append(s.rows, elem)
	s.mu.Unlock()

	return nil
}

func (s *Storage) History(_ context.Context, country types.Country) ([]types.HistoryRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.HistoryRow, 0, len(s.rows))

	for _, row := range s.rows {
		if row.Country == country {
			out = append(out, row)
		}
	}

	return out, nil
}

func (s *Storage) Countries(_ context.Context) ([]types.Country, error) {
	s.mu.RLock()

	seen := make(map[types.Country]struct{})

	for _, row := range s.rows {
		seen[row.Country] = struct{}{}
	}

	s.mu.RUnlock()

	out := make([]types.Country, 0, len(seen))

	for country := range seen {
		out = append(out, country)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})

	return out, nil
}
