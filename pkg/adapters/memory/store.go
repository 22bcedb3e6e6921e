package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/vigil/pkg/domain"
)

// Store implements ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Report
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Report),
	}
}

// Save persists the report in memory.
func (s *Store) Save(ctx context.Context, reportID string, report *domain.Report) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := report.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[reportID] = copied
	return nil
}

// Load retrieves the report from memory.
func (s *Store) Load(ctx context.Context, reportID string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.data[reportID]
	if !ok {
		return nil, domain.ErrReportNotFound
	}

	ret := report.Clone()
	return &ret, nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, reportID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, reportID)
	return nil
}

// List returns stored report IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
