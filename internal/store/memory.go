package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps reports in process memory. It is used when no database
// URL is configured; contents are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*ReportRecord
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[uuid.UUID]*ReportRecord),
		now:     time.Now,
	}
}

func (s *MemoryStore) SaveReport(_ context.Context, rec *ReportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.New()
	rec.CreatedAt = s.now().UTC()
	cp := *rec
	s.reports[rec.ID] = &cp
	return nil
}

func (s *MemoryStore) GetReport(_ context.Context, id uuid.UUID) (*ReportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.reports[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) ListReports(_ context.Context, filter ReportFilter) ([]*ReportRecord, error) {
	s.mu.RLock()
	var recs []*ReportRecord
	for _, rec := range s.reports {
		if filter.Name != "" && rec.Name != filter.Name {
			continue
		}
		if filter.Source != "" && rec.Source != filter.Source {
			continue
		}
		if filter.Gated != nil && rec.Gated != *filter.Gated {
			continue
		}
		cp := *rec
		recs = append(recs, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		}
		return recs[i].ID.String() < recs[j].ID.String()
	})

	offset := max(filter.Offset, 0)
	if offset >= len(recs) {
		return nil, nil
	}
	recs = recs[offset:]
	if limit := filter.limit(); len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (s *MemoryStore) Close() error { return nil }
