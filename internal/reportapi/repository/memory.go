package repository

import (
	"context"
	"sort"
	"sync"

	"report-portal/internal/report/domain"
)

// MemoryRepository is an in-process Repository used when no database is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[int64]domain.SalesReport
}

// NewMemoryRepository returns a repository holding seed.
func NewMemoryRepository(seed ...domain.SalesReport) *MemoryRepository {
	r := &MemoryRepository{records: make(map[int64]domain.SalesReport, len(seed))}
	for _, rec := range seed {
		r.records[rec.ID] = rec
	}
	return r
}

func (r *MemoryRepository) ListReports(ctx context.Context) ([]domain.SalesReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.SalesReport, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) InsertReports(ctx context.Context, records []domain.SalesReport) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range records {
		if _, ok := r.records[rec.ID]; ok {
			continue
		}
		r.records[rec.ID] = rec
		n++
	}
	return n, nil
}
