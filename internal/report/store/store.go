// Package store holds the canonical, ordered set of sales records for one workspace.
// It is pure state: it never writes the audit trail.
package store

import (
	"errors"
	"fmt"
	"sync"

	"report-portal/internal/report/domain"
)

// ErrDuplicateID is returned by Load when two records in the payload share an id.
var ErrDuplicateID = errors.New("duplicate report id")

// Store is the Record Store. The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	records []domain.SalesReport
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Load replaces the canonical set wholesale. The payload is checked first; on error the
// store is left exactly as it was.
func (s *Store) Load(records []domain.SalesReport) error {
	seen := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if r.ID <= 0 {
			return &domain.ValidationError{Field: "id", Reason: fmt.Sprintf("%d is not positive", r.ID)}
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	next := make([]domain.SalesReport, len(records))
	copy(next, records)

	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
	return nil
}

// Create assigns id = max(existing ids, 0) + 1 and puts the new record first.
func (s *Store) Create(f domain.Fields) (domain.SalesReport, error) {
	if f.Amount.IsNegative() {
		return domain.SalesReport{}, &domain.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxID int64
	for _, r := range s.records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	rec := domain.SalesReport{ID: maxID + 1}.WithFields(f)
	s.records = append([]domain.SalesReport{rec}, s.records...)
	return rec, nil
}

// Update replaces the mutable fields of the record with the given id in place.
// Returns domain.ErrNotFound if no such record exists.
func (s *Store) Update(id int64, f domain.Fields) (domain.SalesReport, error) {
	if f.Amount.IsNegative() {
		return domain.SalesReport{}, &domain.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = s.records[i].WithFields(f)
			return s.records[i], nil
		}
	}
	return domain.SalesReport{}, fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
}

// Get returns the record with the given id.
func (s *Store) Get(id int64) (domain.SalesReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.SalesReport{}, false
}

// Snapshot returns a copy of the records in canonical order.
func (s *Store) Snapshot() []domain.SalesReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SalesReport, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
