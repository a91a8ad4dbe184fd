package audit

import (
	"sync"
	"time"

	"report-portal/internal/audit/domain"
)

// Trail is the append-only audit log of one workspace.
// Append is the only mutator; entries are read newest first.
type Trail struct {
	mu      sync.Mutex
	entries []domain.Entry // oldest first
	lastID  int64
	lastAt  time.Time
	nowF    func() time.Time
}

// NewTrail returns an empty Trail. nowF may be nil (defaults to time.Now).
func NewTrail(nowF func() time.Time) *Trail {
	if nowF == nil {
		nowF = time.Now
	}
	return &Trail{nowF: nowF}
}

// Append stamps e with an id and timestamp and adds it as the newest entry.
// Ids are Unix milliseconds, bumped past the previous id when the clock has not advanced.
// The timestamp never goes backwards relative to the previous entry.
func (t *Trail) Append(e domain.Entry) domain.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.nowF().UTC()
	if now.Before(t.lastAt) {
		now = t.lastAt
	}
	id := now.UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	e.ID = id
	e.Timestamp = now.Format(domain.TimestampLayout)
	t.lastID = id
	t.lastAt = now
	t.entries = append(t.entries, e)
	return e
}

// Entries returns a copy of all entries, newest first.
func (t *Trail) Entries() []domain.Entry {
	return t.List(ListFilter{})
}

// ListFilter narrows List. Zero values match everything; Limit <= 0 means no limit.
type ListFilter struct {
	PerformedBy string
	Action      domain.Action
	Limit       int
	Offset      int
}

// List returns matching entries newest first, after skipping Offset matches.
func (t *Trail) List(f ListFilter) []domain.Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Entry, 0, len(t.entries))
	skipped := 0
	for i := len(t.entries) - 1; i >= 0; i-- {
		e := t.entries[i]
		if f.PerformedBy != "" && e.PerformedBy != f.PerformedBy {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		if skipped < f.Offset {
			skipped++
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// Len returns the number of entries.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
