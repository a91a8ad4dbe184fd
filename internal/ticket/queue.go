// Package ticket implements the quota-bounded support ticket queue.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"report-portal/internal/audit"
	auditdomain "report-portal/internal/audit/domain"
	"report-portal/internal/scheduler"
	sessiondomain "report-portal/internal/session/domain"
	"report-portal/internal/ticket/domain"
	"report-portal/internal/validation"
)

// ErrQuotaExceeded matches every *QuotaError via errors.Is.
var ErrQuotaExceeded = errors.New("ticket quota exceeded")

// ErrNoFreeID is returned when every TKT-####-X id is taken.
var ErrNoFreeID = errors.New("no free ticket id")

// QuotaError is returned when the session has used its ticket quota. Its message is the
// notice shown to the user.
type QuotaError struct {
	Quota int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("For this demo, we allow %d tickets to be submitted. Thanks for trying", e.Quota)
}

// Is lets errors.Is(err, ErrQuotaExceeded) match any QuotaError.
func (e *QuotaError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

const highlightKey = "ticket:highlight"

// Config holds the queue limits.
type Config struct {
	// Quota is the number of submissions allowed per session.
	Quota int
	// DisplayLimit is how many tickets Recent returns.
	DisplayLimit int
	// HighlightTTL is how long a new ticket stays highlighted.
	HighlightTTL time.Duration
}

// Submission is the caller input for Submit. Category defaults to "request".
type Submission struct {
	Subject     string `json:"subject" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	Category    string `json:"category" validate:"omitempty,oneof=request feedback bug other"`
}

// Queue holds every ticket of a workspace, newest first.
type Queue struct {
	mu          sync.Mutex
	tickets     []domain.Ticket
	ids         map[string]struct{}
	highlighted string

	cfg   Config
	audit audit.AuditLogger
	sched *scheduler.Scheduler
	randF func() int
}

// NewQueue returns an empty queue.
func NewQueue(cfg Config, auditLogger audit.AuditLogger, sched *scheduler.Scheduler) *Queue {
	return &Queue{
		ids:   make(map[string]struct{}),
		cfg:   cfg,
		audit: auditLogger,
		sched: sched,
		randF: func() int { return 1000 + rand.IntN(9000) },
	}
}

// DemoHistory returns the historical tickets a fresh portal starts with.
func DemoHistory() []domain.Ticket {
	return []domain.Ticket{
		{ID: "TKT-7721-A", Subject: "Payroll access denied...", Category: domain.CategoryRequest, Status: domain.StatusResolved},
		{ID: "TKT-8812-B", Subject: "Regional report mismatch", Category: domain.CategoryBug, Status: domain.StatusInProgress},
	}
}

// Seed appends historical tickets below the existing ones. Seeding neither counts against the
// quota nor writes the audit trail. Tickets whose id is already present are skipped.
func (q *Queue) Seed(tickets ...domain.Ticket) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, t := range tickets {
		if _, dup := q.ids[t.ID]; dup {
			continue
		}
		q.ids[t.ID] = struct{}{}
		q.tickets = append(q.tickets, t)
	}
}

// Submit creates a SUBMITTED ticket for sess. The quota is checked before the input; a
// rejection creates no ticket and no audit entry. On success the session counter is
// incremented, one TICKET_SUBMIT entry is logged and the ticket is highlighted.
func (q *Queue) Submit(ctx context.Context, sess *sessiondomain.Session, in Submission) (domain.Ticket, error) {
	if sess.TicketsSubmitted >= q.cfg.Quota {
		return domain.Ticket{}, &QuotaError{Quota: q.cfg.Quota}
	}
	in.Subject = strings.TrimSpace(in.Subject)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if err := validation.Struct(in); err != nil {
		return domain.Ticket{}, err
	}
	category := domain.Category(in.Category)
	if category == "" {
		category = domain.CategoryRequest
	}

	q.mu.Lock()
	id, err := q.nextID()
	if err != nil {
		q.mu.Unlock()
		return domain.Ticket{}, err
	}
	t := domain.Ticket{
		ID:          id,
		Subject:     in.Subject,
		Description: in.Description,
		Category:    category,
		Status:      domain.StatusSubmitted,
	}
	q.ids[t.ID] = struct{}{}
	q.tickets = append([]domain.Ticket{t}, q.tickets...)
	q.highlighted = t.ID
	q.mu.Unlock()

	sess.TicketsSubmitted++
	q.sched.Schedule(highlightKey, q.cfg.HighlightTTL, func() { q.clearHighlight(id) })
	q.audit.LogEvent(ctx, sess.CurrentUser, auditdomain.ActionTicketSubmit,
		fmt.Sprintf("Submitted service desk ticket %s: %s...", t.ID, truncate(t.Subject, 30)))
	return t, nil
}

// nextID returns an unused TKT-####-X id, random first and then the lowest free number. Caller holds q.mu.
func (q *Queue) nextID() (string, error) {
	for i := 0; i < 32; i++ {
		id := fmt.Sprintf("TKT-%04d-X", q.randF())
		if _, taken := q.ids[id]; !taken {
			return id, nil
		}
	}
	for n := 1000; n <= 9999; n++ {
		id := fmt.Sprintf("TKT-%04d-X", n)
		if _, taken := q.ids[id]; !taken {
			return id, nil
		}
	}
	return "", ErrNoFreeID
}

func (q *Queue) clearHighlight(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.highlighted == id {
		q.highlighted = ""
	}
}

// ClearHighlight drops the highlight immediately and cancels its timer. Used on logout.
func (q *Queue) ClearHighlight() {
	q.sched.Cancel(highlightKey)
	q.mu.Lock()
	defer q.mu.Unlock()
	q.highlighted = ""
}

// Highlighted returns the id of the highlighted ticket, if any.
func (q *Queue) Highlighted() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.highlighted, q.highlighted != ""
}

// Recent returns up to Config.DisplayLimit tickets, newest first.
func (q *Queue) Recent() []domain.Ticket {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.tickets)
	if q.cfg.DisplayLimit > 0 && n > q.cfg.DisplayLimit {
		n = q.cfg.DisplayLimit
	}
	out := make([]domain.Ticket, n)
	copy(out, q.tickets[:n])
	return out
}

// All returns every ticket, newest first.
func (q *Queue) All() []domain.Ticket {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Ticket, len(q.tickets))
	copy(out, q.tickets)
	return out
}

// Quota returns the per-session submission limit.
func (q *Queue) Quota() int {
	return q.cfg.Quota
}

// Len returns the number of tickets held.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tickets)
}

// truncate returns the first n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
