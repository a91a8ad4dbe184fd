// Package portal assembles the report and audit engine of one logged-in workspace:
// record store, view projector, mutation pipeline, audit trail, ticket queue and
// session gate, all serialized behind one workspace lock.
package portal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"report-portal/internal/audit"
	auditdomain "report-portal/internal/audit/domain"
	"report-portal/internal/logging"
	"report-portal/internal/mfa"
	"report-portal/internal/policy/engine"
	"report-portal/internal/report/domain"
	"report-portal/internal/report/export"
	"report-portal/internal/report/mutation"
	"report-portal/internal/report/store"
	"report-portal/internal/report/view"
	"report-portal/internal/reportapi/client"
	"report-portal/internal/scheduler"
	"report-portal/internal/session"
	sessiondomain "report-portal/internal/session/domain"
	"report-portal/internal/ticket"
	ticketdomain "report-portal/internal/ticket/domain"
)

// ErrNotAuthenticated is returned by every engine operation while no session is logged in.
var ErrNotAuthenticated = session.ErrNotAuthenticated

// ErrSyncSuperseded is returned by Sync when a later sync started before this one completed.
// The fetched records were discarded.
var ErrSyncSuperseded = errors.New("sync superseded by a newer sync")

// Config holds per-workspace settings.
type Config struct {
	Gate    session.Config
	Tickets ticket.Config
	// SeedTickets preloads the historical demo tickets.
	SeedTickets bool
	// IdleTTL evicts a workspace from its Registry once no request has touched it for
	// this long. Zero disables eviction.
	IdleTTL time.Duration
}

// Deps are the collaborators shared by every workspace. SinkFor, IPExtractor, AfterFunc and Log may be nil.
type Deps struct {
	Fetcher client.Fetcher
	Policy  engine.Evaluator
	Secret  session.SecretMatcher
	// SinkFor returns the audit sink of one workspace (e.g. telemetry export).
	SinkFor     func(workspaceID string) audit.Sink
	IPExtractor audit.IPExtractor
	AfterFunc   scheduler.AfterFunc
	Log         logrus.FieldLogger
}

// Workspace is one isolated engine instance. Workspaces share no state.
type Workspace struct {
	id string

	mu       sync.Mutex
	syncGen  uint64
	inFlight int

	store    *store.Store
	trail    *audit.Trail
	audit    *audit.Logger
	gate     *session.Gate
	queue    *ticket.Queue
	pipeline *mutation.Pipeline
	sched    *scheduler.Scheduler
	fetcher  client.Fetcher
	log      logrus.FieldLogger
	nowF     func() time.Time
}

// NewWorkspace builds an empty workspace in LoggedOut.
func NewWorkspace(id string, cfg Config, deps Deps) *Workspace {
	log := deps.Log
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithField("workspace_id", id)

	sched := scheduler.New(deps.AfterFunc)
	trail := audit.NewTrail(nil)
	var sink audit.Sink
	if deps.SinkFor != nil {
		sink = deps.SinkFor(id)
	}
	auditLogger := audit.NewLogger(trail, deps.IPExtractor, sink)
	st := store.New()
	queue := ticket.NewQueue(cfg.Tickets, auditLogger, sched)
	if cfg.SeedTickets {
		queue.Seed(ticket.DemoHistory()...)
	}
	gate := session.NewGate(deps.Policy, deps.Secret, mfa.NewMemoryStore(nil), auditLogger, sched, cfg.Gate,
		log.WithField("component", "session"))
	gate.OnReset(queue.ClearHighlight)

	return &Workspace{
		id:       id,
		store:    st,
		trail:    trail,
		audit:    auditLogger,
		gate:     gate,
		queue:    queue,
		pipeline: mutation.NewPipeline(st, auditLogger, log.WithField("component", "mutation")),
		sched:    sched,
		fetcher:  deps.Fetcher,
		log:      log,
		nowF:     time.Now,
	}
}

// ID returns the workspace id.
func (w *Workspace) ID() string { return w.id }

// Login checks credentials and returns the step-up challenge.
func (w *Workspace) Login(ctx context.Context, username, password string) (session.Challenge, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate.Login(ctx, username, password)
}

// SendCode issues the step-up code for challengeID.
func (w *Workspace) SendCode(ctx context.Context, challengeID string) (session.Code, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate.SendCode(ctx, challengeID)
}

// ConfirmStepUp completes the login and returns the live session.
func (w *Workspace) ConfirmStepUp(ctx context.Context, challengeID string) (sessiondomain.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate.ConfirmStepUp(ctx, challengeID)
}

// CancelLogin abandons a login in progress.
func (w *Workspace) CancelLogin(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate.Cancel(ctx)
}

// Logout starts the delayed logout. Records, audit trail and tickets survive it.
func (w *Workspace) Logout(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate.Logout(ctx)
}

// Authorize returns the live session when sessionID is the workspace's logged-in session.
func (w *Workspace) Authorize(sessionID string) (sessiondomain.Session, error) {
	return w.gate.Authorize(sessionID)
}

// Session returns the current session and gate state.
func (w *Workspace) Session() (sessiondomain.Session, sessiondomain.State) {
	return w.gate.Current()
}

// withSession runs fn under the workspace lock with the live session.
func (w *Workspace) withSession(fn func(*sessiondomain.Session) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate.WithSession(fn)
}

// Dashboard projects the current records through f.
func (w *Workspace) Dashboard(f view.Filter) (view.Projection, error) {
	var out view.Projection
	err := w.withSession(func(*sessiondomain.Session) error {
		out = view.Project(w.store.Snapshot(), f)
		return nil
	})
	return out, err
}

// CreateReport runs a create draft through the mutation pipeline.
func (w *Workspace) CreateReport(ctx context.Context, d domain.Draft) (mutation.Outcome, error) {
	var out mutation.Outcome
	err := w.withSession(func(s *sessiondomain.Session) error {
		var err error
		out, err = w.pipeline.Create(ctx, s, d)
		return err
	})
	if err != nil && out.Stage == "" {
		out.Stage = mutation.StageRejected
	}
	return out, err
}

// UpdateReport runs an update draft for id through the mutation pipeline.
func (w *Workspace) UpdateReport(ctx context.Context, id int64, d domain.Draft) (mutation.Outcome, error) {
	var out mutation.Outcome
	err := w.withSession(func(s *sessiondomain.Session) error {
		var err error
		out, err = w.pipeline.Update(ctx, s, id, d)
		return err
	})
	if err != nil && out.Stage == "" {
		out.Stage = mutation.StageRejected
	}
	return out, err
}

// Export renders the records matching f and logs one DATA_EXPORT entry.
func (w *Workspace) Export(ctx context.Context, f view.Filter, format export.Format) (export.File, error) {
	var file export.File
	err := w.withSession(func(s *sessiondomain.Session) error {
		records := view.FilterRecords(w.store.Snapshot(), f)
		var err error
		file, err = export.Render(format, records, w.nowF().UTC())
		if err != nil {
			return err
		}
		w.audit.LogEvent(ctx, s.CurrentUser, auditdomain.ActionDataExport,
			fmt.Sprintf("Exported %d statutory records as %s", file.Rows, strings.ToUpper(string(format))))
		return nil
	})
	return file, err
}

// SubmitTicket submits a support ticket against the session quota.
func (w *Workspace) SubmitTicket(ctx context.Context, in ticket.Submission) (ticketdomain.Ticket, error) {
	var out ticketdomain.Ticket
	err := w.withSession(func(s *sessiondomain.Session) error {
		var err error
		out, err = w.queue.Submit(ctx, s, in)
		return err
	})
	return out, err
}

// TicketView is the ticket panel: the newest tickets, the highlighted id and the remaining quota.
type TicketView struct {
	Recent      []ticketdomain.Ticket
	Highlighted string
	Remaining   int
}

// Tickets returns the ticket panel. all returns every ticket instead of the newest few.
func (w *Workspace) Tickets(all bool) (TicketView, error) {
	var out TicketView
	err := w.withSession(func(s *sessiondomain.Session) error {
		if all {
			out.Recent = w.queue.All()
		} else {
			out.Recent = w.queue.Recent()
		}
		out.Highlighted, _ = w.queue.Highlighted()
		out.Remaining = max(w.queue.Quota()-s.TicketsSubmitted, 0)
		return nil
	})
	return out, err
}

// AuditLog returns trail entries newest first.
func (w *Workspace) AuditLog(f audit.ListFilter) ([]auditdomain.Entry, error) {
	var out []auditdomain.Entry
	err := w.withSession(func(*sessiondomain.Session) error {
		out = w.trail.List(f)
		return nil
	})
	return out, err
}

// Close cancels every pending timer.
func (w *Workspace) Close() {
	w.sched.Stop()
}
