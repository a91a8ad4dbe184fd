package portal

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	auditdomain "report-portal/internal/audit/domain"
	"report-portal/internal/logging"
	"report-portal/internal/reportapi/client"
	sessiondomain "report-portal/internal/session/domain"
)

// SyncResult is the outcome of one fetch.
type SyncResult struct {
	Count int
	Err   error
}

// Sync fetches every record from the report API and replaces the store with them.
// The workspace is not locked during the fetch; mutations made meanwhile are
// overwritten when the fetch lands. When fetches overlap only the most recently
// started one is applied; the others return ErrSyncSuperseded. A failed fetch
// leaves the store unchanged. A successful sync logs one REPORT_SYNC entry as the
// user who started it, even if that user has since logged out.
func (w *Workspace) Sync(ctx context.Context) (int, error) {
	gen, user, err := w.beginSync()
	if err != nil {
		return 0, err
	}
	records, fetchErr := w.fetcher.FetchReports(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight--
	if gen != w.syncGen {
		w.log.WithField("sync_gen", gen).Debug("discarding superseded sync")
		return 0, ErrSyncSuperseded
	}
	if fetchErr != nil {
		logging.LogError(w.log, "portal", "Sync", "fetch reports", nil, fetchErr)
		return 0, fetchErr
	}
	if err := w.store.Load(records); err != nil {
		logging.LogError(w.log, "portal", "Sync", "load reports", logrus.Fields{"count": len(records)}, err)
		// A payload the store rejects is the collaborator's fault, not the caller's.
		return 0, &client.TransportError{URL: fetchSource(w.fetcher), Err: err}
	}
	w.audit.LogEvent(ctx, user, auditdomain.ActionReportSync,
		fmt.Sprintf("Synchronized %d BI reports with central database", len(records)))
	w.log.WithFields(logrus.Fields{"count": len(records), "user": user}).Info("reports synchronized")
	return len(records), nil
}

// StartSync runs Sync in the background and delivers its result on the returned channel.
// The fetch is detached from ctx cancellation so a finished request does not abort it.
func (w *Workspace) StartSync(ctx context.Context) <-chan SyncResult {
	out := make(chan SyncResult, 1)
	bg := context.WithoutCancel(ctx)
	go func() {
		n, err := w.Sync(bg)
		out <- SyncResult{Count: n, Err: err}
		close(out)
	}()
	return out
}

// Syncing reports whether a fetch is in flight.
func (w *Workspace) Syncing() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight > 0
}

func (w *Workspace) beginSync() (uint64, string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var user string
	err := w.gate.WithSession(func(s *sessiondomain.Session) error {
		user = s.CurrentUser
		return nil
	})
	if err != nil {
		return 0, "", err
	}
	w.syncGen++
	w.inFlight++
	return w.syncGen, user, nil
}

// fetchSource names the fetcher's endpoint for error reporting.
func fetchSource(f client.Fetcher) string {
	if u, ok := f.(interface{ URL() string }); ok {
		return u.URL()
	}
	return "report api"
}
