// Package mutation validates and applies create/update drafts to a record store and
// logs each applied change to the audit trail.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"report-portal/internal/audit"
	auditdomain "report-portal/internal/audit/domain"
	"report-portal/internal/logging"
	"report-portal/internal/report/domain"
	"report-portal/internal/report/store"
	sessiondomain "report-portal/internal/session/domain"
	"report-portal/internal/validation"
)

// Stage is the point an operation reached.
type Stage string

const (
	StageDraft     Stage = "DRAFT"
	StageValidated Stage = "VALIDATED"
	StageApplied   Stage = "APPLIED"
	StageLogged    Stage = "LOGGED"
	StageRejected  Stage = "REJECTED"
)

// Outcome is the result of one pipeline run. Report is set only when Stage is StageLogged.
type Outcome struct {
	Stage  Stage
	Report domain.SalesReport
}

// Pipeline is the Mutation Pipeline of one workspace.
type Pipeline struct {
	store *store.Store
	audit audit.AuditLogger
	log   logrus.FieldLogger
	nowF  func() time.Time
}

// NewPipeline returns a pipeline writing to s and auditLogger. log may be nil.
func NewPipeline(s *store.Store, auditLogger audit.AuditLogger, log logrus.FieldLogger) *Pipeline {
	if log == nil {
		log = logging.Discard()
	}
	return &Pipeline{store: s, audit: auditLogger, log: log, nowF: time.Now}
}

// Create validates d, assigns the next id and logs one DATA_CREATE entry.
// An empty SaleDate defaults to today.
func (p *Pipeline) Create(ctx context.Context, sess *sessiondomain.Session, d domain.Draft) (Outcome, error) {
	d = trimDraft(d)
	if err := validation.Struct(d); err != nil {
		return rejected(err)
	}
	fields, err := fieldsFromDraft(d, domain.Fields{SaleDate: domain.DateOf(p.nowF().UTC())}, true)
	if err != nil {
		return rejected(err)
	}
	rec, err := p.store.Create(fields)
	if err != nil {
		return rejected(err)
	}
	p.audit.LogEvent(ctx, sess.CurrentUser, auditdomain.ActionDataCreate,
		fmt.Sprintf("New statutory registry entry created ID:%d (%s)", rec.ID, rec.ProductName))
	p.log.WithFields(logrus.Fields{"report_id": rec.ID, "user": sess.CurrentUser}).Info("report created")
	return Outcome{Stage: StageLogged, Report: rec}, nil
}

// Update merges d over the stored record with the given id and logs one DATA_UPDATE entry.
// Empty draft fields keep their stored value.
func (p *Pipeline) Update(ctx context.Context, sess *sessiondomain.Session, id int64, d domain.Draft) (Outcome, error) {
	d = trimDraft(d)
	current, ok := p.store.Get(id)
	if !ok {
		return rejected(fmt.Errorf("%w: id %d", domain.ErrNotFound, id))
	}
	fields, err := fieldsFromDraft(d, current.Fields(), false)
	if err != nil {
		return rejected(err)
	}
	rec, err := p.store.Update(id, fields)
	if err != nil {
		return rejected(err)
	}
	p.audit.LogEvent(ctx, sess.CurrentUser, auditdomain.ActionDataUpdate,
		fmt.Sprintf("Updated registry record ID:%d (%s)", rec.ID, rec.ProductName))
	p.log.WithFields(logrus.Fields{"report_id": rec.ID, "user": sess.CurrentUser}).Info("report updated")
	return Outcome{Stage: StageLogged, Report: rec}, nil
}

// fieldsFromDraft overlays the non-empty fields of d on base. An empty amount keeps
// base.Amount unless requireAmount is set.
func fieldsFromDraft(d domain.Draft, base domain.Fields, requireAmount bool) (domain.Fields, error) {
	out := base
	if d.ProductName != "" {
		out.ProductName = d.ProductName
	}
	if d.Category != "" {
		out.Category = d.Category
	}
	if d.Region != "" {
		out.Region = d.Region
	}
	if d.Amount != "" || requireAmount {
		amount, err := domain.ParseAmount(d.Amount)
		if err != nil {
			return domain.Fields{}, err
		}
		out.Amount = amount
	}
	if d.SaleDate != "" {
		date, err := domain.ParseSaleDate(d.SaleDate)
		if err != nil {
			return domain.Fields{}, err
		}
		out.SaleDate = date
	}
	return out, nil
}

func rejected(err error) (Outcome, error) {
	return Outcome{Stage: StageRejected}, err
}

func trimDraft(d domain.Draft) domain.Draft {
	d.ProductName = strings.TrimSpace(d.ProductName)
	d.Category = strings.TrimSpace(d.Category)
	d.Region = strings.TrimSpace(d.Region)
	d.Amount = strings.TrimSpace(d.Amount)
	d.SaleDate = strings.TrimSpace(d.SaleDate)
	return d
}

// IsRejection reports whether err is a rejection the caller can fix (bad input or unknown id).
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound)
}
