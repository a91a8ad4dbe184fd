// Package session implements the two-step login gate that guards a workspace.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"report-portal/internal/audit"
	auditdomain "report-portal/internal/audit/domain"
	"report-portal/internal/logging"
	"report-portal/internal/mfa"
	mfadomain "report-portal/internal/mfa/domain"
	"report-portal/internal/policy/engine"
	"report-portal/internal/scheduler"
	"report-portal/internal/session/domain"
)

var (
	// ErrInvalidCredentials is returned by Login when the username is not admitted or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidState is returned when an operation is not allowed in the current gate state.
	ErrInvalidState = errors.New("operation not allowed in the current session state")
	// ErrNotAuthenticated is returned when no live logged-in session matches the caller.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrChallengeNotFound is returned when a step-up challenge id is unknown or expired.
	ErrChallengeNotFound = errors.New("step-up challenge not found or expired")
)

const logoutKey = "session:logout"

// SecretMatcher checks a password against the configured portal secret.
type SecretMatcher interface {
	Matches(password string) bool
}

// Config holds the gate timings.
type Config struct {
	// LogoutDelay is how long the gate stays in LoggingOut before resetting.
	LogoutDelay time.Duration
	// StepUpTTL bounds how long a challenge stays usable.
	StepUpTTL time.Duration
	// ReturnCode echoes the generated step-up code to the caller. Development only.
	ReturnCode bool
}

// Challenge is returned by a successful credential check.
type Challenge struct {
	ID        string
	Username  string
	ExpiresAt time.Time
}

// Code is the result of SendCode. Code is empty unless Config.ReturnCode is set.
type Code struct {
	ChallengeID string
	Code        string
	ExpiresAt   time.Time
}

// Gate is the Session Gate state machine:
// LoggedOut -> CredentialsChecked -> StepUpPending -> LoggedIn -> LoggingOut -> LoggedOut.
type Gate struct {
	mu          sync.Mutex
	state       domain.State
	sess        domain.Session
	challengeID string
	onReset     []func()

	policy     engine.Evaluator
	secret     SecretMatcher
	challenges mfa.ChallengeStore
	audit      audit.AuditLogger
	sched      *scheduler.Scheduler
	cfg        Config
	log        logrus.FieldLogger
	nowF       func() time.Time
	newID      func() string
}

// NewGate returns a gate in LoggedOut with a default session. log may be nil.
func NewGate(policy engine.Evaluator, secret SecretMatcher, challenges mfa.ChallengeStore, auditLogger audit.AuditLogger, sched *scheduler.Scheduler, cfg Config, log logrus.FieldLogger) *Gate {
	if log == nil {
		log = logging.Discard()
	}
	return &Gate{
		state:      domain.StateLoggedOut,
		sess:       domain.New(),
		policy:     policy,
		secret:     secret,
		challenges: challenges,
		audit:      auditLogger,
		sched:      sched,
		cfg:        cfg,
		log:        log,
		nowF:       time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// OnReset registers fn to run after the logout delay has reset the session. fn runs without the gate lock.
func (g *Gate) OnReset(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onReset = append(g.onReset, fn)
}

// Current returns a copy of the session and the gate state.
func (g *Gate) Current() (domain.Session, domain.State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sess, g.state
}

// Login checks credentials. On success the gate moves to CredentialsChecked and a challenge is returned.
// Login may restart a login already in progress; it never interrupts a logged-in session.
func (g *Gate) Login(ctx context.Context, username, password string) (Challenge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.state {
	case domain.StateLoggedOut, domain.StateCredentialsChecked, domain.StateStepUpPending:
	default:
		return Challenge{}, ErrInvalidState
	}
	g.dropChallenge(ctx)
	g.state = domain.StateLoggedOut

	username = strings.TrimSpace(username)
	if username == "" {
		return Challenge{}, ErrInvalidCredentials
	}
	dec, err := g.policy.EvaluateAccess(ctx, username)
	if err != nil {
		logging.LogError(g.log, "session", "Login", "evaluate access policy", nil, err)
		return Challenge{}, ErrInvalidCredentials
	}
	if !dec.Allow || !g.secret.Matches(password) {
		return Challenge{}, ErrInvalidCredentials
	}

	now := g.nowF().UTC()
	ch := &mfadomain.Challenge{
		ID:        g.newID(),
		Username:  username,
		ExpiresAt: now.Add(g.cfg.StepUpTTL),
		CreatedAt: now,
	}
	g.challenges.Put(ctx, ch)
	g.challengeID = ch.ID
	g.state = domain.StateCredentialsChecked
	return Challenge{ID: ch.ID, Username: ch.Username, ExpiresAt: ch.ExpiresAt}, nil
}

// SendCode issues a step-up code for the pending challenge and moves to StepUpPending.
// Calling it again while StepUpPending re-sends a fresh code.
func (g *Gate) SendCode(ctx context.Context, challengeID string) (Code, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.StateCredentialsChecked && g.state != domain.StateStepUpPending {
		return Code{}, ErrInvalidState
	}
	ch, err := g.pendingChallenge(ctx, challengeID)
	if err != nil {
		return Code{}, err
	}
	ch.ExpiresAt = g.nowF().UTC().Add(g.cfg.StepUpTTL)
	g.challenges.Put(ctx, ch)
	g.state = domain.StateStepUpPending
	g.log.WithField("challenge_id", ch.ID).Debug("step-up code issued")

	out := Code{ChallengeID: ch.ID, ExpiresAt: ch.ExpiresAt}
	if g.cfg.ReturnCode {
		// Development echo only. Confirmation never checks the code.
		if out.Code, err = mfa.GenerateOTP(); err != nil {
			return Code{}, err
		}
	}
	return out, nil
}

// ConfirmStepUp completes the login: the gate moves to LoggedIn and exactly one LOGIN entry is logged.
// Verification is simulated; an explicit confirm always succeeds for the pending challenge.
func (g *Gate) ConfirmStepUp(ctx context.Context, challengeID string) (domain.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.StateStepUpPending {
		return domain.Session{}, ErrInvalidState
	}
	ch, err := g.pendingChallenge(ctx, challengeID)
	if err != nil {
		return domain.Session{}, err
	}
	g.dropChallenge(ctx)
	g.sess.ID = g.newID()
	g.sess.CurrentUser = ch.Username
	g.sess.IsAuthenticated = true
	g.state = domain.StateLoggedIn
	g.audit.LogEvent(ctx, ch.Username, auditdomain.ActionLogin, "Successful session initialization for "+ch.Username)
	return g.sess, nil
}

// Cancel abandons a login in progress ("Back to Login"). It is a no-op when already logged out.
func (g *Gate) Cancel(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch g.state {
	case domain.StateLoggedOut:
		return nil
	case domain.StateCredentialsChecked, domain.StateStepUpPending:
		g.dropChallenge(ctx)
		g.state = domain.StateLoggedOut
		return nil
	default:
		return ErrInvalidState
	}
}

// Logout moves to LoggingOut. After Config.LogoutDelay the session is reset to defaults
// (quota counter included) and the gate returns to LoggedOut.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.StateLoggedIn {
		return ErrInvalidState
	}
	g.state = domain.StateLoggingOut
	sessionID := g.sess.ID
	g.sched.Schedule(logoutKey, g.cfg.LogoutDelay, func() { g.finishLogout(sessionID) })
	return nil
}

func (g *Gate) finishLogout(sessionID string) {
	g.mu.Lock()
	if g.state != domain.StateLoggingOut || g.sess.ID != sessionID {
		g.mu.Unlock()
		return
	}
	g.sess = domain.New()
	g.state = domain.StateLoggedOut
	hooks := append([]func(){}, g.onReset...)
	g.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// WithSession runs fn with the live session while holding the gate lock.
// Returns ErrNotAuthenticated unless the gate is LoggedIn.
func (g *Gate) WithSession(fn func(*domain.Session) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.StateLoggedIn {
		return ErrNotAuthenticated
	}
	return fn(&g.sess)
}

// Authorize returns the live session if it is LoggedIn with the given id.
func (g *Gate) Authorize(sessionID string) (domain.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != domain.StateLoggedIn || sessionID == "" || g.sess.ID != sessionID {
		return domain.Session{}, ErrNotAuthenticated
	}
	return g.sess, nil
}

// pendingChallenge returns the current challenge if id matches and it has not expired.
// An expired challenge sends the gate back to LoggedOut.
func (g *Gate) pendingChallenge(ctx context.Context, id string) (*mfadomain.Challenge, error) {
	if id == "" || id != g.challengeID {
		return nil, ErrChallengeNotFound
	}
	ch, ok := g.challenges.Get(ctx, id)
	if !ok {
		g.challengeID = ""
		g.state = domain.StateLoggedOut
		return nil, ErrChallengeNotFound
	}
	return ch, nil
}

func (g *Gate) dropChallenge(ctx context.Context) {
	if g.challengeID != "" {
		g.challenges.Delete(ctx, g.challengeID)
		g.challengeID = ""
	}
}
