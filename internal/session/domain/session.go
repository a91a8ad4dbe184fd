package domain

// DefaultUser is the CurrentUser of a session nobody has logged into.
const DefaultUser = "Administrator"

// State is a Session Gate state.
type State string

const (
	StateLoggedOut          State = "LOGGED_OUT"
	StateCredentialsChecked State = "CREDENTIALS_CHECKED"
	StateStepUpPending      State = "STEP_UP_PENDING"
	StateLoggedIn           State = "LOGGED_IN"
	StateLoggingOut         State = "LOGGING_OUT"
)

// Session is the per-login state shared by the engine components.
// ID is empty until step-up completes.
type Session struct {
	ID               string
	CurrentUser      string
	IsAuthenticated  bool
	TicketsSubmitted int
}

// New returns a session in its default (logged out) values.
func New() Session {
	return Session{CurrentUser: DefaultUser}
}
