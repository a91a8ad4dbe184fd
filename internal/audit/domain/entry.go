package domain

// TimestampLayout is the wall-clock layout of Entry.Timestamp (UTC).
const TimestampLayout = "2006-01-02 15:04:05"

// Action is the kind of audited event.
type Action string

const (
	ActionLogin        Action = "LOGIN"
	ActionDataExport   Action = "DATA_EXPORT"
	ActionDataCreate   Action = "DATA_CREATE"
	ActionDataUpdate   Action = "DATA_UPDATE"
	ActionTicketSubmit Action = "TICKET_SUBMIT"
	ActionConfigChange Action = "CONFIG_CHANGE"
	ActionReportSync   Action = "REPORT_SYNC"
	ActionAPIAccess    Action = "API_ACCESS"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionLogin, ActionDataExport, ActionDataCreate, ActionDataUpdate,
		ActionTicketSubmit, ActionConfigChange, ActionReportSync, ActionAPIAccess:
		return true
	}
	return false
}

// Entry represents one audit log entry. Entries are never modified once appended.
type Entry struct {
	ID          int64
	Timestamp   string
	Action      Action
	PerformedBy string
	IPAddress   string
	Details     string
}
