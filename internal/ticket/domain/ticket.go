package domain

// Status is the lifecycle status of a support ticket.
type Status string

const (
	StatusSubmitted  Status = "SUBMITTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
)

// Category is the kind of request a ticket carries.
type Category string

const (
	CategoryRequest  Category = "request"
	CategoryFeedback Category = "feedback"
	CategoryBug      Category = "bug"
	CategoryOther    Category = "other"
)

// ColorTag returns the presentation hint for s.
func (s Status) ColorTag() string {
	switch s {
	case StatusSubmitted:
		return "accent"
	case StatusInProgress:
		return "#b45309"
	case StatusResolved:
		return "success"
	default:
		return ""
	}
}

// Ticket is a support ticket. Tickets are immutable once created.
type Ticket struct {
	ID          string
	Subject     string
	Description string
	Category    Category
	Status      Status
}

// ColorTag returns the presentation hint for the ticket's status.
func (t Ticket) ColorTag() string {
	return t.Status.ColorTag()
}
