package portalv1

// LoginRequest starts a login. An empty WorkspaceID opens a new workspace.
type LoginRequest struct {
	WorkspaceID string `json:"workspaceId,omitempty"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

type LoginResponse struct {
	WorkspaceID string `json:"workspaceId"`
	ChallengeID string `json:"challengeId"`
	Username    string `json:"username"`
	ExpiresAt   string `json:"expiresAt"`
}

type SendCodeRequest struct {
	WorkspaceID string `json:"workspaceId"`
	ChallengeID string `json:"challengeId"`
}

// SendCodeResponse carries the code only when the server echoes codes (development).
type SendCodeResponse struct {
	ChallengeID string `json:"challengeId"`
	Code        string `json:"code,omitempty"`
	ExpiresAt   string `json:"expiresAt"`
}

type VerifyCodeRequest struct {
	WorkspaceID string `json:"workspaceId"`
	ChallengeID string `json:"challengeId"`
}

// VerifyCodeResponse returns the access token for the new session. Syncing is true when a
// background sync was started.
type VerifyCodeResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
	SessionID   string `json:"sessionId"`
	User        string `json:"user"`
	Syncing     bool   `json:"syncing"`
}

type CancelLoginRequest struct {
	WorkspaceID string `json:"workspaceId"`
}

type CancelLoginResponse struct{}

type LogoutRequest struct{}

type LogoutResponse struct{}

// SyncReportsRequest triggers a fetch. Wait blocks until the fetch is applied.
type SyncReportsRequest struct {
	Wait bool `json:"wait,omitempty"`
}

type SyncReportsResponse struct {
	Started bool `json:"started"`
	Count   int  `json:"count"`
}

// Filter is the dashboard filter. An empty Category means "All".
type Filter struct {
	Category string `json:"category,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Report is one sales record. Amount is a decimal string; SaleDate is YYYY-MM-DD.
type Report struct {
	ID          int64  `json:"id"`
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	SaleDate    string `json:"saleDate"`
	Region      string `json:"region"`
}

type ListReportsRequest struct {
	Filter Filter `json:"filter"`
}

type ListReportsResponse struct {
	Reports []Report `json:"reports"`
}

type Bucket struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

type GetDashboardRequest struct {
	Filter Filter `json:"filter"`
}

type GetDashboardResponse struct {
	Reports       []Report `json:"reports"`
	ByCategory    []Bucket `json:"byCategory"`
	ByRegion      []Bucket `json:"byRegion"`
	TotalSales    string   `json:"totalSales"`
	AverageTicket string   `json:"averageTicket"`
	Count         int      `json:"count"`
	Categories    []string `json:"categories"`
	Syncing       bool     `json:"syncing"`
}

// ReportDraft is unparsed create/update input. Empty fields keep stored values on update.
type ReportDraft struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	SaleDate    string `json:"saleDate"`
	Region      string `json:"region"`
}

type CreateReportRequest struct {
	Draft ReportDraft `json:"draft"`
}

type UpdateReportRequest struct {
	ID    int64       `json:"id"`
	Draft ReportDraft `json:"draft"`
}

// MutationResponse reports the pipeline stage reached and the stored record.
type MutationResponse struct {
	Stage  string `json:"stage"`
	Report Report `json:"report"`
}

// ExportReportsRequest exports the filtered records. Format is "csv" (default) or "xlsx".
type ExportReportsRequest struct {
	Filter Filter `json:"filter"`
	Format string `json:"format,omitempty"`
}

type ExportReportsResponse struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
	Rows        int    `json:"rows"`
}

type Ticket struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	ColorTag    string `json:"colorTag"`
}

type SubmitTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

type SubmitTicketResponse struct {
	Ticket    Ticket `json:"ticket"`
	Remaining int    `json:"remaining"`
}

type ListTicketsRequest struct {
	All bool `json:"all,omitempty"`
}

type ListTicketsResponse struct {
	Tickets     []Ticket `json:"tickets"`
	Highlighted string   `json:"highlighted,omitempty"`
	Remaining   int      `json:"remaining"`
}

type AuditEntry struct {
	ID          int64  `json:"id"`
	Timestamp   string `json:"timestamp"`
	Action      string `json:"action"`
	PerformedBy string `json:"performedBy"`
	IPAddress   string `json:"ipAddress"`
	Details     string `json:"details"`
}

type ListAuditLogsRequest struct {
	PerformedBy string `json:"performedBy,omitempty"`
	Action      string `json:"action,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
}

type ListAuditLogsResponse struct {
	Entries []AuditEntry `json:"entries"`
}

type HealthCheckRequest struct{}

// HealthCheckResponse.Status is "SERVING" or "NOT_SERVING".
type HealthCheckResponse struct {
	Status string `json:"status"`
}
