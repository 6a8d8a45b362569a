package presentation

const (
	TTag          = "t"
	AuthKey       = "Authorization"
	ExpTag        = "expiration"
	PK            = "pk"
	ReasonTag     = "X-Reason"
	IDParam       = "id"
	CategoryParam = "category"
	TabParam      = "tab"
	QueryParam    = "q"

	// AuthEventKind is the Nostr event kind accepted in Authorization headers.
	AuthEventKind = 24242
	// DiagnoseAction is the `t` tag value that grants access to diagnostics.
	DiagnoseAction = "diagnose"
)
