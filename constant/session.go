package constant

type SessionStatus string

const (
	SessionStatusInProgress          SessionStatus = "in_progress"
	SessionStatusPaused              SessionStatus = "paused"
	SessionStatusCompleted           SessionStatus = "completed"
	SessionStatusCompletedWithIssues SessionStatus = "completed_with_issues"
	SessionStatusCancelled           SessionStatus = "cancelled"
)

// IsTerminal reports whether a session in this status accepts no further mutation.
func (s SessionStatus) IsTerminal() bool {
	switch s {
	case SessionStatusCompleted, SessionStatusCompletedWithIssues, SessionStatusCancelled:
		return true
	}
	return false
}

type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "pending"
	ItemStatusPartial  ItemStatus = "partial"
	ItemStatusPicked   ItemStatus = "picked"
	ItemStatusShortage ItemStatus = "shortage"
)

// Session error types recorded in the audit log.
type SessionErrorType string

const (
	SessionErrorWrongItem     SessionErrorType = "wrong_item"
	SessionErrorWrongLocation SessionErrorType = "wrong_location"
	SessionErrorShortage      SessionErrorType = "shortage"
)

// Per-unit pick and per-location walk times used by the duration estimate.
const (
	PickSecondsPerUnit     = 15
	WalkSecondsPerLocation = 20
)

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
	OrgIDKey  ContextKey = "org_id"
)
