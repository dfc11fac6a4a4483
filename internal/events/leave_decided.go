package events

import "time"

const LeaveDecidedTopic = "readiness.leave.decided.v1"

// LeaveDecidedEvent fires on approval or rejection. Consumers recompute
// summaries over the whole covered range because a decision can change
// historical coverage.
type LeaveDecidedEvent struct {
	EventType   string    `json:"event_type"`
	ExceptionID string    `json:"exception_id"`
	UserID      string    `json:"user_id"`
	TeamID      string    `json:"team_id"`
	CompanyID   string    `json:"company_id"`
	Status      string    `json:"status"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
