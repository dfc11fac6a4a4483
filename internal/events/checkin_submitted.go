package events

import "time"

const CheckinSubmittedTopic = "readiness.checkin.submitted.v1"

type CheckinSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	CheckinID   string    `json:"checkin_id"`
	UserID      string    `json:"user_id"`
	TeamID      string    `json:"team_id"`
	CompanyID   string    `json:"company_id"`
	CheckinDate string    `json:"checkin_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
