package events

import "time"

const AbsenceReviewedTopic = "readiness.absence.reviewed.v1"

type AbsenceReviewedEvent struct {
	EventType   string    `json:"event_type"`
	AbsenceID   string    `json:"absence_id"`
	UserID      string    `json:"user_id"`
	TeamID      string    `json:"team_id"`
	CompanyID   string    `json:"company_id"`
	AbsenceDate string    `json:"absence_date"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
