package events

import "time"

const HolidayChangedTopic = "readiness.holiday.changed.v1"

type HolidayChangedEvent struct {
	EventType  string    `json:"event_type"`
	HolidayID  string    `json:"holiday_id"`
	CompanyID  string    `json:"company_id"`
	Date       string    `json:"date"`
	OccurredAt time.Time `json:"occurred_at"`
}
