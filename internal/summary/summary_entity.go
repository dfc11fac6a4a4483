package summary

import (
	"time"

	"github.com/google/uuid"
)

// DailyTeamSummary is fully derived state, one row per (team, date),
// recomputable at any time. The unique key makes recomputation an
// idempotent full replace; concurrent recomputes for the same key
// converge on the storage upsert.
type DailyTeamSummary struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID         uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	TeamID            uuid.UUID `gorm:"column:team_id;type:uuid;not null;uniqueIndex:uq_summary_team_date"`
	Date              time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_summary_team_date"`
	IsWorkDay         bool      `gorm:"column:is_work_day;not null"`
	IsHoliday         bool      `gorm:"column:is_holiday;not null"`
	TotalMembers      int       `gorm:"column:total_members;not null"`
	OnLeaveCount      int       `gorm:"column:on_leave_count;not null"`
	ExpectedToCheckIn int       `gorm:"column:expected_to_check_in;not null"`
	CheckedInCount    int       `gorm:"column:checked_in_count;not null"`
	NotCheckedInCount int       `gorm:"column:not_checked_in_count;not null"`
	GreenCount        int       `gorm:"column:green_count;not null"`
	YellowCount       int       `gorm:"column:yellow_count;not null"`
	RedCount          int       `gorm:"column:red_count;not null"`
	AvgReadinessScore *float64  `gorm:"column:avg_readiness_score;type:numeric(5,2)"`
	ComplianceRate    *float64  `gorm:"column:compliance_rate;type:numeric(5,2)"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (DailyTeamSummary) TableName() string {
	return "daily_team_summaries"
}
