package checkin

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Checkin is one wellness submission. The readiness pair is computed once
// at creation and never recomputed in place; audit recomputation is a
// separate read-only operation. CheckinDate is the company-local calendar
// day of submission and backs the one-per-day uniqueness rule.
type Checkin struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID       uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	UserID          uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_checkin_user_date"`
	CheckinDate     time.Time      `gorm:"column:checkin_date;type:date;not null;uniqueIndex:uq_checkin_user_date"`
	Mood            int            `gorm:"column:mood;not null"`
	Stress          int            `gorm:"column:stress;not null"`
	Sleep           int            `gorm:"column:sleep;not null"`
	PhysicalHealth  int            `gorm:"column:physical_health;not null"`
	ReadinessScore  int            `gorm:"column:readiness_score;not null"`
	ReadinessStatus string         `gorm:"column:readiness_status;type:varchar(10);not null"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Checkin) TableName() string {
	return "checkins"
}
