package absence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// StatusPendingJustification covers both halves of the pending state:
	// unjustified (justified_at is null) and justified-awaiting-review.
	StatusPendingJustification = "PENDING_JUSTIFICATION"
	StatusExcused              = "EXCUSED"
	StatusUnexcused            = "UNEXCUSED"
)

// Absence is one row per worker per calendar day on which attendance was
// required but no check-in, holiday or approved leave was found. Immutable
// once created except for the justification and review fields.
type Absence struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	TeamID         uuid.UUID      `gorm:"column:team_id;type:uuid;not null;index"`
	UserID         uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_absence_user_date"`
	AbsenceDate    time.Time      `gorm:"column:absence_date;type:date;not null;uniqueIndex:uq_absence_user_date"`
	Status         string         `gorm:"column:status;type:varchar(30);not null;default:PENDING_JUSTIFICATION"`
	ReasonCategory *string        `gorm:"column:reason_category;type:varchar(40)"`
	Explanation    *string        `gorm:"column:explanation;type:text"`
	JustifiedAt    *time.Time     `gorm:"column:justified_at;type:timestamptz"`
	ReviewedBy     *uuid.UUID     `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt     *time.Time     `gorm:"column:reviewed_at;type:timestamptz"`
	ReviewNotes    *string        `gorm:"column:review_notes;type:text"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Absence) TableName() string {
	return "absences"
}

// Justified reports whether the worker has attached a justification.
func (a Absence) Justified() bool {
	return a.JustifiedAt != nil
}

// Terminal reports whether a team lead has reviewed the absence.
func (a Absence) Terminal() bool {
	return a.Status == StatusExcused || a.Status == StatusUnexcused
}
