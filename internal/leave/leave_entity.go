package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exception is a worker-scoped leave request over an inclusive date range.
// EndDate is the last day of leave, not a return date: the day after
// EndDate is the first day attendance is required again. Only APPROVED
// exceptions count toward leave coverage.
type Exception struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Type      string         `gorm:"column:type;type:varchar(30);not null"`
	Status    string         `gorm:"column:status;type:varchar(20);not null;default:PENDING"`
	StartDate time.Time      `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time      `gorm:"column:end_date;type:date;not null"`
	Reason    string         `gorm:"column:reason;type:text"`
	DecidedBy *uuid.UUID     `gorm:"column:decided_by;type:uuid"`
	DecidedAt *time.Time     `gorm:"column:decided_at;type:timestamptz"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Exception) TableName() string {
	return "exceptions"
}
