package holiday

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holiday suppresses the attendance requirement for every team of the
// company on its date. One row per (company, date).
type Holiday struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID      `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_holiday_company_date"`
	Date      time.Time      `gorm:"column:date;type:date;not null;uniqueIndex:uq_holiday_company_date"`
	Name      string         `gorm:"column:name;type:varchar(120);not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Holiday) TableName() string {
	return "holidays"
}
