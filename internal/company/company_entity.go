package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company owns the timezone that resolves "today" for all of its teams
// and workers. The timezone is immutable after creation.
type Company struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string         `gorm:"column:name;type:varchar(120);not null"`
	Timezone  string         `gorm:"column:timezone;type:varchar(64);not null;default:UTC"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Company) TableName() string {
	return "companies"
}
