package team

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team belongs to one company and defines the attendance contract for its
// members: which weekdays are work days and the shift window. WorkDays is
// stored as a comma-separated list of MON..SUN codes, order preserved.
type Team struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	Name       string         `gorm:"column:name;type:varchar(120);not null"`
	WorkDays   string         `gorm:"column:work_days;type:varchar(40);not null;default:'MON,TUE,WED,THU,FRI'"`
	ShiftStart string         `gorm:"column:shift_start;type:varchar(5);not null;default:'09:00'"`
	ShiftEnd   string         `gorm:"column:shift_end;type:varchar(5);not null;default:'17:00'"`
	LeaderID   *uuid.UUID     `gorm:"column:leader_id;type:uuid"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Team) TableName() string {
	return "teams"
}

// WorkDayList returns the ordered work-day codes.
func (t Team) WorkDayList() []string {
	if t.WorkDays == "" {
		return nil
	}
	parts := strings.Split(t.WorkDays, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if d := strings.ToUpper(strings.TrimSpace(p)); d != "" {
			days = append(days, d)
		}
	}
	return days
}

// IsWorkDay reports whether the given MON..SUN weekday code is one of the
// team's work days.
func (t Team) IsWorkDay(weekday string) bool {
	for _, d := range t.WorkDayList() {
		if d == weekday {
			return true
		}
	}
	return false
}
