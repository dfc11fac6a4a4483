package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleWorker   = "WORKER"
	RoleTeamLead = "TEAM_LEAD"
	RoleAdmin    = "ADMIN"
)

// User is a worker (or team lead) inside a company. TeamJoinedAt and
// CreatedAt feed the absence-detection baseline. TotalCheckins and the
// streak counters are maintained by the check-in workflow and only read
// here.
type User struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	TeamID        *uuid.UUID     `gorm:"column:team_id;type:uuid;index"`
	Email         string         `gorm:"column:email;type:varchar(120);not null;uniqueIndex:uq_user_email"`
	Password      string         `gorm:"column:password;type:varchar(120);not null"`
	FullName      string         `gorm:"column:full_name;type:varchar(120);not null"`
	Role          string         `gorm:"column:role;type:varchar(20);not null;default:WORKER"`
	TeamJoinedAt  *time.Time     `gorm:"column:team_joined_at;type:timestamptz"`
	TotalCheckins int            `gorm:"column:total_checkins;not null;default:0"`
	CurrentStreak int            `gorm:"column:current_streak;not null;default:0"`
	LongestStreak int            `gorm:"column:longest_streak;not null;default:0"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
