package summary

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=summary_repo.go -destination=mock/summary_repo_mock.go -package=mock
type Repository interface {
	// Upsert atomically replaces the row for (team_id, date). The unique
	// key is the sole synchronization point for concurrent recomputes.
	Upsert(ctx context.Context, s *DailyTeamSummary) error
	FindByTeamAndDate(ctx context.Context, teamID, date string) (*DailyTeamSummary, error)
	FindByTeamRange(ctx context.Context, teamID, fromDate, toDate string) ([]DailyTeamSummary, error)
	FindByCompanyDate(ctx context.Context, companyID, date string) ([]DailyTeamSummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, s *DailyTeamSummary) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO daily_team_summaries (
			id, company_id, team_id, date,
			is_work_day, is_holiday,
			total_members, on_leave_count, expected_to_check_in,
			checked_in_count, not_checked_in_count,
			green_count, yellow_count, red_count,
			avg_readiness_score, compliance_rate,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (team_id, date) DO UPDATE SET
			is_work_day = EXCLUDED.is_work_day,
			is_holiday = EXCLUDED.is_holiday,
			total_members = EXCLUDED.total_members,
			on_leave_count = EXCLUDED.on_leave_count,
			expected_to_check_in = EXCLUDED.expected_to_check_in,
			checked_in_count = EXCLUDED.checked_in_count,
			not_checked_in_count = EXCLUDED.not_checked_in_count,
			green_count = EXCLUDED.green_count,
			yellow_count = EXCLUDED.yellow_count,
			red_count = EXCLUDED.red_count,
			avg_readiness_score = EXCLUDED.avg_readiness_score,
			compliance_rate = EXCLUDED.compliance_rate,
			updated_at = now()
	`,
		s.ID, s.CompanyID, s.TeamID, s.Date,
		s.IsWorkDay, s.IsHoliday,
		s.TotalMembers, s.OnLeaveCount, s.ExpectedToCheckIn,
		s.CheckedInCount, s.NotCheckedInCount,
		s.GreenCount, s.YellowCount, s.RedCount,
		s.AvgReadinessScore, s.ComplianceRate,
	).Error
}

func (r *repository) FindByTeamAndDate(ctx context.Context, teamID, date string) (*DailyTeamSummary, error) {
	var s DailyTeamSummary
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("date = ?", date).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByTeamRange(ctx context.Context, teamID, fromDate, toDate string) ([]DailyTeamSummary, error) {
	var rows []DailyTeamSummary
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("date >= ? AND date <= ?", fromDate, toDate).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByCompanyDate(ctx context.Context, companyID, date string) ([]DailyTeamSummary, error) {
	var rows []DailyTeamSummary
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("date = ?", date).
		Find(&rows).Error
	return rows, err
}
