package absence

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type StatusCount struct {
	Status string
	Count  int64
}

//go:generate mockgen -source=absence_repo.go -destination=mock/absence_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Absence) error
	Update(ctx context.Context, a *Absence) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Absence, error)
	// FindByUserDateRange returns absences with absence_date in
	// [fromDate, toDate], any status.
	FindByUserDateRange(ctx context.Context, userID, fromDate, toDate string) ([]Absence, error)
	// FindUnjustifiedByUser returns PENDING_JUSTIFICATION absences without
	// a justification, oldest first.
	FindUnjustifiedByUser(ctx context.Context, userID string) ([]Absence, error)
	// FindPendingReviewByTeam returns justified-but-unreviewed absences of
	// a team, oldest first.
	FindPendingReviewByTeam(ctx context.Context, teamID string) ([]Absence, error)
	HasUnjustified(ctx context.Context, userID string) (bool, error)
	FindHistoryByUser(ctx context.Context, userID string, limit int) ([]Absence, error)
	CountByStatusForUser(ctx context.Context, userID string) ([]StatusCount, error)
	// FindExcusedByUsersOnDate returns EXCUSED absences of the given users
	// on the exact calendar date.
	FindExcusedByUsersOnDate(ctx context.Context, userIDs []string, date string) ([]Absence, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *Absence) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Absence) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Absence, error) {
	var a Absence
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByUserDateRange(ctx context.Context, userID, fromDate, toDate string) ([]Absence, error) {
	var rows []Absence
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("absence_date >= ? AND absence_date <= ?", fromDate, toDate).
		Order("absence_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindUnjustifiedByUser(ctx context.Context, userID string) ([]Absence, error) {
	var rows []Absence
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusPendingJustification).
		Where("justified_at IS NULL").
		Order("absence_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPendingReviewByTeam(ctx context.Context, teamID string) ([]Absence, error) {
	var rows []Absence
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("status = ?", StatusPendingJustification).
		Where("justified_at IS NOT NULL").
		Order("absence_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) HasUnjustified(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Absence{}).
		Where("user_id = ?", userID).
		Where("status = ?", StatusPendingJustification).
		Where("justified_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindHistoryByUser(ctx context.Context, userID string, limit int) ([]Absence, error) {
	var rows []Absence
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("absence_date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByStatusForUser(ctx context.Context, userID string) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).
		Model(&Absence{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error
	return counts, err
}

func (r *repository) FindExcusedByUsersOnDate(ctx context.Context, userIDs []string, date string) ([]Absence, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var rows []Absence
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("status = ?", StatusExcused).
		Where("absence_date = ?", date).
		Find(&rows).Error
	return rows, err
}
