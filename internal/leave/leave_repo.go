package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Exception) error
	Update(ctx context.Context, e *Exception) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Exception, error)
	FindAllByUser(ctx context.Context, userID string) ([]Exception, error)
	HasOverlappingPeriod(ctx context.Context, userID, startDate, endDate string, excludeID *string) (bool, error)

	// All date parameters are company-local YYYY-MM-DD strings; the date
	// columns are day-typed so these queries compare calendar days.

	// FindApprovedCovering returns the approved exception whose inclusive
	// range contains date, or gorm.ErrRecordNotFound.
	FindApprovedCovering(ctx context.Context, userID, date string) (*Exception, error)
	// FindApprovedCoveringUsers returns approved exceptions covering date
	// for any of the given users.
	FindApprovedCoveringUsers(ctx context.Context, userIDs []string, date string) ([]Exception, error)
	// FindLastEndedApproved returns the most recently ended approved
	// exception with end_date strictly before date.
	FindLastEndedApproved(ctx context.Context, userID, date string) (*Exception, error)
	// FindApprovedOverlappingRange returns approved exceptions overlapping
	// [fromDate, toDate].
	FindApprovedOverlappingRange(ctx context.Context, userID, fromDate, toDate string) ([]Exception, error)
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

func (r *repository) Create(ctx context.Context, e *Exception) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Exception) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Exception, error) {
	var e Exception
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Exception, error) {
	var exceptions []Exception
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&exceptions).Error
	return exceptions, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, userID, startDate, endDate string, excludeID *string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Exception{}).
		Where("user_id = ?", userID).
		Where("status <> ?", StatusRejected).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedCovering(ctx context.Context, userID, date string) (*Exception, error) {
	var e Exception
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Order("end_date DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindApprovedCoveringUsers(ctx context.Context, userIDs []string, date string) ([]Exception, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var exceptions []Exception
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Find(&exceptions).Error
	return exceptions, err
}

func (r *repository) FindLastEndedApproved(ctx context.Context, userID, date string) (*Exception, error) {
	var e Exception
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusApproved).
		Where("end_date < ?", date).
		Order("end_date DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindApprovedOverlappingRange(ctx context.Context, userID, fromDate, toDate string) ([]Exception, error) {
	var exceptions []Exception
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", toDate, fromDate).
		Find(&exceptions).Error
	return exceptions, err
}
