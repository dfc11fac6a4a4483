package holiday

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, companyID, id string) error
	FindByID(ctx context.Context, companyID, id string) (*Holiday, error)
	// ExistsOnDate tests holiday coverage for a company-local calendar date.
	ExistsOnDate(ctx context.Context, companyID, date string) (bool, error)
	FindByCompanyRange(ctx context.Context, companyID, fromDate, toDate string) ([]Holiday, error)
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

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		Delete(&Holiday{}).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Holiday, error) {
	var h Holiday
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repository) ExistsOnDate(ctx context.Context, companyID, date string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Holiday{}).
		Where("company_id = ?", companyID).
		Where("date = ?", date).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByCompanyRange(ctx context.Context, companyID, fromDate, toDate string) ([]Holiday, error) {
	var holidays []Holiday
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("date >= ? AND date <= ?", fromDate, toDate).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}
