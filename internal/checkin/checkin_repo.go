package checkin

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=checkin_repo.go -destination=mock/checkin_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Checkin) error
	FindByID(ctx context.Context, companyID, id string) (*Checkin, error)
	// FindByUserAndDate looks up the check-in for a company-local calendar
	// date, if any.
	FindByUserAndDate(ctx context.Context, userID, date string) (*Checkin, error)
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]Checkin, error)
	// FindByUsersWithin returns all check-ins of the given users submitted
	// within [from, to], instants resolved by the caller from the
	// company-local day bounds.
	FindByUsersWithin(ctx context.Context, userIDs []string, from, to time.Time) ([]Checkin, error)
	// FindByUserDateRange returns check-ins whose calendar date falls in
	// [fromDate, toDate].
	FindByUserDateRange(ctx context.Context, userID, fromDate, toDate string) ([]Checkin, error)
	FindFirstByUser(ctx context.Context, userID string) (*Checkin, error)
	// LastCheckinAt returns the instant of the user's latest check-in, or
	// nil when they have never checked in.
	LastCheckinAt(ctx context.Context, userID string) (*time.Time, error)
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

func (r *repository) Create(ctx context.Context, c *Checkin) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Checkin, error) {
	var c Checkin
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID, date string) (*Checkin, error) {
	var c Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("checkin_date = ?", date).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]Checkin, error) {
	var rows []Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("checkin_date DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByUsersWithin(ctx context.Context, userIDs []string, from, to time.Time) ([]Checkin, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var rows []Checkin
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByUserDateRange(ctx context.Context, userID, fromDate, toDate string) ([]Checkin, error) {
	var rows []Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("checkin_date >= ? AND checkin_date <= ?", fromDate, toDate).
		Order("checkin_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindFirstByUser(ctx context.Context, userID string) (*Checkin, error) {
	var c Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("checkin_date ASC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) LastCheckinAt(ctx context.Context, userID string) (*time.Time, error) {
	var c Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	t := c.CreatedAt
	return &t, nil
}
