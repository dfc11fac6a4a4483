package team

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Team, error)
	FindActiveByCompany(ctx context.Context, companyID string) ([]Team, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Team, error) {
	var t Team
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&teams).Error
	return teams, err
}
