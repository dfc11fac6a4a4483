package user

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindActiveWorkersByTeam returns active WORKER-role members of a team.
	FindActiveWorkersByTeam(ctx context.Context, teamID string) ([]User, error)
	// FindActiveByTeam returns all active members of a team regardless of role.
	FindActiveByTeam(ctx context.Context, teamID string) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindActiveWorkersByTeam(ctx context.Context, teamID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("role = ?", RoleWorker).
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindActiveByTeam(ctx context.Context, teamID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&users).Error
	return users, err
}
