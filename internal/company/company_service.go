package company

import (
	"context"
	"errors"
	"time"

	companyerrors "go-readiness/internal/company/errors"

	"gorm.io/gorm"

	"go-readiness/internal/calendar"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	// LocationOf resolves the company's IANA timezone to a *time.Location.
	LocationOf(ctx context.Context, companyID string) (*time.Location, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LocationOf(ctx context.Context, companyID string) (*time.Location, error) {
	c, err := s.repo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}
	return calendar.Location(c.Timezone)
}
