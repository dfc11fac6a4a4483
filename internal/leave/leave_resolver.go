package leave

import (
	"context"
	"errors"
	"time"

	leaveerrors "go-readiness/internal/leave/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-readiness/internal/calendar"
	"go-readiness/internal/company"
	"go-readiness/internal/user"
)

// ReturnGraceDays is the "welcome back" window: after a leave ends, the
// worker reads as returning for this many calendar days or until their
// first check-in after the leave, whichever comes first.
const ReturnGraceDays = 3

// CheckinReader is the slice of the check-in store the resolver needs.
type CheckinReader interface {
	LastCheckinAt(ctx context.Context, userID string) (*time.Time, error)
}

//go:generate mockgen -source=leave_resolver.go -destination=mock/leave_resolver_mock.go -package=mock
type Resolver interface {
	// IsOnLeave reports whether an approved exception covers the given
	// company-local calendar date, both ends inclusive.
	IsOnLeave(ctx context.Context, userID, date string) (bool, error)
	// Status resolves the worker's current leave state.
	Status(ctx context.Context, userID string) (LeaveStatus, error)
}

type resolver struct {
	repo       Repository
	userRepo   user.Repository
	companySvc company.Service
	checkins   CheckinReader
	logger     *zap.Logger
	now        func() time.Time
}

func NewResolver(repo Repository, userRepo user.Repository, companySvc company.Service, checkins CheckinReader, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("leave.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.resolver")
	}
	return &resolver{
		repo:       repo,
		userRepo:   userRepo,
		companySvc: companySvc,
		checkins:   checkins,
		logger:     l,
		now:        time.Now,
	}
}

func (r *resolver) IsOnLeave(ctx context.Context, userID, date string) (bool, error) {
	if _, err := calendar.ParseDate(date); err != nil {
		return false, err
	}

	_, err := r.repo.FindApprovedCovering(ctx, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *resolver) Status(ctx context.Context, userID string) (LeaveStatus, error) {
	u, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveStatus{}, leaveerrors.ErrUserNotFound
		}
		return LeaveStatus{}, err
	}

	loc, err := r.companySvc.LocationOf(ctx, u.CompanyID.String())
	if err != nil {
		return LeaveStatus{}, err
	}

	now := r.now()
	today := calendar.LocalDate(now, loc)

	var status LeaveStatus

	// end_date is inclusive, so a leave ending today still reports
	// on-leave for the whole of today.
	current, err := r.repo.FindApprovedCovering(ctx, userID, today)
	switch {
	case err == nil:
		status.OnLeave = true
		resp := mapToResponse(*current)
		status.CurrentException = &resp
		return status, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return LeaveStatus{}, err
	}

	last, err := r.repo.FindLastEndedApproved(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, nil
		}
		return LeaveStatus{}, err
	}

	resp := mapToResponse(*last)
	status.LastException = &resp

	endDate := last.EndDate.UTC().Format(calendar.DateLayout)
	daysSinceEnd, err := calendar.DaysBetween(endDate, today)
	if err != nil {
		return LeaveStatus{}, err
	}
	if daysSinceEnd < 1 || daysSinceEnd > ReturnGraceDays {
		return status, nil
	}

	// Still inside the grace window; the returning flag drops as soon as
	// the worker checks in after the leave's last day.
	leaveEnd, err := calendar.EndOfDay(endDate, loc)
	if err != nil {
		return LeaveStatus{}, err
	}
	lastCheckin, err := r.checkins.LastCheckinAt(ctx, userID)
	if err != nil {
		return LeaveStatus{}, err
	}
	status.Returning = lastCheckin == nil || !lastCheckin.After(leaveEnd)

	return status, nil
}
