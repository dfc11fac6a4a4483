package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-readiness/internal/user"

	"github.com/google/uuid"
)

type fakeCompanyService struct {
	loc *time.Location
}

func (f *fakeCompanyService) LocationOf(ctx context.Context, companyID string) (*time.Location, error) {
	return f.loc, nil
}

type fakeCheckins struct {
	lastCheckinAtFn func(ctx context.Context, userID string) (*time.Time, error)
}

func (f *fakeCheckins) LastCheckinAt(ctx context.Context, userID string) (*time.Time, error) {
	if f.lastCheckinAtFn != nil {
		return f.lastCheckinAtFn(ctx, userID)
	}
	return nil, nil
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func newTestResolver(t *testing.T, repo *fakeLeaveRepo, checkins *fakeCheckins, now time.Time) Resolver {
	t.Helper()
	loc := mustLocation(t, "Asia/Manila")

	workerID := uuid.New()
	companyID := uuid.New()
	userRepo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: workerID, CompanyID: companyID}, nil
		},
	}

	r := NewResolver(repo, userRepo, &fakeCompanyService{loc: loc}, checkins)
	r.(*resolver).now = func() time.Time { return now }
	return r
}

func TestResolver_IsOnLeave(t *testing.T) {
	repo := &fakeLeaveRepo{
		findApprovedCoveringFn: func(ctx context.Context, userID, date string) (*Exception, error) {
			if date == "2026-03-17" {
				return &Exception{ID: uuid.New(), Status: StatusApproved}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	r := newTestResolver(t, repo, &fakeCheckins{}, time.Now())

	covered, err := r.IsOnLeave(context.Background(), "worker-1", "2026-03-17")
	require.NoError(t, err)
	assert.True(t, covered)

	covered, err = r.IsOnLeave(context.Background(), "worker-1", "2026-03-19")
	require.NoError(t, err)
	assert.False(t, covered)

	_, err = r.IsOnLeave(context.Background(), "worker-1", "17-03-2026")
	assert.Error(t, err)
}

func TestResolver_Status_OnLeaveToday(t *testing.T) {
	loc := mustLocation(t, "Asia/Manila")
	now := time.Date(2026, 3, 18, 10, 0, 0, 0, loc)

	repo := &fakeLeaveRepo{
		findApprovedCoveringFn: func(ctx context.Context, userID, date string) (*Exception, error) {
			assert.Equal(t, "2026-03-18", date)
			return &Exception{
				ID:        uuid.New(),
				Status:    StatusApproved,
				StartDate: dateAt(t, "2026-03-16"),
				EndDate:   dateAt(t, "2026-03-18"),
			}, nil
		},
	}
	r := newTestResolver(t, repo, &fakeCheckins{}, now)

	status, err := r.Status(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.True(t, status.OnLeave)
	assert.False(t, status.Returning)
	require.NotNil(t, status.CurrentException)
	assert.Equal(t, "2026-03-18", status.CurrentException.EndDate)
}

func TestResolver_Status_ReturningWithinGrace(t *testing.T) {
	loc := mustLocation(t, "Asia/Manila")
	now := time.Date(2026, 3, 18, 10, 0, 0, 0, loc)

	repo := &fakeLeaveRepo{
		findLastEndedFn: func(ctx context.Context, userID, date string) (*Exception, error) {
			return &Exception{
				ID:        uuid.New(),
				Status:    StatusApproved,
				StartDate: dateAt(t, "2026-03-12"),
				EndDate:   dateAt(t, "2026-03-16"),
			}, nil
		},
	}

	// No check-in since the leave ended, so the worker reads as returning.
	r := newTestResolver(t, repo, &fakeCheckins{}, now)
	status, err := r.Status(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.False(t, status.OnLeave)
	assert.True(t, status.Returning)
	require.NotNil(t, status.LastException)
	assert.Equal(t, "2026-03-16", status.LastException.EndDate)
}

func TestResolver_Status_ReturningClearedByCheckin(t *testing.T) {
	loc := mustLocation(t, "Asia/Manila")
	now := time.Date(2026, 3, 18, 10, 0, 0, 0, loc)
	checkedInAt := time.Date(2026, 3, 17, 9, 5, 0, 0, loc)

	repo := &fakeLeaveRepo{
		findLastEndedFn: func(ctx context.Context, userID, date string) (*Exception, error) {
			return &Exception{
				ID:        uuid.New(),
				Status:    StatusApproved,
				StartDate: dateAt(t, "2026-03-12"),
				EndDate:   dateAt(t, "2026-03-16"),
			}, nil
		},
	}
	checkins := &fakeCheckins{
		lastCheckinAtFn: func(ctx context.Context, userID string) (*time.Time, error) {
			return &checkedInAt, nil
		},
	}

	r := newTestResolver(t, repo, checkins, now)
	status, err := r.Status(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.False(t, status.Returning)
	require.NotNil(t, status.LastException)
}

func TestResolver_Status_GraceExpired(t *testing.T) {
	loc := mustLocation(t, "Asia/Manila")
	now := time.Date(2026, 3, 22, 10, 0, 0, 0, loc)

	repo := &fakeLeaveRepo{
		findLastEndedFn: func(ctx context.Context, userID, date string) (*Exception, error) {
			return &Exception{
				ID:        uuid.New(),
				Status:    StatusApproved,
				StartDate: dateAt(t, "2026-03-12"),
				EndDate:   dateAt(t, "2026-03-16"),
			}, nil
		},
	}

	r := newTestResolver(t, repo, &fakeCheckins{}, now)
	status, err := r.Status(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.False(t, status.OnLeave)
	assert.False(t, status.Returning)
	require.NotNil(t, status.LastException)
}

func TestResolver_Status_NoHistory(t *testing.T) {
	loc := mustLocation(t, "Asia/Manila")
	now := time.Date(2026, 3, 18, 10, 0, 0, 0, loc)

	r := newTestResolver(t, &fakeLeaveRepo{}, &fakeCheckins{}, now)
	status, err := r.Status(context.Background(), "worker-1")
	require.NoError(t, err)
	assert.False(t, status.OnLeave)
	assert.False(t, status.Returning)
	assert.Nil(t, status.CurrentException)
	assert.Nil(t, status.LastException)
}
