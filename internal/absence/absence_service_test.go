package absence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	absenceerrors "go-readiness/internal/absence/errors"
	"go-readiness/internal/calendar"
	"go-readiness/internal/checkin"
	"go-readiness/internal/holiday"
	"go-readiness/internal/leave"
	"go-readiness/internal/messaging/kafka"
	"go-readiness/internal/team"
	"go-readiness/internal/user"
)

type fakeAbsenceRepo struct {
	createFn              func(ctx context.Context, a *Absence) error
	updateFn              func(ctx context.Context, a *Absence) error
	findByIDAndCompanyFn  func(ctx context.Context, companyID, id string) (*Absence, error)
	findByUserDateRangeFn func(ctx context.Context, userID, fromDate, toDate string) ([]Absence, error)
}

func (f *fakeAbsenceRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeAbsenceRepo) Create(ctx context.Context, a *Absence) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}
func (f *fakeAbsenceRepo) Update(ctx context.Context, a *Absence) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}
func (f *fakeAbsenceRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Absence, error) {
	return f.findByIDAndCompanyFn(ctx, companyID, id)
}
func (f *fakeAbsenceRepo) FindByUserDateRange(ctx context.Context, userID, fromDate, toDate string) ([]Absence, error) {
	if f.findByUserDateRangeFn != nil {
		return f.findByUserDateRangeFn(ctx, userID, fromDate, toDate)
	}
	return nil, nil
}
func (f *fakeAbsenceRepo) FindUnjustifiedByUser(ctx context.Context, userID string) ([]Absence, error) {
	return nil, nil
}
func (f *fakeAbsenceRepo) FindPendingReviewByTeam(ctx context.Context, teamID string) ([]Absence, error) {
	return nil, nil
}
func (f *fakeAbsenceRepo) HasUnjustified(ctx context.Context, userID string) (bool, error) {
	return false, nil
}
func (f *fakeAbsenceRepo) FindHistoryByUser(ctx context.Context, userID string, limit int) ([]Absence, error) {
	return nil, nil
}
func (f *fakeAbsenceRepo) CountByStatusForUser(ctx context.Context, userID string) ([]StatusCount, error) {
	return nil, nil
}
func (f *fakeAbsenceRepo) FindExcusedByUsersOnDate(ctx context.Context, userIDs []string, date string) ([]Absence, error) {
	return nil, nil
}

type fakeUserRepo struct {
	findByIDFn                func(ctx context.Context, id string) (*user.User, error)
	findActiveWorkersByTeamFn func(ctx context.Context, teamID string) ([]user.User, error)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindActiveWorkersByTeam(ctx context.Context, teamID string) ([]user.User, error) {
	return f.findActiveWorkersByTeamFn(ctx, teamID)
}
func (f *fakeUserRepo) FindActiveByTeam(ctx context.Context, teamID string) ([]user.User, error) {
	return nil, nil
}

type fakeTeamRepo struct {
	findByIDFn func(ctx context.Context, id string) (*team.Team, error)
}

func (f *fakeTeamRepo) FindByID(ctx context.Context, id string) (*team.Team, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeTeamRepo) FindActiveByCompany(ctx context.Context, companyID string) ([]team.Team, error) {
	return nil, nil
}

type fakeCompanyService struct {
	loc *time.Location
}

func (f *fakeCompanyService) LocationOf(ctx context.Context, companyID string) (*time.Location, error) {
	return f.loc, nil
}

type fakeHolidayRepo struct {
	findByCompanyRangeFn func(ctx context.Context, companyID, fromDate, toDate string) ([]holiday.Holiday, error)
}

func (f *fakeHolidayRepo) WithTx(tx *sql.Tx) holiday.Repository             { return f }
func (f *fakeHolidayRepo) Create(ctx context.Context, h *holiday.Holiday) error { return nil }
func (f *fakeHolidayRepo) Delete(ctx context.Context, companyID, id string) error {
	return nil
}
func (f *fakeHolidayRepo) FindByID(ctx context.Context, companyID, id string) (*holiday.Holiday, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeHolidayRepo) ExistsOnDate(ctx context.Context, companyID, date string) (bool, error) {
	return false, nil
}
func (f *fakeHolidayRepo) FindByCompanyRange(ctx context.Context, companyID, fromDate, toDate string) ([]holiday.Holiday, error) {
	if f.findByCompanyRangeFn != nil {
		return f.findByCompanyRangeFn(ctx, companyID, fromDate, toDate)
	}
	return nil, nil
}

type fakeLeaveRepo struct {
	findApprovedOverlappingRangeFn func(ctx context.Context, userID, fromDate, toDate string) ([]leave.Exception, error)
}

func (f *fakeLeaveRepo) WithTx(tx *sql.Tx) leave.Repository                 { return f }
func (f *fakeLeaveRepo) Create(ctx context.Context, e *leave.Exception) error { return nil }
func (f *fakeLeaveRepo) Update(ctx context.Context, e *leave.Exception) error { return nil }
func (f *fakeLeaveRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.Exception, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveRepo) FindAllByUser(ctx context.Context, userID string) ([]leave.Exception, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) HasOverlappingPeriod(ctx context.Context, userID, startDate, endDate string, excludeID *string) (bool, error) {
	return false, nil
}
func (f *fakeLeaveRepo) FindApprovedCovering(ctx context.Context, userID, date string) (*leave.Exception, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveRepo) FindApprovedCoveringUsers(ctx context.Context, userIDs []string, date string) ([]leave.Exception, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) FindLastEndedApproved(ctx context.Context, userID, date string) (*leave.Exception, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveRepo) FindApprovedOverlappingRange(ctx context.Context, userID, fromDate, toDate string) ([]leave.Exception, error) {
	if f.findApprovedOverlappingRangeFn != nil {
		return f.findApprovedOverlappingRangeFn(ctx, userID, fromDate, toDate)
	}
	return nil, nil
}

type fakeCheckinRepo struct {
	findFirstByUserFn     func(ctx context.Context, userID string) (*checkin.Checkin, error)
	findByUserDateRangeFn func(ctx context.Context, userID, fromDate, toDate string) ([]checkin.Checkin, error)
}

func (f *fakeCheckinRepo) WithTx(tx *sql.Tx) checkin.Repository { return f }
func (f *fakeCheckinRepo) Create(ctx context.Context, c *checkin.Checkin) error {
	return nil
}
func (f *fakeCheckinRepo) FindByID(ctx context.Context, companyID, id string) (*checkin.Checkin, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCheckinRepo) FindByUserAndDate(ctx context.Context, userID, date string) (*checkin.Checkin, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCheckinRepo) FindRecentByUser(ctx context.Context, userID string, limit int) ([]checkin.Checkin, error) {
	return nil, nil
}
func (f *fakeCheckinRepo) FindByUsersWithin(ctx context.Context, userIDs []string, from, to time.Time) ([]checkin.Checkin, error) {
	return nil, nil
}
func (f *fakeCheckinRepo) FindByUserDateRange(ctx context.Context, userID, fromDate, toDate string) ([]checkin.Checkin, error) {
	if f.findByUserDateRangeFn != nil {
		return f.findByUserDateRangeFn(ctx, userID, fromDate, toDate)
	}
	return nil, nil
}
func (f *fakeCheckinRepo) FindFirstByUser(ctx context.Context, userID string) (*checkin.Checkin, error) {
	if f.findFirstByUserFn != nil {
		return f.findFirstByUserFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeCheckinRepo) LastCheckinAt(ctx context.Context, userID string) (*time.Time, error) {
	return nil, nil
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeRecalculator struct {
	calls []string
}

func (f *fakeRecalculator) RecalculateTeamDate(ctx context.Context, teamID, date string) error {
	f.calls = append(f.calls, teamID+"|"+date)
	return nil
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func dateAt(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := calendar.DBDate(date)
	require.NoError(t, err)
	return d
}

func newDetectionService(
	t *testing.T,
	db *sql.DB,
	loc *time.Location,
	u *user.User,
	tm *team.Team,
	repo *fakeAbsenceRepo,
	checkinRepo *fakeCheckinRepo,
	holidayRepo *fakeHolidayRepo,
	leaveRepo *fakeLeaveRepo,
	now time.Time,
) Service {
	t.Helper()

	userRepo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*user.User, error) { return u, nil },
	}
	teamRepo := &fakeTeamRepo{
		findByIDFn: func(ctx context.Context, id string) (*team.Team, error) { return tm, nil },
	}

	svc := NewService(
		db, repo, userRepo, teamRepo,
		&fakeCompanyService{loc: loc},
		holidayRepo, leaveRepo, checkinRepo,
		nil, nil,
	)
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestService_DetectAndCreate_FindsGaps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loc := mustLocation(t, "Asia/Manila")
	teamID := uuid.New()
	u := &user.User{ID: uuid.New(), CompanyID: uuid.New(), TeamID: &teamID}
	tm := &team.Team{ID: teamID, WorkDays: "MON,TUE,WED,THU,FRI", ShiftStart: "09:00", ShiftEnd: "17:00"}

	var created []Absence
	repo := &fakeAbsenceRepo{
		createFn: func(ctx context.Context, a *Absence) error {
			created = append(created, *a)
			return nil
		},
	}
	checkinRepo := &fakeCheckinRepo{
		findFirstByUserFn: func(ctx context.Context, userID string) (*checkin.Checkin, error) {
			return &checkin.Checkin{CheckinDate: dateAt(t, "2026-03-09")}, nil
		},
		findByUserDateRangeFn: func(ctx context.Context, userID, fromDate, toDate string) ([]checkin.Checkin, error) {
			return []checkin.Checkin{
				{CheckinDate: dateAt(t, "2026-03-09")},
				{CheckinDate: dateAt(t, "2026-03-11")},
			}, nil
		},
	}
	holidayRepo := &fakeHolidayRepo{
		findByCompanyRangeFn: func(ctx context.Context, companyID, fromDate, toDate string) ([]holiday.Holiday, error) {
			return []holiday.Holiday{{Date: dateAt(t, "2026-03-10")}}, nil
		},
	}

	// Friday 18:00 Manila, after shift end, so today is in scope.
	now := time.Date(2026, 3, 13, 18, 0, 0, 0, loc)
	svc := newDetectionService(t, db, loc, u, tm, repo, checkinRepo, holidayRepo, &fakeLeaveRepo{}, now)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.DetectAndCreate(context.Background(), u.CompanyID.String(), u.ID.String())
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "2026-03-12", resp[0].AbsenceDate)
	assert.Equal(t, "2026-03-13", resp[1].AbsenceDate)
	for _, a := range created {
		assert.Equal(t, StatusPendingJustification, a.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DetectAndCreate_TodayExcludedBeforeShiftEnd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loc := mustLocation(t, "Asia/Manila")
	teamID := uuid.New()
	u := &user.User{ID: uuid.New(), CompanyID: uuid.New(), TeamID: &teamID}
	tm := &team.Team{ID: teamID, WorkDays: "MON,TUE,WED,THU,FRI", ShiftStart: "09:00", ShiftEnd: "17:00"}

	repo := &fakeAbsenceRepo{}
	checkinRepo := &fakeCheckinRepo{
		findFirstByUserFn: func(ctx context.Context, userID string) (*checkin.Checkin, error) {
			return &checkin.Checkin{CheckinDate: dateAt(t, "2026-03-12")}, nil
		},
		findByUserDateRangeFn: func(ctx context.Context, userID, fromDate, toDate string) ([]checkin.Checkin, error) {
			return []checkin.Checkin{{CheckinDate: dateAt(t, "2026-03-12")}}, nil
		},
	}

	// Friday 09:30 Manila, mid shift: the scan must stop at Thursday.
	now := time.Date(2026, 3, 13, 9, 30, 0, 0, loc)
	svc := newDetectionService(t, db, loc, u, tm, repo, checkinRepo, &fakeHolidayRepo{}, &fakeLeaveRepo{}, now)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.DetectAndCreate(context.Background(), u.CompanyID.String(), u.ID.String())
	require.NoError(t, err)
	assert.Empty(t, resp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DetectAndCreate_LeaveAndExistingAbsenceCoverage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loc := mustLocation(t, "Asia/Manila")
	teamID := uuid.New()
	u := &user.User{ID: uuid.New(), CompanyID: uuid.New(), TeamID: &teamID}
	tm := &team.Team{ID: teamID, WorkDays: "MON,TUE,WED,THU,FRI", ShiftStart: "09:00", ShiftEnd: "17:00"}

	var created []Absence
	repo := &fakeAbsenceRepo{
		createFn: func(ctx context.Context, a *Absence) error {
			created = append(created, *a)
			return nil
		},
		findByUserDateRangeFn: func(ctx context.Context, userID, fromDate, toDate string) ([]Absence, error) {
			return []Absence{{AbsenceDate: dateAt(t, "2026-03-12")}}, nil
		},
	}
	checkinRepo := &fakeCheckinRepo{
		findFirstByUserFn: func(ctx context.Context, userID string) (*checkin.Checkin, error) {
			return &checkin.Checkin{CheckinDate: dateAt(t, "2026-03-09")}, nil
		},
		findByUserDateRangeFn: func(ctx context.Context, userID, fromDate, toDate string) ([]checkin.Checkin, error) {
			return []checkin.Checkin{{CheckinDate: dateAt(t, "2026-03-09")}}, nil
		},
	}
	leaveRepo := &fakeLeaveRepo{
		findApprovedOverlappingRangeFn: func(ctx context.Context, userID, fromDate, toDate string) ([]leave.Exception, error) {
			return []leave.Exception{{
				Status:    leave.StatusApproved,
				StartDate: dateAt(t, "2026-03-10"),
				EndDate:   dateAt(t, "2026-03-11"),
			}}, nil
		},
	}

	// Everything between the first check-in and Thursday is covered by a
	// check-in, an approved leave or an already-detected absence. Re-running
	// the scan creates nothing.
	now := time.Date(2026, 3, 13, 8, 0, 0, 0, loc)
	svc := newDetectionService(t, db, loc, u, tm, repo, checkinRepo, &fakeHolidayRepo{}, leaveRepo, now)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.DetectAndCreate(context.Background(), u.CompanyID.String(), u.ID.String())
	require.NoError(t, err)
	assert.Empty(t, resp)
	assert.Empty(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DetectAndCreate_SkipsNonWorkDays(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loc := mustLocation(t, "Asia/Manila")
	teamID := uuid.New()
	u := &user.User{ID: uuid.New(), CompanyID: uuid.New(), TeamID: &teamID}
	tm := &team.Team{ID: teamID, WorkDays: "MON,TUE,WED,THU,FRI", ShiftStart: "09:00", ShiftEnd: "17:00"}

	var created []Absence
	repo := &fakeAbsenceRepo{
		createFn: func(ctx context.Context, a *Absence) error {
			created = append(created, *a)
			return nil
		},
	}
	checkinRepo := &fakeCheckinRepo{
		findFirstByUserFn: func(ctx context.Context, userID string) (*checkin.Checkin, error) {
			return &checkin.Checkin{CheckinDate: dateAt(t, "2026-03-13")}, nil
		},
		findByUserDateRangeFn: func(ctx context.Context, userID, fromDate, toDate string) ([]checkin.Checkin, error) {
			return []checkin.Checkin{{CheckinDate: dateAt(t, "2026-03-13")}}, nil
		},
	}

	// Monday morning: Saturday and Sunday sit between the last check-in and
	// today but are not work days, so no absence is created for them.
	now := time.Date(2026, 3, 16, 8, 0, 0, 0, loc)
	svc := newDetectionService(t, db, loc, u, tm, repo, checkinRepo, &fakeHolidayRepo{}, &fakeLeaveRepo{}, now)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.DetectAndCreate(context.Background(), u.CompanyID.String(), u.ID.String())
	require.NoError(t, err)
	assert.Empty(t, resp)
	assert.Empty(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_DetectAndCreate_NoTeam(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	u := &user.User{ID: uuid.New(), CompanyID: uuid.New()}
	userRepo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*user.User, error) { return u, nil },
	}

	svc := NewService(
		db, &fakeAbsenceRepo{}, userRepo, &fakeTeamRepo{},
		&fakeCompanyService{loc: time.UTC},
		&fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeCheckinRepo{},
		nil, nil,
	)

	resp, err := svc.DetectAndCreate(context.Background(), u.CompanyID.String(), u.ID.String())
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestService_DetectForTeam_IsolatesWorkerFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	loc := mustLocation(t, "Asia/Manila")
	teamID := uuid.New()
	companyID := uuid.New()
	broken := user.User{ID: uuid.New(), CompanyID: companyID, TeamID: &teamID}
	healthy := user.User{ID: uuid.New(), CompanyID: companyID, TeamID: &teamID}
	tm := &team.Team{ID: teamID, WorkDays: "MON,TUE,WED,THU,FRI", ShiftStart: "09:00", ShiftEnd: "17:00"}

	userRepo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
			if id == broken.ID.String() {
				return nil, gorm.ErrRecordNotFound
			}
			return &healthy, nil
		},
		findActiveWorkersByTeamFn: func(ctx context.Context, teamID string) ([]user.User, error) {
			return []user.User{broken, healthy}, nil
		},
	}
	teamRepo := &fakeTeamRepo{
		findByIDFn: func(ctx context.Context, id string) (*team.Team, error) { return tm, nil },
	}
	checkinRepo := &fakeCheckinRepo{
		findFirstByUserFn: func(ctx context.Context, userID string) (*checkin.Checkin, error) {
			return &checkin.Checkin{CheckinDate: dateAt(t, "2026-03-12")}, nil
		},
	}

	svc := NewService(
		db, &fakeAbsenceRepo{}, userRepo, teamRepo,
		&fakeCompanyService{loc: loc},
		&fakeHolidayRepo{}, &fakeLeaveRepo{}, checkinRepo,
		nil, nil,
	)
	svc.(*service).now = func() time.Time {
		return time.Date(2026, 3, 13, 18, 0, 0, 0, loc)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	reports, err := svc.DetectForTeam(context.Background(), companyID.String(), teamID.String())
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, broken.ID.String(), reports[0].UserID)
	assert.NotEmpty(t, reports[0].Error)

	assert.Equal(t, healthy.ID.String(), reports[1].UserID)
	assert.Empty(t, reports[1].Error)
	require.Len(t, reports[1].Created, 1)
	assert.Equal(t, "2026-03-13", reports[1].Created[0].AbsenceDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Justify(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()
	otherUser := uuid.New()

	newRow := func(owner uuid.UUID) *Absence {
		return &Absence{
			ID:          uuid.New(),
			CompanyID:   companyID,
			TeamID:      uuid.New(),
			UserID:      owner,
			AbsenceDate: time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC),
			Status:      StatusPendingJustification,
		}
	}

	t.Run("success keeps status pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		row := newRow(userID)
		var updated *Absence
		repo := &fakeAbsenceRepo{
			findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Absence, error) {
				return row, nil
			},
			updateFn: func(ctx context.Context, a *Absence) error {
				updated = a
				return nil
			},
		}
		userRepo := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: userID, CompanyID: companyID}, nil
			},
		}
		svc := NewService(db, repo, userRepo, &fakeTeamRepo{}, &fakeCompanyService{loc: time.UTC},
			&fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeCheckinRepo{}, nil, nil)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Justify(context.Background(), userID.String(), row.ID.String(), JustifyAbsenceRequest{
			ReasonCategory: "SICK",
			Explanation:    "food poisoning",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPendingJustification, resp.Status)
		assert.NotNil(t, resp.JustifiedAt)
		require.NotNil(t, updated)
		assert.NotNil(t, updated.JustifiedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		row := newRow(otherUser)
		repo := &fakeAbsenceRepo{
			findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Absence, error) {
				return row, nil
			},
		}
		userRepo := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: userID, CompanyID: companyID}, nil
			},
		}
		svc := NewService(db, repo, userRepo, &fakeTeamRepo{}, &fakeCompanyService{loc: time.UTC},
			&fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeCheckinRepo{}, nil, nil)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err = svc.Justify(context.Background(), userID.String(), row.ID.String(), JustifyAbsenceRequest{
			ReasonCategory: "SICK",
			Explanation:    "x",
		})
		assert.ErrorIs(t, err, absenceerrors.ErrNotOwner)
	})

	t.Run("rejects double justification", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		row := newRow(userID)
		justifiedAt := time.Now().UTC()
		row.JustifiedAt = &justifiedAt
		repo := &fakeAbsenceRepo{
			findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Absence, error) {
				return row, nil
			},
		}
		userRepo := &fakeUserRepo{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return &user.User{ID: userID, CompanyID: companyID}, nil
			},
		}
		svc := NewService(db, repo, userRepo, &fakeTeamRepo{}, &fakeCompanyService{loc: time.UTC},
			&fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeCheckinRepo{}, nil, nil)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err = svc.Justify(context.Background(), userID.String(), row.ID.String(), JustifyAbsenceRequest{
			ReasonCategory: "SICK",
			Explanation:    "x",
		})
		assert.ErrorIs(t, err, absenceerrors.ErrAlreadyJustified)
	})
}

func TestService_Review(t *testing.T) {
	companyID := uuid.New()
	reviewerID := uuid.New()
	justifiedAt := time.Now().UTC()

	newRow := func() *Absence {
		return &Absence{
			ID:          uuid.New(),
			CompanyID:   companyID,
			TeamID:      uuid.New(),
			UserID:      uuid.New(),
			AbsenceDate: time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC),
			Status:      StatusPendingJustification,
			JustifiedAt: &justifiedAt,
		}
	}

	newSvc := func(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, recalc SummaryRecalculator) Service {
		return NewService(db, repo, &fakeUserRepo{}, &fakeTeamRepo{}, &fakeCompanyService{loc: time.UTC},
			&fakeHolidayRepo{}, &fakeLeaveRepo{}, &fakeCheckinRepo{}, outbox, recalc)
	}

	t.Run("excused review emits event and recomputes the day", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		row := newRow()
		repo := &fakeAbsenceRepo{
			findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Absence, error) {
				return row, nil
			},
		}
		outbox := &fakeOutboxRepo{}
		recalc := &fakeRecalculator{}
		svc := newSvc(db, repo, outbox, recalc)

		mock.ExpectBegin()
		mock.ExpectCommit()
		resp, err := svc.Review(context.Background(), companyID.String(), reviewerID.String(), row.ID.String(), ReviewAbsenceRequest{
			Status:      StatusExcused,
			ReviewNotes: "doctor's note attached",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusExcused, resp.Status)
		assert.Equal(t, reviewerID.String(), *resp.ReviewedBy)
		assert.NotNil(t, resp.ReviewedAt)

		require.Len(t, outbox.created, 1)
		assert.Equal(t, "absence_reviewed", outbox.created[0].EventType)

		require.Len(t, recalc.calls, 1)
		assert.Equal(t, row.TeamID.String()+"|2026-03-12", recalc.calls[0])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects review before justification", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		row := newRow()
		row.JustifiedAt = nil
		repo := &fakeAbsenceRepo{
			findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Absence, error) {
				return row, nil
			},
		}
		svc := newSvc(db, repo, nil, nil)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err = svc.Review(context.Background(), companyID.String(), reviewerID.String(), row.ID.String(), ReviewAbsenceRequest{
			Status: StatusUnexcused,
		})
		assert.ErrorIs(t, err, absenceerrors.ErrNotYetJustified)
	})

	t.Run("rejects second review", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		row := newRow()
		row.Status = StatusUnexcused
		repo := &fakeAbsenceRepo{
			findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Absence, error) {
				return row, nil
			},
		}
		svc := newSvc(db, repo, nil, nil)

		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err = svc.Review(context.Background(), companyID.String(), reviewerID.String(), row.ID.String(), ReviewAbsenceRequest{
			Status: StatusExcused,
		})
		assert.ErrorIs(t, err, absenceerrors.ErrAlreadyReviewed)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		svc := newSvc(db, &fakeAbsenceRepo{}, nil, nil)
		_, err = svc.Review(context.Background(), companyID.String(), reviewerID.String(), uuid.New().String(), ReviewAbsenceRequest{
			Status: "MAYBE",
		})
		assert.ErrorIs(t, err, absenceerrors.ErrInvalidReviewStatus)
	})
}
