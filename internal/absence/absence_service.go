package absence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	absenceerrors "go-readiness/internal/absence/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-readiness/internal/calendar"
	"go-readiness/internal/checkin"
	"go-readiness/internal/company"
	"go-readiness/internal/events"
	"go-readiness/internal/holiday"
	"go-readiness/internal/leave"
	"go-readiness/internal/messaging/kafka"
	"go-readiness/internal/team"
	"go-readiness/internal/user"
)

// SummaryRecalculator mirrors checkin.SummaryRecalculator: an EXCUSED
// review changes that day's exemption union, so the summary for the
// absence date is recomputed best-effort after the review commits.
type SummaryRecalculator interface {
	RecalculateTeamDate(ctx context.Context, teamID, date string) error
}

//go:generate mockgen -source=absence_service.go -destination=mock/absence_service_mock.go -package=mock
type Service interface {
	// DetectAndCreate runs the fallback gap-scan for one worker: every
	// required-attendance day between the worker's baseline and today that
	// has no coverage gets a PENDING_JUSTIFICATION absence. Idempotent.
	DetectAndCreate(ctx context.Context, companyID, userID string) ([]AbsenceResponse, error)
	// DetectForTeam runs DetectAndCreate for every active worker of the
	// team. One worker's failure never aborts the others.
	DetectForTeam(ctx context.Context, companyID, teamID string) ([]DetectionReport, error)
	Justify(ctx context.Context, userID, absenceID string, req JustifyAbsenceRequest) (AbsenceResponse, error)
	Review(ctx context.Context, companyID, reviewerID, absenceID string, req ReviewAbsenceRequest) (AbsenceResponse, error)
	GetPendingJustifications(ctx context.Context, userID string) ([]AbsenceResponse, error)
	GetPendingReviews(ctx context.Context, teamID string) ([]AbsenceResponse, error)
	HasBlockingAbsences(ctx context.Context, userID string) (bool, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]AbsenceResponse, error)
	GetStatusCounts(ctx context.Context, userID string) (StatusCountsResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	userRepo    user.Repository
	teamRepo    team.Repository
	companySvc  company.Service
	holidayRepo holiday.Repository
	leaveRepo   leave.Repository
	checkinRepo checkin.Repository
	outboxRepo  kafka.OutboxRepository
	recalc      SummaryRecalculator
	logger      *zap.Logger
	now         func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	userRepo user.Repository,
	teamRepo team.Repository,
	companySvc company.Service,
	holidayRepo holiday.Repository,
	leaveRepo leave.Repository,
	checkinRepo checkin.Repository,
	outboxRepo kafka.OutboxRepository,
	recalc SummaryRecalculator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("absence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		companySvc:  companySvc,
		holidayRepo: holidayRepo,
		leaveRepo:   leaveRepo,
		checkinRepo: checkinRepo,
		outboxRepo:  outboxRepo,
		recalc:      recalc,
		logger:      l,
		now:         time.Now,
	}
}

func (s *service) DetectAndCreate(ctx context.Context, companyID, userID string) ([]AbsenceResponse, error) {
	s.logger.Debug("absence detection requested",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
	)

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, absenceerrors.ErrUserNotFound
		}
		return nil, err
	}
	if u.TeamID == nil {
		// No team, no attendance contract.
		return nil, nil
	}

	t, err := s.teamRepo.FindByID(ctx, u.TeamID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, absenceerrors.ErrTeamNotFound
		}
		return nil, err
	}

	loc, err := s.companySvc.LocationOf(ctx, companyID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	baseline, err := s.baselineDate(ctx, u, loc)
	if err != nil {
		return nil, err
	}

	lastDay, err := s.lastScanDay(t, loc, now)
	if err != nil {
		return nil, err
	}
	if baseline > lastDay {
		return nil, nil
	}

	covered, err := s.coverage(ctx, u, companyID, baseline, lastDay)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var created []AbsenceResponse
	for d := baseline; d <= lastDay; {
		weekday, err := calendar.WeekdayOfDate(d)
		if err != nil {
			return nil, err
		}

		if t.IsWorkDay(weekday) && !covered[d] {
			dbDate, err := calendar.DBDate(d)
			if err != nil {
				return nil, err
			}
			row := &Absence{
				ID:          uuid.New(),
				CompanyID:   u.CompanyID,
				TeamID:      *u.TeamID,
				UserID:      u.ID,
				AbsenceDate: dbDate,
				Status:      StatusPendingJustification,
			}
			if err := qtx.Create(ctx, row); err != nil {
				return nil, err
			}
			created = append(created, mapToResponse(*row))
		}

		d, err = calendar.AddDays(d, 1)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if len(created) > 0 {
		s.logger.Info("absence detection created records",
			zap.String("user_id", userID),
			zap.Int("count", len(created)),
		)
	}
	return created, nil
}

// baselineDate is the first day attendance can be required: the worker's
// first check-in date if any, else the day after joining the team, else
// the day after account creation.
func (s *service) baselineDate(ctx context.Context, u *user.User, loc *time.Location) (string, error) {
	first, err := s.checkinRepo.FindFirstByUser(ctx, u.ID.String())
	if err == nil {
		return first.CheckinDate.UTC().Format(calendar.DateLayout), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if u.TeamJoinedAt != nil {
		return calendar.AddDays(calendar.LocalDate(*u.TeamJoinedAt, loc), 1)
	}
	return calendar.AddDays(calendar.LocalDate(u.CreatedAt, loc), 1)
}

// lastScanDay includes today only once the team's shift has ended
// company-locally and today is a work day; otherwise the scan stops at
// yesterday.
func (s *service) lastScanDay(t *team.Team, loc *time.Location, now time.Time) (string, error) {
	today := calendar.LocalDate(now, loc)

	weekday, err := calendar.WeekdayOfDate(today)
	if err != nil {
		return "", err
	}
	if t.IsWorkDay(weekday) {
		passed, err := calendar.ClockPassed(today, t.ShiftEnd, loc, now)
		if err != nil {
			return "", err
		}
		if passed {
			return today, nil
		}
	}
	return calendar.AddDays(today, -1)
}

// coverage collects, as a calendar-date-string set, every day in
// [fromDate, toDate] already accounted for by a check-in, holiday,
// approved leave or existing absence record.
func (s *service) coverage(ctx context.Context, u *user.User, companyID, fromDate, toDate string) (map[string]bool, error) {
	covered := make(map[string]bool)

	checkins, err := s.checkinRepo.FindByUserDateRange(ctx, u.ID.String(), fromDate, toDate)
	if err != nil {
		return nil, err
	}
	for _, c := range checkins {
		covered[c.CheckinDate.UTC().Format(calendar.DateLayout)] = true
	}

	holidays, err := s.holidayRepo.FindByCompanyRange(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	for _, h := range holidays {
		covered[h.Date.UTC().Format(calendar.DateLayout)] = true
	}

	exceptions, err := s.leaveRepo.FindApprovedOverlappingRange(ctx, u.ID.String(), fromDate, toDate)
	if err != nil {
		return nil, err
	}
	for _, e := range exceptions {
		start := e.StartDate.UTC().Format(calendar.DateLayout)
		end := e.EndDate.UTC().Format(calendar.DateLayout)
		if start < fromDate {
			start = fromDate
		}
		if end > toDate {
			end = toDate
		}
		for d := start; d <= end; {
			covered[d] = true
			d, err = calendar.AddDays(d, 1)
			if err != nil {
				return nil, err
			}
		}
	}

	existing, err := s.repo.FindByUserDateRange(ctx, u.ID.String(), fromDate, toDate)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		covered[a.AbsenceDate.UTC().Format(calendar.DateLayout)] = true
	}

	return covered, nil
}

func (s *service) DetectForTeam(ctx context.Context, companyID, teamID string) ([]DetectionReport, error) {
	members, err := s.userRepo.FindActiveWorkersByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	reports := make([]DetectionReport, 0, len(members))
	for _, m := range members {
		report := DetectionReport{UserID: m.ID.String()}

		created, err := s.DetectAndCreate(ctx, companyID, m.ID.String())
		if err != nil {
			s.logger.Error("absence detection failed for worker",
				zap.String("user_id", m.ID.String()),
				zap.String("team_id", teamID),
				zap.Error(err),
			)
			report.Error = err.Error()
		} else {
			report.Created = created
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *service) Justify(ctx context.Context, userID, absenceID string, req JustifyAbsenceRequest) (AbsenceResponse, error) {
	s.logger.Debug("justify absence requested",
		zap.String("absence_id", absenceID),
		zap.String("user_id", userID),
	)

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrUserNotFound
		}
		return AbsenceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AbsenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByIDAndCompany(ctx, u.CompanyID.String(), absenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}
	if a.UserID.String() != userID {
		return AbsenceResponse{}, absenceerrors.ErrNotOwner
	}
	if a.Terminal() {
		return AbsenceResponse{}, absenceerrors.ErrAlreadyReviewed
	}
	if a.Justified() {
		return AbsenceResponse{}, absenceerrors.ErrAlreadyJustified
	}

	now := time.Now().UTC()
	a.ReasonCategory = &req.ReasonCategory
	a.Explanation = &req.Explanation
	a.JustifiedAt = &now

	if err := qtx.Update(ctx, a); err != nil {
		return AbsenceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AbsenceResponse{}, err
	}

	s.logger.Info("justify absence success",
		zap.String("absence_id", absenceID),
		zap.String("user_id", userID),
	)
	return mapToResponse(*a), nil
}

func (s *service) Review(ctx context.Context, companyID, reviewerID, absenceID string, req ReviewAbsenceRequest) (AbsenceResponse, error) {
	s.logger.Debug("review absence requested",
		zap.String("absence_id", absenceID),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", req.Status),
	)

	if req.Status != StatusExcused && req.Status != StatusUnexcused {
		return AbsenceResponse{}, absenceerrors.ErrInvalidReviewStatus
	}
	reviewerUUID, err := uuid.Parse(reviewerID)
	if err != nil {
		return AbsenceResponse{}, absenceerrors.ErrUserNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AbsenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByIDAndCompany(ctx, companyID, absenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}
	if a.Terminal() {
		return AbsenceResponse{}, absenceerrors.ErrAlreadyReviewed
	}
	if !a.Justified() {
		return AbsenceResponse{}, absenceerrors.ErrNotYetJustified
	}

	now := time.Now().UTC()
	a.Status = req.Status
	a.ReviewedBy = &reviewerUUID
	a.ReviewedAt = &now
	if req.ReviewNotes != "" {
		a.ReviewNotes = &req.ReviewNotes
	}

	if err := qtx.Update(ctx, a); err != nil {
		return AbsenceResponse{}, err
	}

	if err := s.enqueueReviewedEvent(ctx, tx, a); err != nil {
		s.logger.Error("review absence outbox failed", zap.Error(err))
		return AbsenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AbsenceResponse{}, err
	}

	s.logger.Info("review absence success",
		zap.String("absence_id", absenceID),
		zap.String("status", req.Status),
	)

	// An EXCUSED decision changes the exemption union for that day.
	if s.recalc != nil {
		date := a.AbsenceDate.UTC().Format(calendar.DateLayout)
		if err := s.recalc.RecalculateTeamDate(ctx, a.TeamID.String(), date); err != nil {
			s.logger.Error("post-review summary recompute failed",
				zap.String("team_id", a.TeamID.String()),
				zap.String("date", date),
				zap.Error(err),
			)
		}
	}

	return mapToResponse(*a), nil
}

func (s *service) GetPendingJustifications(ctx context.Context, userID string) ([]AbsenceResponse, error) {
	rows, err := s.repo.FindUnjustifiedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetPendingReviews(ctx context.Context, teamID string) ([]AbsenceResponse, error) {
	rows, err := s.repo.FindPendingReviewByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) HasBlockingAbsences(ctx context.Context, userID string) (bool, error) {
	return s.repo.HasUnjustified(ctx, userID)
}

func (s *service) GetHistory(ctx context.Context, userID string, limit int) ([]AbsenceResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 60
	}
	rows, err := s.repo.FindHistoryByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetStatusCounts(ctx context.Context, userID string) (StatusCountsResponse, error) {
	counts, err := s.repo.CountByStatusForUser(ctx, userID)
	if err != nil {
		return StatusCountsResponse{}, err
	}

	var resp StatusCountsResponse
	for _, c := range counts {
		switch c.Status {
		case StatusPendingJustification:
			resp.PendingJustification = c.Count
		case StatusExcused:
			resp.Excused = c.Count
		case StatusUnexcused:
			resp.Unexcused = c.Count
		}
	}
	return resp, nil
}

func (s *service) enqueueReviewedEvent(ctx context.Context, tx *sql.Tx, a *Absence) error {
	if s.outboxRepo == nil {
		return nil
	}

	event := events.AbsenceReviewedEvent{
		EventType:   "absence_reviewed",
		AbsenceID:   a.ID.String(),
		UserID:      a.UserID.String(),
		TeamID:      a.TeamID.String(),
		CompanyID:   a.CompanyID.String(),
		AbsenceDate: a.AbsenceDate.UTC().Format(calendar.DateLayout),
		Status:      a.Status,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "absence",
		AggregateID:   a.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AbsenceReviewedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(a Absence) AbsenceResponse {
	resp := AbsenceResponse{
		ID:             a.ID.String(),
		CompanyID:      a.CompanyID.String(),
		TeamID:         a.TeamID.String(),
		UserID:         a.UserID.String(),
		AbsenceDate:    a.AbsenceDate.UTC().Format(calendar.DateLayout),
		Status:         a.Status,
		ReasonCategory: a.ReasonCategory,
		Explanation:    a.Explanation,
		ReviewNotes:    a.ReviewNotes,
	}
	if a.JustifiedAt != nil {
		v := a.JustifiedAt.Format(time.RFC3339)
		resp.JustifiedAt = &v
	}
	if a.ReviewedBy != nil {
		v := a.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if a.ReviewedAt != nil {
		v := a.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(rows []Absence) []AbsenceResponse {
	resp := make([]AbsenceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp
}
