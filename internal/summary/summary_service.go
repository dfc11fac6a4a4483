package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"go-readiness/internal/absence"
	"go-readiness/internal/calendar"
	"go-readiness/internal/checkin"
	"go-readiness/internal/company"
	"go-readiness/internal/holiday"
	"go-readiness/internal/leave"
	"go-readiness/internal/readiness"
	summaryerrors "go-readiness/internal/summary/errors"
	"go-readiness/internal/team"
	"go-readiness/internal/user"
)

const cacheTTL = 10 * time.Minute

func teamDateKey(teamID, date string) string {
	return fmt.Sprintf("summaries:team:%s:%s", teamID, date)
}

// ExcusedAbsenceReader is the slice of the absence repository the
// aggregator needs; absence.Repository satisfies it.
type ExcusedAbsenceReader interface {
	FindExcusedByUsersOnDate(ctx context.Context, userIDs []string, date string) ([]absence.Absence, error)
}

//go:generate mockgen -source=summary_service.go -destination=mock/summary_service_mock.go -package=mock
type Service interface {
	// Recalculate rebuilds the summary for one (team, date) key from
	// scratch and replaces any existing row. Safe to re-run; two runs with
	// no intervening data change produce identical rows.
	Recalculate(ctx context.Context, teamID, date string) (SummaryResponse, error)
	// RecalculateTeamDate is Recalculate without the result, shaped for
	// the write-side callers that only care about the error.
	RecalculateTeamDate(ctx context.Context, teamID, date string) error
	// RecalculateRange recomputes every day of an inclusive range, used
	// after a leave decision changes historical coverage. Per-day errors
	// are logged and the remaining days still run.
	RecalculateRange(ctx context.Context, teamID, fromDate, toDate string) error
	// RecalculateCompanyDate recomputes one date for every active team of
	// a company, used after a holiday is created or removed.
	RecalculateCompanyDate(ctx context.Context, companyID, date string) error
	GetTeamDate(ctx context.Context, teamID, date string) (SummaryResponse, error)
	GetTeamRange(ctx context.Context, teamID, fromDate, toDate string) ([]SummaryResponse, error)
	GetCompanyDate(ctx context.Context, companyID, date string) ([]SummaryResponse, error)
}

type service struct {
	repo        Repository
	teamRepo    team.Repository
	userRepo    user.Repository
	companySvc  company.Service
	holidayRepo holiday.Repository
	leaveRepo   leave.Repository
	checkinRepo checkin.Repository
	absenceRepo ExcusedAbsenceReader
	rdb         *redis.Client
	sf          *singleflight.Group
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	teamRepo team.Repository,
	userRepo user.Repository,
	companySvc company.Service,
	holidayRepo holiday.Repository,
	leaveRepo leave.Repository,
	checkinRepo checkin.Repository,
	absenceRepo ExcusedAbsenceReader,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("summary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.service")
	}
	return &service{
		repo:        repo,
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		companySvc:  companySvc,
		holidayRepo: holidayRepo,
		leaveRepo:   leaveRepo,
		checkinRepo: checkinRepo,
		absenceRepo: absenceRepo,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		logger:      l,
	}
}

func (s *service) Recalculate(ctx context.Context, teamID, date string) (SummaryResponse, error) {
	s.logger.Debug("summary recompute requested",
		zap.String("team_id", teamID),
		zap.String("date", date),
	)

	t, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SummaryResponse{}, summaryerrors.ErrTeamNotFound
		}
		return SummaryResponse{}, err
	}

	loc, err := s.companySvc.LocationOf(ctx, t.CompanyID.String())
	if err != nil {
		return SummaryResponse{}, err
	}

	members, err := s.userRepo.FindActiveWorkersByTeam(ctx, teamID)
	if err != nil {
		return SummaryResponse{}, err
	}
	memberIDs := make([]string, len(members))
	for i, m := range members {
		memberIDs[i] = m.ID.String()
	}

	weekday, err := calendar.WeekdayOfDate(date)
	if err != nil {
		return SummaryResponse{}, err
	}
	isWorkDay := t.IsWorkDay(weekday)

	isHoliday, err := s.holidayRepo.ExistsOnDate(ctx, t.CompanyID.String(), date)
	if err != nil {
		return SummaryResponse{}, err
	}

	// Exemption union: a member covered by both an approved leave and an
	// EXCUSED absence on the same day is subtracted exactly once.
	exempt := make(map[string]bool)
	covering, err := s.leaveRepo.FindApprovedCoveringUsers(ctx, memberIDs, date)
	if err != nil {
		return SummaryResponse{}, err
	}
	for _, e := range covering {
		exempt[e.UserID.String()] = true
	}
	excused, err := s.absenceRepo.FindExcusedByUsersOnDate(ctx, memberIDs, date)
	if err != nil {
		return SummaryResponse{}, err
	}
	for _, a := range excused {
		exempt[a.UserID.String()] = true
	}
	onLeaveCount := len(exempt)

	expected := 0
	if isWorkDay && !isHoliday {
		expected = len(members) - onLeaveCount
		if expected < 0 {
			expected = 0
		}
	}

	from, err := calendar.StartOfDay(date, loc)
	if err != nil {
		return SummaryResponse{}, err
	}
	to, err := calendar.EndOfDay(date, loc)
	if err != nil {
		return SummaryResponse{}, err
	}
	checkins, err := s.checkinRepo.FindByUsersWithin(ctx, memberIDs, from, to)
	if err != nil {
		return SummaryResponse{}, err
	}

	var green, yellow, red, scoreSum int
	for _, c := range checkins {
		switch c.ReadinessStatus {
		case readiness.StatusGreen:
			green++
		case readiness.StatusYellow:
			yellow++
		case readiness.StatusRed:
			red++
		}
		scoreSum += c.ReadinessScore
	}
	checkedIn := len(checkins)

	var avgScore *float64
	if checkedIn > 0 {
		v := math.Round(float64(scoreSum)/float64(checkedIn)*100) / 100
		avgScore = &v
	}

	notCheckedIn := expected - checkedIn
	if notCheckedIn < 0 {
		notCheckedIn = 0
	}

	var compliance *float64
	if expected > 0 {
		// checkedIn can exceed expected when an exempt member (approved
		// leave or excused absence) checks in anyway; the published rate
		// stays within 0..100.
		attended := checkedIn
		if attended > expected {
			attended = expected
		}
		v := math.Round(float64(attended)/float64(expected)*10000) / 100
		compliance = &v
	}

	dbDate, err := calendar.DBDate(date)
	if err != nil {
		return SummaryResponse{}, err
	}

	row := &DailyTeamSummary{
		ID:                uuid.New(),
		CompanyID:         t.CompanyID,
		TeamID:            t.ID,
		Date:              dbDate,
		IsWorkDay:         isWorkDay,
		IsHoliday:         isHoliday,
		TotalMembers:      len(members),
		OnLeaveCount:      onLeaveCount,
		ExpectedToCheckIn: expected,
		CheckedInCount:    checkedIn,
		NotCheckedInCount: notCheckedIn,
		GreenCount:        green,
		YellowCount:       yellow,
		RedCount:          red,
		AvgReadinessScore: avgScore,
		ComplianceRate:    compliance,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return SummaryResponse{}, err
	}

	s.invalidate(ctx, teamID, date)

	s.logger.Info("summary recompute success",
		zap.String("team_id", teamID),
		zap.String("date", date),
		zap.Int("expected", expected),
		zap.Int("checked_in", checkedIn),
	)
	return mapToResponse(*row), nil
}

func (s *service) RecalculateTeamDate(ctx context.Context, teamID, date string) error {
	_, err := s.Recalculate(ctx, teamID, date)
	return err
}

func (s *service) RecalculateRange(ctx context.Context, teamID, fromDate, toDate string) error {
	days, err := calendar.DaysBetween(fromDate, toDate)
	if err != nil {
		return err
	}
	if days < 0 {
		fromDate, toDate = toDate, fromDate
	}

	var firstErr error
	for d := fromDate; d <= toDate; {
		if _, err := s.Recalculate(ctx, teamID, d); err != nil {
			s.logger.Error("range recompute failed for day",
				zap.String("team_id", teamID),
				zap.String("date", d),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
		d, err = calendar.AddDays(d, 1)
		if err != nil {
			return err
		}
	}
	return firstErr
}

func (s *service) RecalculateCompanyDate(ctx context.Context, companyID, date string) error {
	teams, err := s.teamRepo.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return err
	}

	var firstErr error
	for _, t := range teams {
		if _, err := s.Recalculate(ctx, t.ID.String(), date); err != nil {
			s.logger.Error("company recompute failed for team",
				zap.String("team_id", t.ID.String()),
				zap.String("date", date),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *service) GetTeamDate(ctx context.Context, teamID, date string) (SummaryResponse, error) {
	cacheKey := teamDateKey(teamID, date)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp SummaryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		row, err := s.repo.FindByTeamAndDate(ctx, teamID, date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return SummaryResponse{}, summaryerrors.ErrSummaryNotFound
			}
			return SummaryResponse{}, err
		}

		resp := mapToResponse(*row)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, cacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return SummaryResponse{}, err
	}
	return v.(SummaryResponse), nil
}

func (s *service) GetTeamRange(ctx context.Context, teamID, fromDate, toDate string) ([]SummaryResponse, error) {
	rows, err := s.repo.FindByTeamRange(ctx, teamID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetCompanyDate(ctx context.Context, companyID, date string) ([]SummaryResponse, error) {
	rows, err := s.repo.FindByCompanyDate(ctx, companyID, date)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) invalidate(ctx context.Context, teamID, date string) {
	if s.rdb == nil {
		return
	}
	cacheKey := teamDateKey(teamID, date)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("cache invalidation failed",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(s DailyTeamSummary) SummaryResponse {
	return SummaryResponse{
		TeamID:            s.TeamID.String(),
		CompanyID:         s.CompanyID.String(),
		Date:              s.Date.UTC().Format(calendar.DateLayout),
		IsWorkDay:         s.IsWorkDay,
		IsHoliday:         s.IsHoliday,
		TotalMembers:      s.TotalMembers,
		OnLeaveCount:      s.OnLeaveCount,
		ExpectedToCheckIn: s.ExpectedToCheckIn,
		CheckedInCount:    s.CheckedInCount,
		NotCheckedInCount: s.NotCheckedInCount,
		GreenCount:        s.GreenCount,
		YellowCount:       s.YellowCount,
		RedCount:          s.RedCount,
		AvgReadinessScore: s.AvgReadinessScore,
		ComplianceRate:    s.ComplianceRate,
	}
}

func mapToListResponse(rows []DailyTeamSummary) []SummaryResponse {
	resp := make([]SummaryResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp
}
