package grading

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-readiness/internal/absence"
	"go-readiness/internal/calendar"
	"go-readiness/internal/checkin"
	gradingerrors "go-readiness/internal/grading/errors"
	"go-readiness/internal/summary"
	"go-readiness/internal/team"
	"go-readiness/internal/user"
)

//go:generate mockgen -source=grading_service.go -destination=mock/grading_service_mock.go -package=mock
type Service interface {
	// TeamGrade grades a team over an inclusive date window. Team
	// compliance comes from the daily summaries of the window; team
	// readiness is the mean of the per-member averages of members with at
	// least MinSampleCheckins check-ins.
	TeamGrade(ctx context.Context, teamID, fromDate, toDate string) (TeamGradeResponse, error)
	// WorkerGrade grades one worker. Worker compliance is attended days
	// over required days, where required days are the worker's check-ins
	// plus their non-EXCUSED absence records in the window.
	WorkerGrade(ctx context.Context, userID, fromDate, toDate string) (MemberGrade, error)
}

type service struct {
	teamRepo    team.Repository
	userRepo    user.Repository
	checkinRepo checkin.Repository
	absenceRepo absence.Repository
	summaryRepo summary.Repository
	logger      *zap.Logger
}

func NewService(
	teamRepo team.Repository,
	userRepo user.Repository,
	checkinRepo checkin.Repository,
	absenceRepo absence.Repository,
	summaryRepo summary.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("grading.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("grading.service")
	}
	return &service{
		teamRepo:    teamRepo,
		userRepo:    userRepo,
		checkinRepo: checkinRepo,
		absenceRepo: absenceRepo,
		summaryRepo: summaryRepo,
		logger:      l,
	}
}

func validateWindow(fromDate, toDate string) error {
	days, err := calendar.DaysBetween(fromDate, toDate)
	if err != nil {
		return err
	}
	if days < 0 {
		return gradingerrors.ErrInvalidWindow
	}
	return nil
}

func (s *service) TeamGrade(ctx context.Context, teamID, fromDate, toDate string) (TeamGradeResponse, error) {
	if err := validateWindow(fromDate, toDate); err != nil {
		return TeamGradeResponse{}, err
	}

	t, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamGradeResponse{}, gradingerrors.ErrTeamNotFound
		}
		return TeamGradeResponse{}, err
	}

	members, err := s.userRepo.FindActiveWorkersByTeam(ctx, t.ID.String())
	if err != nil {
		return TeamGradeResponse{}, err
	}

	resp := TeamGradeResponse{
		TeamID:   t.ID.String(),
		FromDate: fromDate,
		ToDate:   toDate,
	}

	var gradedSum float64
	var gradedCount int
	for _, m := range members {
		mg, err := s.gradeMember(ctx, m, fromDate, toDate)
		if err != nil {
			return TeamGradeResponse{}, err
		}
		resp.Members = append(resp.Members, mg)
		if mg.Onboarding {
			resp.OnboardingIDs = append(resp.OnboardingIDs, mg.UserID)
			continue
		}
		gradedSum += *mg.AvgReadiness
		gradedCount++
	}

	if gradedCount > 0 {
		avg := round2(gradedSum / float64(gradedCount))
		resp.AvgReadiness = &avg
	}

	compliance, err := s.teamCompliance(ctx, teamID, fromDate, toDate)
	if err != nil {
		return TeamGradeResponse{}, err
	}
	resp.ComplianceRate = compliance

	if resp.AvgReadiness != nil && resp.ComplianceRate != nil {
		score := Score(*resp.AvgReadiness, *resp.ComplianceRate)
		letter := Letter(score)
		resp.Score = &score
		resp.Letter = &letter
	}

	return resp, nil
}

func (s *service) WorkerGrade(ctx context.Context, userID, fromDate, toDate string) (MemberGrade, error) {
	if err := validateWindow(fromDate, toDate); err != nil {
		return MemberGrade{}, err
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MemberGrade{}, gradingerrors.ErrUserNotFound
		}
		return MemberGrade{}, err
	}

	return s.gradeMember(ctx, *u, fromDate, toDate)
}

func (s *service) gradeMember(ctx context.Context, u user.User, fromDate, toDate string) (MemberGrade, error) {
	mg := MemberGrade{
		UserID:   u.ID.String(),
		FullName: u.FullName,
	}

	checkins, err := s.checkinRepo.FindByUserDateRange(ctx, u.ID.String(), fromDate, toDate)
	if err != nil {
		return MemberGrade{}, err
	}
	mg.CheckinCount = len(checkins)

	if mg.CheckinCount < MinSampleCheckins {
		mg.Onboarding = true
		return mg, nil
	}

	var scoreSum int
	for _, c := range checkins {
		scoreSum += c.ReadinessScore
	}
	avg := round2(float64(scoreSum) / float64(mg.CheckinCount))
	mg.AvgReadiness = &avg

	compliance, err := s.workerCompliance(ctx, u.ID.String(), fromDate, toDate, mg.CheckinCount)
	if err != nil {
		return MemberGrade{}, err
	}
	mg.ComplianceRate = compliance

	if mg.ComplianceRate != nil {
		score := Score(*mg.AvgReadiness, *mg.ComplianceRate)
		letter := Letter(score)
		mg.Score = &score
		mg.Letter = &letter
	}

	return mg, nil
}

// workerCompliance divides attended days by required days. Required days
// are the days the worker actually checked in plus the days the gap-scan
// recorded as missed, EXCUSED absences excluded; holidays and approved
// leave never produced either record, so they stay out of the ratio.
func (s *service) workerCompliance(ctx context.Context, userID, fromDate, toDate string, checkinCount int) (*float64, error) {
	absences, err := s.absenceRepo.FindByUserDateRange(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	missed := 0
	for _, a := range absences {
		if a.Status != absence.StatusExcused {
			missed++
		}
	}

	required := checkinCount + missed
	if required == 0 {
		return nil, nil
	}
	v := round2(float64(checkinCount) / float64(required) * 100)
	return &v, nil
}

// teamCompliance averages the non-null compliance rates of the window's
// daily summaries. Days that were never required (holidays, non-work
// days) carry a null rate and do not dilute the average.
func (s *service) teamCompliance(ctx context.Context, teamID, fromDate, toDate string) (*float64, error) {
	summaries, err := s.summaryRepo.FindByTeamRange(ctx, teamID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	var sum float64
	var n int
	for _, row := range summaries {
		if row.ComplianceRate != nil {
			sum += *row.ComplianceRate
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	v := round2(sum / float64(n))
	return &v, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
