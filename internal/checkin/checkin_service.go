package checkin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	checkinerrors "go-readiness/internal/checkin/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-readiness/internal/calendar"
	"go-readiness/internal/company"
	"go-readiness/internal/events"
	"go-readiness/internal/messaging/kafka"
	"go-readiness/internal/readiness"
	"go-readiness/internal/user"
)

// SummaryRecalculator triggers the synchronous, best-effort recompute of
// today's team summary after a check-in lands. The durable trigger is the
// outbox event; a failure here is logged and never blocks the check-in.
type SummaryRecalculator interface {
	RecalculateTeamDate(ctx context.Context, teamID, date string) error
}

//go:generate mockgen -source=checkin_service.go -destination=mock/checkin_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, userID string, req SubmitCheckinRequest) (CheckinResponse, error)
	GetRecent(ctx context.Context, userID string, limit int) ([]CheckinResponse, error)
	// Audit recomputes the readiness pair from the stored raw metrics for
	// repair tooling, without mutating the row.
	Audit(ctx context.Context, companyID, id string) (AuditResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	userRepo   user.Repository
	companySvc company.Service
	outboxRepo kafka.OutboxRepository
	recalc     SummaryRecalculator
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	userRepo user.Repository,
	companySvc company.Service,
	outboxRepo kafka.OutboxRepository,
	recalc SummaryRecalculator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("checkin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("checkin.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		userRepo:   userRepo,
		companySvc: companySvc,
		outboxRepo: outboxRepo,
		recalc:     recalc,
		logger:     l,
		now:        time.Now,
	}
}

func (s *service) Submit(ctx context.Context, companyID, userID string, req SubmitCheckinRequest) (CheckinResponse, error) {
	s.logger.Debug("submit checkin requested",
		zap.String("company_id", companyID),
		zap.String("user_id", userID),
	)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return CheckinResponse{}, checkinerrors.ErrInvalidUserID
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CheckinResponse{}, checkinerrors.ErrInvalidUserID
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckinResponse{}, checkinerrors.ErrUserNotFound
		}
		return CheckinResponse{}, err
	}

	result, err := readiness.Calculate(readiness.Metrics{
		Mood:           req.Mood,
		Stress:         req.Stress,
		Sleep:          req.Sleep,
		PhysicalHealth: req.PhysicalHealth,
	})
	if err != nil {
		s.logger.Warn("submit checkin validation failed", zap.Error(err))
		return CheckinResponse{}, err
	}

	loc, err := s.companySvc.LocationOf(ctx, companyID)
	if err != nil {
		return CheckinResponse{}, err
	}

	now := s.now().UTC()
	today := calendar.LocalDate(now, loc)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit checkin begin tx failed", zap.Error(err))
		return CheckinResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByUserAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckinResponse{}, err
	}
	if existing != nil && err == nil {
		s.logger.Warn("submit checkin duplicate for local day",
			zap.String("user_id", userID),
			zap.String("checkin_date", today),
		)
		return CheckinResponse{}, checkinerrors.ErrAlreadyCheckedIn
	}

	row := &Checkin{
		ID:              uuid.New(),
		CompanyID:       companyUUID,
		UserID:          userUUID,
		CheckinDate:     calendar.DBDateFromInstant(now, loc),
		Mood:            req.Mood,
		Stress:          req.Stress,
		Sleep:           req.Sleep,
		PhysicalHealth:  req.PhysicalHealth,
		ReadinessScore:  result.Score,
		ReadinessStatus: result.Status,
		CreatedAt:       now,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return CheckinResponse{}, mapRepositoryError(err)
	}

	teamID := ""
	if u.TeamID != nil {
		teamID = u.TeamID.String()
	}

	if err := s.enqueueSubmittedEvent(ctx, tx, row, teamID, today); err != nil {
		s.logger.Error("submit checkin outbox failed", zap.Error(err))
		return CheckinResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit checkin commit failed", zap.Error(err))
		return CheckinResponse{}, err
	}

	s.logger.Info("submit checkin success",
		zap.String("checkin_id", row.ID.String()),
		zap.String("user_id", userID),
		zap.Int("readiness_score", result.Score),
		zap.String("readiness_status", result.Status),
	)

	if s.recalc != nil && teamID != "" {
		if err := s.recalc.RecalculateTeamDate(ctx, teamID, today); err != nil {
			s.logger.Error("post-checkin summary recompute failed",
				zap.String("team_id", teamID),
				zap.String("date", today),
				zap.Error(err),
			)
		}
	}

	return mapToResponse(*row), nil
}

func (s *service) GetRecent(ctx context.Context, userID string, limit int) ([]CheckinResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 30
	}

	rows, err := s.repo.FindRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]CheckinResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) Audit(ctx context.Context, companyID, id string) (AuditResponse, error) {
	row, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuditResponse{}, checkinerrors.ErrCheckinNotFound
		}
		return AuditResponse{}, err
	}

	result, err := readiness.Calculate(readiness.Metrics{
		Mood:           row.Mood,
		Stress:         row.Stress,
		Sleep:          row.Sleep,
		PhysicalHealth: row.PhysicalHealth,
	})
	if err != nil {
		return AuditResponse{}, err
	}

	return AuditResponse{
		CheckinID:       row.ID.String(),
		StoredScore:     row.ReadinessScore,
		StoredStatus:    row.ReadinessStatus,
		RecomputedScore: result.Score,
		RecomputedState: result.Status,
		Matches:         result.Score == row.ReadinessScore && result.Status == row.ReadinessStatus,
	}, nil
}

func (s *service) enqueueSubmittedEvent(ctx context.Context, tx *sql.Tx, row *Checkin, teamID, today string) error {
	if s.outboxRepo == nil {
		return nil
	}

	event := events.CheckinSubmittedEvent{
		EventType:   "checkin_submitted",
		CheckinID:   row.ID.String(),
		UserID:      row.UserID.String(),
		TeamID:      teamID,
		CompanyID:   row.CompanyID.String(),
		CheckinDate: today,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "checkin",
		AggregateID:   row.ID.String(),
		EventType:     event.EventType,
		Topic:         events.CheckinSubmittedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_checkin_user_date" {
		return checkinerrors.ErrAlreadyCheckedIn
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_checkin_user_date") {
		return checkinerrors.ErrAlreadyCheckedIn
	}

	return err
}

func mapToResponse(c Checkin) CheckinResponse {
	return CheckinResponse{
		ID:              c.ID.String(),
		CompanyID:       c.CompanyID.String(),
		UserID:          c.UserID.String(),
		CheckinDate:     c.CheckinDate.UTC().Format(calendar.DateLayout),
		Mood:            c.Mood,
		Stress:          c.Stress,
		Sleep:           c.Sleep,
		PhysicalHealth:  c.PhysicalHealth,
		ReadinessScore:  c.ReadinessScore,
		ReadinessStatus: c.ReadinessStatus,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}
