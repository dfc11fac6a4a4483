package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	leaveerrors "go-readiness/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-readiness/internal/calendar"
	"go-readiness/internal/events"
	"go-readiness/internal/messaging/kafka"
	"go-readiness/internal/user"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	GetAllByUser(ctx context.Context, userID string) ([]LeaveResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	userRepo   user.Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, userRepo user.Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, userRepo: userRepo, outboxRepo: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("user_id", req.UserID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidUserID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := calendar.ParseDate(req.StartDate); err != nil {
		return LeaveResponse{}, err
	}
	if _, err := calendar.ParseDate(req.EndDate); err != nil {
		return LeaveResponse{}, err
	}
	if req.StartDate > req.EndDate {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, req.UserID, req.StartDate, req.EndDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("user_id", req.UserID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	startDB, err := calendar.DBDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDB, err := calendar.DBDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	e := &Exception{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		UserID:    userUUID,
		Type:      req.LeaveType,
		Status:    StatusPending,
		StartDate: startDB,
		EndDate:   endDB,
		Reason:    req.Reason,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("exception_id", e.ID.String()),
		zap.String("user_id", req.UserID),
	)
	return mapToResponse(*e), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	return s.decide(ctx, companyID, actorID, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	return s.decide(ctx, companyID, actorID, id, StatusRejected)
}

func (s *service) decide(ctx context.Context, companyID, actorID, id, targetStatus string) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("exception_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrExceptionNotFound
		}
		return LeaveResponse{}, err
	}
	if e.Status != StatusPending {
		s.logger.Warn("decide leave invalid transition",
			zap.String("exception_id", id),
			zap.String("from_status", e.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	e.Status = targetStatus
	e.DecidedBy = &actorUUID
	e.DecidedAt = &now

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("decide leave persist failed",
			zap.String("exception_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	// A decision can change historical coverage, so consumers recompute the
	// whole covered range.
	if err := s.enqueueDecidedEvent(ctx, tx, e); err != nil {
		s.logger.Error("decide leave outbox failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed",
			zap.String("exception_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("exception_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAllByUser(ctx context.Context, userID string) ([]LeaveResponse, error) {
	exceptions, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveResponse, len(exceptions))
	for i, e := range exceptions {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) enqueueDecidedEvent(ctx context.Context, tx *sql.Tx, e *Exception) error {
	if s.outboxRepo == nil {
		return nil
	}

	teamID := ""
	if u, err := s.userRepo.FindByID(ctx, e.UserID.String()); err == nil && u.TeamID != nil {
		teamID = u.TeamID.String()
	}

	event := events.LeaveDecidedEvent{
		EventType:   "leave_decided",
		ExceptionID: e.ID.String(),
		UserID:      e.UserID.String(),
		TeamID:      teamID,
		CompanyID:   e.CompanyID.String(),
		Status:      e.Status,
		StartDate:   e.StartDate.UTC().Format(calendar.DateLayout),
		EndDate:     e.EndDate.UTC().Format(calendar.DateLayout),
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "exception",
		AggregateID:   e.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(e Exception) LeaveResponse {
	start := e.StartDate.UTC().Format(calendar.DateLayout)
	end := e.EndDate.UTC().Format(calendar.DateLayout)
	totalDays := int(e.EndDate.Sub(e.StartDate).Hours()/24) + 1

	resp := LeaveResponse{
		ID:        e.ID.String(),
		CompanyID: e.CompanyID.String(),
		UserID:    e.UserID.String(),
		LeaveType: e.Type,
		Status:    e.Status,
		StartDate: start,
		EndDate:   end,
		TotalDays: totalDays,
		Reason:    e.Reason,
	}
	if e.DecidedBy != nil {
		v := e.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if e.DecidedAt != nil {
		v := e.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
