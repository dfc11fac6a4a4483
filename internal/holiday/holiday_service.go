package holiday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	holidayerrors "go-readiness/internal/holiday/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-readiness/internal/calendar"
	"go-readiness/internal/events"
	"go-readiness/internal/messaging/kafka"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GetAll(ctx context.Context, companyID, fromDate, toDate string) ([]HolidayResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outboxRepo kafka.OutboxRepository
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{db: db, repo: repo, outboxRepo: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateHolidayRequest) (HolidayResponse, error) {
	s.logger.Debug("create holiday requested",
		zap.String("company_id", companyID),
		zap.String("date", req.Date),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}
	dbDate, err := calendar.DBDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create holiday begin tx failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h := &Holiday{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Date:      dbDate,
		Name:      req.Name,
	}

	if err := qtx.Create(ctx, h); err != nil {
		return HolidayResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueChangedEvent(ctx, tx, h); err != nil {
		s.logger.Error("create holiday outbox failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create holiday commit failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("create holiday success",
		zap.String("holiday_id", h.ID.String()),
		zap.String("company_id", companyID),
		zap.String("date", req.Date),
	)
	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	// Removing a holiday changes expectedToCheckIn for that date, so
	// consumers must recompute every team of the company.
	if err := s.enqueueChangedEvent(ctx, tx, h); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete holiday success",
		zap.String("holiday_id", id),
		zap.String("company_id", companyID),
	)
	return nil
}

func (s *service) GetAll(ctx context.Context, companyID, fromDate, toDate string) ([]HolidayResponse, error) {
	if _, err := calendar.ParseDate(fromDate); err != nil {
		return nil, err
	}
	if _, err := calendar.ParseDate(toDate); err != nil {
		return nil, err
	}

	holidays, err := s.repo.FindByCompanyRange(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	resp := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		resp[i] = mapToResponse(h)
	}
	return resp, nil
}

func (s *service) enqueueChangedEvent(ctx context.Context, tx *sql.Tx, h *Holiday) error {
	if s.outboxRepo == nil {
		return nil
	}

	event := events.HolidayChangedEvent{
		EventType:  "holiday_changed",
		HolidayID:  h.ID.String(),
		CompanyID:  h.CompanyID.String(),
		Date:       h.Date.UTC().Format(calendar.DateLayout),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "holiday",
		AggregateID:   h.ID.String(),
		EventType:     event.EventType,
		Topic:         events.HolidayChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return holidayerrors.ErrHolidayAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return holidayerrors.ErrHolidayAlreadyExists
	}

	return err
}

func mapToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID.String(),
		CompanyID: h.CompanyID.String(),
		Date:      h.Date.UTC().Format(calendar.DateLayout),
		Name:      h.Name,
	}
}
