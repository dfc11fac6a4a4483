package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-readiness/internal/absence"
	"go-readiness/internal/checkin"
	"go-readiness/internal/company"
	"go-readiness/internal/events"
	"go-readiness/internal/holiday"
	"go-readiness/internal/leave"
	"go-readiness/internal/messaging/kafka/consumer"
	"go-readiness/internal/shared/connection"
	"go-readiness/internal/summary"
	"go-readiness/internal/team"
	"go-readiness/internal/user"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	companyService := company.NewService(company.NewRepository(gormDB))
	summaryService := summary.NewService(
		summary.NewRepository(gormDB),
		team.NewRepository(gormDB),
		user.NewRepository(gormDB),
		companyService,
		holiday.NewRepository(gormDB),
		leave.NewRepository(gormDB),
		checkin.NewRepository(gormDB),
		absence.NewRepository(gormDB),
		redisClient,
	)

	newReader := func(topic string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        "go-readiness-summary",
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}

	checkinReader := newReader(events.CheckinSubmittedTopic)
	defer checkinReader.Close()
	leaveReader := newReader(events.LeaveDecidedTopic)
	defer leaveReader.Close()
	holidayReader := newReader(events.HolidayChangedTopic)
	defer holidayReader.Close()
	absenceReader := newReader(events.AbsenceReviewedTopic)
	defer absenceReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeCheckinSubmitted(ctx, checkinReader, summaryService, logger)
	go consumer.ConsumeLeaveDecided(ctx, leaveReader, summaryService, logger)
	go consumer.ConsumeHolidayChanged(ctx, holidayReader, summaryService, logger)
	go consumer.ConsumeAbsenceReviewed(ctx, absenceReader, summaryService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
