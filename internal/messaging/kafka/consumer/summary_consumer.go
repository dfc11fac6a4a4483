// Package consumer turns domain events into summary recomputes. The
// write paths already recompute best-effort in-process; the consumers
// are the retrying safety net behind them, so every handler here must
// stay idempotent.
package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-readiness/internal/events"
	"go-readiness/internal/summary"
)

func ConsumeCheckinSubmitted(
	ctx context.Context,
	reader *kafkago.Reader,
	summaryService summary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.checkin_submitted")
	log.Info("checkin submitted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("checkin submitted consumer stopped")
				return
			}
			log.Error("fetch checkin submitted message failed", zap.Error(err))
			continue
		}

		var event events.CheckinSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode checkin_submitted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.TeamID == "" {
			// Teamless workers have no summary to refresh.
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := summaryService.RecalculateTeamDate(ctx, event.TeamID, event.CheckinDate); err != nil {
			log.Error("recompute after checkin failed",
				zap.String("team_id", event.TeamID),
				zap.String("date", event.CheckinDate),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit checkin submitted message failed", zap.Error(err))
			continue
		}

		log.Info("summary recomputed from checkin_submitted event",
			zap.String("team_id", event.TeamID),
			zap.String("date", event.CheckinDate),
		)
	}
}

func ConsumeLeaveDecided(
	ctx context.Context,
	reader *kafkago.Reader,
	summaryService summary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decided")
	log.Info("leave decided consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decided consumer stopped")
				return
			}
			log.Error("fetch leave decided message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.TeamID == "" {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// A decision changes coverage for every day of the range.
		if err := summaryService.RecalculateRange(ctx, event.TeamID, event.StartDate, event.EndDate); err != nil {
			log.Error("recompute after leave decision failed",
				zap.String("team_id", event.TeamID),
				zap.String("from", event.StartDate),
				zap.String("to", event.EndDate),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decided message failed", zap.Error(err))
			continue
		}

		log.Info("summaries recomputed from leave_decided event",
			zap.String("team_id", event.TeamID),
			zap.String("from", event.StartDate),
			zap.String("to", event.EndDate),
		)
	}
}

func ConsumeAbsenceReviewed(
	ctx context.Context,
	reader *kafkago.Reader,
	summaryService summary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.absence_reviewed")
	log.Info("absence reviewed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("absence reviewed consumer stopped")
				return
			}
			log.Error("fetch absence reviewed message failed", zap.Error(err))
			continue
		}

		var event events.AbsenceReviewedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode absence_reviewed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// An EXCUSED verdict moves the worker into the exemption union for
		// that day; recompute regardless of verdict to keep it simple.
		if err := summaryService.RecalculateTeamDate(ctx, event.TeamID, event.AbsenceDate); err != nil {
			log.Error("recompute after absence review failed",
				zap.String("team_id", event.TeamID),
				zap.String("date", event.AbsenceDate),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit absence reviewed message failed", zap.Error(err))
			continue
		}

		log.Info("summary recomputed from absence_reviewed event",
			zap.String("team_id", event.TeamID),
			zap.String("date", event.AbsenceDate),
		)
	}
}

func ConsumeHolidayChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	summaryService summary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.holiday_changed")
	log.Info("holiday changed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("holiday changed consumer stopped")
				return
			}
			log.Error("fetch holiday changed message failed", zap.Error(err))
			continue
		}

		var event events.HolidayChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode holiday_changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// A holiday affects every team of the company on that date.
		if err := summaryService.RecalculateCompanyDate(ctx, event.CompanyID, event.Date); err != nil {
			log.Error("recompute after holiday change failed",
				zap.String("company_id", event.CompanyID),
				zap.String("date", event.Date),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit holiday changed message failed", zap.Error(err))
			continue
		}

		log.Info("summaries recomputed from holiday_changed event",
			zap.String("company_id", event.CompanyID),
			zap.String("date", event.Date),
		)
	}
}
