package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Sultann121/hazori/internal/events"
	"github.com/Sultann121/hazori/internal/report"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAttendanceRecorded folds accepted check-ins into the
// per-department daily rollup. Delivery is at-least-once; a redelivered
// event inflates the rollup by one, which the counts tolerate since the
// rollup is advisory and the ledger stays authoritative.
func ConsumeAttendanceRecorded(
	ctx context.Context,
	reader *kafkago.Reader,
	summaryRepo report.SummaryRepository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_recorded")
	log.Info("attendance rollup consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance rollup consumer stopped")
				return
			}
			log.Error("fetch attendance message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance_recorded event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		day := event.OccurredAt
		if day.IsZero() {
			day = time.Now().UTC()
		}

		newCount, err := summaryRepo.IncrementDailyCount(ctx, event.Department, day)
		if err != nil {
			log.Error("update attendance rollup failed",
				zap.String("attendance_id", event.AttendanceID),
				zap.String("department", event.Department),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance message failed", zap.Error(err))
			continue
		}

		log.Info("attendance rollup updated",
			zap.String("attendance_id", event.AttendanceID),
			zap.String("department", event.Department),
			zap.Int64("day_total", newCount),
		)
	}
}
