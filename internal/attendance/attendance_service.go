package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	attendanceerrors "github.com/Sultann121/hazori/internal/attendance/errors"
	"github.com/Sultann121/hazori/internal/events"
	"github.com/Sultann121/hazori/internal/gate"
	gateerrors "github.com/Sultann121/hazori/internal/gate/errors"
	"github.com/Sultann121/hazori/internal/messaging/kafka"
	"github.com/Sultann121/hazori/internal/shared/contextutil"
	"github.com/Sultann121/hazori/internal/trainer"
	trainererrors "github.com/Sultann121/hazori/internal/trainer/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	trainers trainer.Repository
	gate     gate.Service
	fence    Geofence
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	trainers trainer.Repository,
	gateService gate.Service,
	fence Geofence,
) Service {
	return NewServiceWithOutbox(db, repo, trainers, gateService, fence, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	trainers trainer.Repository,
	gateService gate.Service,
	fence Geofence,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		trainers: trainers,
		gate:     gateService,
		fence:    fence,
		outbox:   outboxRepo,
		logger:   l,
	}
}

// CheckIn runs one admission attempt through the full pipeline:
// gate, geofence, trainer lookup, device binding, daily limit, commit.
// The first failing stage rejects the attempt; nothing durable is written
// before the commit except the one-time device binding, which by itself
// never grants attendance.
func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	// 1. Gate check.
	open, err := s.gate.IsOpen(ctx)
	if err != nil {
		return CheckInResponse{}, err
	}
	if !open {
		return CheckInResponse{}, gateerrors.ErrAttendanceClosed
	}

	// 2. Geofence check.
	lat, err := parseCoordinate(req.Lat)
	if err != nil {
		return CheckInResponse{}, err
	}
	lng, err := parseCoordinate(req.Lng)
	if err != nil {
		return CheckInResponse{}, err
	}
	dist := s.fence.Distance(lat, lng)
	if dist > s.fence.RadiusM {
		s.logger.Debug("check-in outside geofence",
			zap.String("request_id", rid),
			zap.String("national_id", req.NationalID),
			zap.Float64("distance_m", dist),
		)
		return CheckInResponse{}, attendanceerrors.ErrOutOfArea.WithDetails(map[string]any{
			"distance_m": math.Round(dist),
		})
	}

	// Steps 3-6 run in one transaction so two concurrent attempts for the
	// same trainer (or device) serialize on the store's unique constraints.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckInResponse{}, err
	}
	defer tx.Rollback()

	qtrainers := s.trainers.WithTx(tx)
	qrepo := s.repo.WithTx(tx)

	// 3. Identity lookup.
	t, err := qtrainers.FindByNationalID(ctx, req.NationalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CheckInResponse{}, trainererrors.ErrTrainerNotFound
	}
	if err != nil {
		return CheckInResponse{}, err
	}

	// 4. Device binding. Only a collision with another trainer's bound
	// device is rejected; the owning trainer checking in from a different
	// device than its bound one is tolerated, and a bound device is never
	// overwritten.
	if req.DeviceID != "" {
		other, err := qtrainers.FindByDeviceID(ctx, req.DeviceID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckInResponse{}, err
		}
		if err == nil && other.NationalID != t.NationalID {
			return CheckInResponse{}, attendanceerrors.ErrDeviceConflict
		}

		if t.DeviceID == nil {
			if err := qtrainers.BindDevice(ctx, t.ID, req.DeviceID); err != nil {
				return CheckInResponse{}, mapRepositoryError(err)
			}
		}
	}

	// 5. Duplicate check against server-local midnight.
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	marked, err := qrepo.ExistsSince(ctx, t.ID, dayStart)
	if err != nil {
		return CheckInResponse{}, err
	}
	if marked {
		return CheckInResponse{}, attendanceerrors.ErrAlreadyMarkedToday
	}

	// 6. Commit.
	row := &Attendance{
		ID:         uuid.New(),
		TrainerID:  t.ID,
		AttendedOn: dayStart,
		Timestamp:  now,
		Lat:        lat,
		Lng:        lng,
	}
	if err := qrepo.Create(ctx, row); err != nil {
		return CheckInResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.AttendanceRecordedEvent{
			EventType:    "attendance_recorded",
			RequestID:    rid,
			AttendanceID: row.ID.String(),
			TrainerID:    t.ID.String(),
			NationalID:   t.NationalID,
			Department:   t.Department,
			OccurredAt:   now.UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return CheckInResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attendance",
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.AttendanceRecordedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return CheckInResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return CheckInResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("check-in accepted",
		zap.String("request_id", rid),
		zap.String("national_id", t.NationalID),
		zap.String("department", t.Department),
		zap.Float64("distance_m", dist),
	)

	return CheckInResponse{
		AttendanceID: row.ID.String(),
		NationalID:   t.NationalID,
		Name:         t.Name,
		Department:   t.Department,
		Timestamp:    row.Timestamp.Format(time.RFC3339),
		DistanceM:    math.Round(dist),
	}, nil
}

// parseCoordinate rejects anything that does not parse to a finite float.
// Letting NaN through would make the geofence comparison vacuously false,
// so malformed input is surfaced as its own rejection instead.
func parseCoordinate(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, attendanceerrors.ErrInvalidCoordinate
	}
	return v, nil
}
