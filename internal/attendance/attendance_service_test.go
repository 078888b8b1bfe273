package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "github.com/Sultann121/hazori/internal/attendance/errors"
	gateerrors "github.com/Sultann121/hazori/internal/gate/errors"
	"github.com/Sultann121/hazori/internal/messaging/kafka"
	"github.com/Sultann121/hazori/internal/shared/apperror"
	"github.com/Sultann121/hazori/internal/trainer"
	trainererrors "github.com/Sultann121/hazori/internal/trainer/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const (
	testCenterLat = 25.8969550
	testCenterLng = 43.5497960
)

type fakeGate struct {
	open bool
	err  error
}

func (f *fakeGate) IsOpen(ctx context.Context) (bool, error) { return f.open, f.err }
func (f *fakeGate) SetOpen(ctx context.Context, open bool, code string) error {
	return nil
}

type fakeTrainerRepo struct {
	findByNationalIDFn func(ctx context.Context, nationalID string) (*trainer.Trainer, error)
	findByDeviceIDFn   func(ctx context.Context, deviceID string) (*trainer.Trainer, error)
	bindDeviceFn       func(ctx context.Context, trainerID uuid.UUID, deviceID string) error
}

func (f *fakeTrainerRepo) WithTx(tx *sql.Tx) trainer.Repository { return f }
func (f *fakeTrainerRepo) Create(ctx context.Context, t *trainer.Trainer) error {
	return nil
}
func (f *fakeTrainerRepo) FindByNationalID(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
	return f.findByNationalIDFn(ctx, nationalID)
}
func (f *fakeTrainerRepo) FindByDeviceID(ctx context.Context, deviceID string) (*trainer.Trainer, error) {
	return f.findByDeviceIDFn(ctx, deviceID)
}
func (f *fakeTrainerRepo) BindDevice(ctx context.Context, trainerID uuid.UUID, deviceID string) error {
	return f.bindDeviceFn(ctx, trainerID, deviceID)
}
func (f *fakeTrainerRepo) FindAll(ctx context.Context) ([]trainer.Trainer, error) {
	return nil, nil
}

type fakeAttendanceRepo struct {
	createFn      func(ctx context.Context, a *Attendance) error
	existsSinceFn func(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error)
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, a *Attendance) error {
	return f.createFn(ctx, a)
}
func (f *fakeAttendanceRepo) ExistsSince(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error) {
	return f.existsSinceFn(ctx, trainerID, since)
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func registeredTrainer(deviceID *string) *trainer.Trainer {
	return &trainer.Trainer{
		ID:         uuid.New(),
		NationalID: "123",
		Name:       "Ahmed",
		Department: "IT",
		DeviceID:   deviceID,
	}
}

func testFence() Geofence {
	return Geofence{CenterLat: testCenterLat, CenterLng: testCenterLng, RadiusM: 100}
}

func validRequest() CheckInRequest {
	return CheckInRequest{NationalID: "123", Lat: "25.8969550", Lng: "43.5497960"}
}

func TestCheckIn_AttendanceClosed(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeAttendanceRepo{}, &fakeTrainerRepo{}, &fakeGate{open: false}, testFence())

	_, err := svc.CheckIn(context.Background(), validRequest())
	assert.ErrorIs(t, err, gateerrors.ErrAttendanceClosed)
	assert.NoError(t, mock.ExpectationsWereMet(), "closed gate must not open a transaction")
}

func TestCheckIn_InvalidCoordinate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeAttendanceRepo{}, &fakeTrainerRepo{}, &fakeGate{open: true}, testFence())

	for _, bad := range []string{"not-a-number", "", "NaN", "+Inf"} {
		req := validRequest()
		req.Lat = bad
		_, err := svc.CheckIn(context.Background(), req)
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidCoordinate, "lat=%q", bad)
	}
}

func TestCheckIn_OutOfArea(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeAttendanceRepo{}, &fakeTrainerRepo{}, &fakeGate{open: true}, testFence())

	req := validRequest()
	req.Lat = "25.9419550" // ~5km north of the center

	_, err := svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendanceerrors.ErrOutOfArea)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(map[string]any)
	assert.True(t, ok)
	dist, ok := details["distance_m"].(float64)
	assert.True(t, ok)
	assert.InDelta(t, 5000, dist, 50)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_BoundaryInclusive(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	trainers := &fakeTrainerRepo{
		findByNationalIDFn: func(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
			return registeredTrainer(nil), nil
		},
	}
	repo := &fakeAttendanceRepo{
		createFn: func(ctx context.Context, a *Attendance) error { return nil },
		existsSinceFn: func(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error) {
			return false, nil
		},
	}

	// A fence whose radius is exactly the distance to the check-in point:
	// standing on the line is inside.
	req := validRequest()
	req.Lat = "25.8975550"
	fence := testFence()
	fence.RadiusM = fence.Distance(25.8975550, testCenterLng)

	svc := NewService(db, repo, trainers, &fakeGate{open: true}, fence)

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.CheckIn(context.Background(), req)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// One meter short of that distance puts the same point outside.
	fence.RadiusM -= 1
	svc = NewService(db, repo, trainers, &fakeGate{open: true}, fence)

	_, err = svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendanceerrors.ErrOutOfArea)
}

func TestCheckIn_NotRegistered(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	trainers := &fakeTrainerRepo{
		findByNationalIDFn: func(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(db, &fakeAttendanceRepo{}, trainers, &fakeGate{open: true}, testFence())

	mock.ExpectBegin()
	mock.ExpectRollback()

	req := validRequest()
	req.NationalID = "999"
	_, err := svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, trainererrors.ErrTrainerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_DeviceConflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	owner := registeredTrainer(nil)
	owner.NationalID = "456"

	trainers := &fakeTrainerRepo{
		findByNationalIDFn: func(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
			return registeredTrainer(nil), nil
		},
		findByDeviceIDFn: func(ctx context.Context, deviceID string) (*trainer.Trainer, error) {
			return owner, nil
		},
	}
	svc := NewService(db, &fakeAttendanceRepo{}, trainers, &fakeGate{open: true}, testFence())

	mock.ExpectBegin()
	mock.ExpectRollback()

	req := validRequest()
	req.DeviceID = "device-of-456"
	_, err := svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendanceerrors.ErrDeviceConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_BindsDeviceOnFirstUse(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	me := registeredTrainer(nil)
	var boundDevice string

	trainers := &fakeTrainerRepo{
		findByNationalIDFn: func(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
			return me, nil
		},
		findByDeviceIDFn: func(ctx context.Context, deviceID string) (*trainer.Trainer, error) {
			return nil, gorm.ErrRecordNotFound
		},
		bindDeviceFn: func(ctx context.Context, trainerID uuid.UUID, deviceID string) error {
			assert.Equal(t, me.ID, trainerID)
			boundDevice = deviceID
			return nil
		},
	}
	repo := &fakeAttendanceRepo{
		createFn: func(ctx context.Context, a *Attendance) error { return nil },
		existsSinceFn: func(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(db, repo, trainers, &fakeGate{open: true}, testFence())

	mock.ExpectBegin()
	mock.ExpectCommit()

	req := validRequest()
	req.DeviceID = "my-phone"
	resp, err := svc.CheckIn(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "my-phone", boundDevice)
	assert.Equal(t, "123", resp.NationalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_OwnSecondDeviceTolerated(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	bound := "old-phone"
	me := registeredTrainer(&bound)

	bindCalled := false
	trainers := &fakeTrainerRepo{
		findByNationalIDFn: func(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
			return me, nil
		},
		findByDeviceIDFn: func(ctx context.Context, deviceID string) (*trainer.Trainer, error) {
			return nil, gorm.ErrRecordNotFound
		},
		bindDeviceFn: func(ctx context.Context, trainerID uuid.UUID, deviceID string) error {
			bindCalled = true
			return nil
		},
	}
	repo := &fakeAttendanceRepo{
		createFn: func(ctx context.Context, a *Attendance) error { return nil },
		existsSinceFn: func(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(db, repo, trainers, &fakeGate{open: true}, testFence())

	mock.ExpectBegin()
	mock.ExpectCommit()

	// A trainer with a bound device checking in from a new, unclaimed
	// device is accepted and the binding stays untouched.
	req := validRequest()
	req.DeviceID = "new-phone"
	_, err := svc.CheckIn(context.Background(), req)
	assert.NoError(t, err)
	assert.False(t, bindCalled, "an existing binding must never be overwritten")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_AlreadyMarkedToday(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	trainers := &fakeTrainerRepo{
		findByNationalIDFn: func(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
			return registeredTrainer(nil), nil
		},
	}
	repo := &fakeAttendanceRepo{
		existsSinceFn: func(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := NewService(db, repo, trainers, &fakeGate{open: true}, testFence())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), validRequest())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyMarkedToday)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_ConstraintViolationMapsToAlreadyMarked(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	trainers := &fakeTrainerRepo{
		findByNationalIDFn: func(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
			return registeredTrainer(nil), nil
		},
	}
	// The pre-check passes, then the insert loses the race and trips the
	// unique constraint. The caller still sees AlreadyMarkedToday.
	repo := &fakeAttendanceRepo{
		existsSinceFn: func(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, a *Attendance) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_attendances_trainer_day"}
		},
	}
	svc := NewService(db, repo, trainers, &fakeGate{open: true}, testFence())

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.CheckIn(context.Background(), validRequest())
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyMarkedToday)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_SuccessWritesOutboxEvent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Attendance
	trainers := &fakeTrainerRepo{
		findByNationalIDFn: func(ctx context.Context, nationalID string) (*trainer.Trainer, error) {
			return registeredTrainer(nil), nil
		},
	}
	repo := &fakeAttendanceRepo{
		existsSinceFn: func(ctx context.Context, trainerID uuid.UUID, since time.Time) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, a *Attendance) error {
			saved = *a
			return nil
		},
	}
	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, trainers, &fakeGate{open: true}, testFence(), outbox)

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.CheckIn(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AttendanceID)
	assert.Equal(t, saved.ID.String(), resp.AttendanceID)
	assert.Equal(t, 0.0, resp.DistanceM)

	if assert.Len(t, outbox.created, 1) {
		event := outbox.created[0]
		assert.Equal(t, "attendance_recorded", event.EventType)
		assert.Equal(t, saved.ID.String(), event.AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIn_GateErrorPropagates(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeAttendanceRepo{}, &fakeTrainerRepo{}, &fakeGate{err: errors.New("store down")}, testFence())

	_, err := svc.CheckIn(context.Background(), validRequest())
	assert.EqualError(t, err, "store down")
}
