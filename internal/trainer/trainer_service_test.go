package trainer

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	trainererrors "github.com/Sultann121/hazori/internal/trainer/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	createFn func(ctx context.Context, t *Trainer) error
	findAll  func(ctx context.Context) ([]Trainer, error)
	created  []*Trainer
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, t *Trainer) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, t); err != nil {
			return err
		}
	}
	f.created = append(f.created, t)
	return nil
}

func (f *fakeRepo) FindByNationalID(ctx context.Context, nationalID string) (*Trainer, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeRepo) FindByDeviceID(ctx context.Context, deviceID string) (*Trainer, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeRepo) BindDevice(ctx context.Context, trainerID uuid.UUID, deviceID string) error {
	return nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]Trainer, error) {
	if f.findAll != nil {
		return f.findAll(ctx)
	}
	return nil, nil
}

func TestRegister_TrimsAndPersists(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	resp, err := svc.Register(context.Background(), RegisterTrainerRequest{
		NationalID: "  1098765432 ",
		Name:       " Ahmed Ali ",
		Department: " IT ",
		DeviceID:   " dev-7 ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "1098765432", resp.NationalID)
	assert.Equal(t, "Ahmed Ali", resp.Name)
	assert.Equal(t, "IT", resp.Department)
	assert.Equal(t, "dev-7", resp.DeviceID)
	if assert.Len(t, repo.created, 1) {
		assert.NotEqual(t, uuid.Nil, repo.created[0].ID)
	}
}

func TestRegister_DuplicateNationalID(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, tr *Trainer) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_trainers_national_id"}
		},
	}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterTrainerRequest{NationalID: "1098765432", Name: "Ahmed"})
	assert.ErrorIs(t, err, trainererrors.ErrTrainerAlreadyExists)
}

func TestImportCSV_EmptyFile(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("   \n"))
	assert.ErrorIs(t, err, trainererrors.ErrImportFileRequired)
}

func TestImportCSV_MissingNationalIDColumn(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("name,phone\nAhmed,0500000000\n"))
	assert.ErrorIs(t, err, trainererrors.ErrImportFileInvalid)
}

func TestImportCSV_BestEffort(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, tr *Trainer) error {
			if tr.NationalID == "2000000000" {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_trainers_national_id"}
			}
			return nil
		},
	}
	svc := NewService(repo)

	csv := strings.Join([]string{
		"national_id,training_id,name,phone,department",
		"1000000000,TR-1,Ahmed,0500000001,IT",
		",TR-2,NoID,0500000002,HR",
		"2000000000,TR-3,Duplicate,0500000003,IT",
		"3000000000,TR-4,Sara,0500000004,HR",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 2, result.Skipped)
	if assert.Len(t, result.Failures, 2) {
		assert.Equal(t, 3, result.Failures[0].Row)
		assert.Equal(t, 4, result.Failures[1].Row)
		assert.Contains(t, result.Failures[1].Reason, "duplicate national_id 2000000000")
	}
	assert.Len(t, repo.created, 2)
}

func TestImportCSV_ArabicHeaders(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	csv := "الهوية,الاسم,الجوال,القسم\n1000000000,أحمد,0500000001,تقنية المعلومات\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	if assert.Len(t, repo.created, 1) {
		assert.Equal(t, "1000000000", repo.created[0].NationalID)
		assert.Equal(t, "أحمد", repo.created[0].Name)
		assert.Equal(t, "تقنية المعلومات", repo.created[0].Department)
	}
}

func TestImportCSV_StripsHeaderBOM(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	csv := "\ufeffnational_id,name\n1000000000,Ahmed\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	if assert.Len(t, repo.created, 1) {
		assert.Equal(t, "1000000000", repo.created[0].NationalID)
	}
}

func TestImportCSV_CRLFLineEndings(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	csv := "national_id,name\r\n1000000000,Ahmed\r\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Created)
}
