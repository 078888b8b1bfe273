package trainer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Sultann121/hazori/internal/shared/contextutil"
	trainererrors "github.com/Sultann121/hazori/internal/trainer/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=trainer_service.go -destination=mock/trainer_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterTrainerRequest) (TrainerResponse, error)
	ImportCSV(ctx context.Context, file io.Reader) (ImportResult, error)
	GetAll(ctx context.Context) ([]TrainerResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("trainer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trainer.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterTrainerRequest) (TrainerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register trainer requested",
		zap.String("request_id", rid),
		zap.String("national_id", req.NationalID),
		zap.String("department", req.Department),
	)

	t := &Trainer{
		ID:         uuid.New(),
		NationalID: strings.TrimSpace(req.NationalID),
		TrainingID: strings.TrimSpace(req.TrainingID),
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Department: strings.TrimSpace(req.Department),
	}
	if req.DeviceID != "" {
		deviceID := strings.TrimSpace(req.DeviceID)
		t.DeviceID = &deviceID
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Warn("register trainer persist failed",
			zap.String("request_id", rid),
			zap.String("national_id", t.NationalID),
			zap.Error(err),
		)
		return TrainerResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*t), nil
}

// importColumns maps a CSV header row to column indexes. The original
// spreadsheets carry Arabic headers alongside the snake_case ones, so both
// spellings are accepted.
var headerAliases = map[string]string{
	"national_id": "national_id",
	"nationalid":  "national_id",
	"الهوية":      "national_id",
	"training_id": "training_id",
	"رقم_التدريب": "training_id",
	"name":        "name",
	"الاسم":       "name",
	"phone":       "phone",
	"الجوال":      "phone",
	"department":  "department",
	"القسم":       "department",
}

// ImportCSV ingests a trainer roster with best-effort semantics: rows that
// fail (missing fields, duplicate national IDs) are skipped and reported,
// never aborting the rest of the file.
func (s *service) ImportCSV(ctx context.Context, file io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return ImportResult{}, trainererrors.ErrImportFileInvalid
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{}, trainererrors.ErrImportFileRequired
	}

	// Normalize line endings so CR-only and CRLF files behave the same.
	data = bytes.ReplaceAll(data, []byte{'\r', '\n'}, []byte{'\n'})
	data = bytes.ReplaceAll(data, []byte{'\r'}, []byte{'\n'})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, trainererrors.ErrImportFileInvalid
	}

	headerIdx := make(map[string]int, len(header))
	for idx, col := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if canonical, ok := headerAliases[key]; ok {
			headerIdx[canonical] = idx
		}
	}
	if _, ok := headerIdx["national_id"]; !ok {
		return ImportResult{}, trainererrors.ErrImportFileInvalid
	}

	getVal := func(record []string, key string) string {
		idx, ok := headerIdx[key]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var result ImportResult
	rowNum := 1 // header already consumed

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Total++
			result.Skipped++
			result.Failures = append(result.Failures, ImportRowError{Row: rowNum, Reason: "malformed row"})
			continue
		}

		result.Total++
		req := RegisterTrainerRequest{
			NationalID: getVal(record, "national_id"),
			TrainingID: getVal(record, "training_id"),
			Name:       getVal(record, "name"),
			Phone:      getVal(record, "phone"),
			Department: getVal(record, "department"),
		}
		if req.NationalID == "" || req.Name == "" {
			result.Skipped++
			result.Failures = append(result.Failures, ImportRowError{Row: rowNum, Reason: "national_id and name are required"})
			continue
		}

		if _, err := s.Register(ctx, req); err != nil {
			result.Skipped++
			reason := "insert failed"
			if errors.Is(err, trainererrors.ErrTrainerAlreadyExists) {
				reason = fmt.Sprintf("duplicate national_id %s", req.NationalID)
			}
			result.Failures = append(result.Failures, ImportRowError{Row: rowNum, Reason: reason})
			continue
		}
		result.Created++
	}

	s.logger.Info("trainer import finished",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (s *service) GetAll(ctx context.Context) ([]TrainerResponse, error) {
	trainers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TrainerResponse, len(trainers))
	for i, t := range trainers {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func mapToResponse(t Trainer) TrainerResponse {
	resp := TrainerResponse{
		ID:         t.ID.String(),
		NationalID: t.NationalID,
		TrainingID: t.TrainingID,
		Name:       t.Name,
		Phone:      t.Phone,
		Department: t.Department,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
	}
	if t.DeviceID != nil {
		resp.DeviceID = *t.DeviceID
	}
	return resp
}
