package gate

import (
	"context"
	"crypto/subtle"

	gateerrors "github.com/Sultann121/hazori/internal/gate/errors"
	"github.com/Sultann121/hazori/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=gate_service.go -destination=mock/gate_service_mock.go -package=mock
type Service interface {
	IsOpen(ctx context.Context) (bool, error)
	SetOpen(ctx context.Context, open bool, providedCode string) error
}

type service struct {
	repo      Repository
	adminCode string
	logger    *zap.Logger
}

func NewService(repo Repository, adminCode string, logger ...*zap.Logger) Service {
	l := zap.L().Named("gate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gate.service")
	}
	return &service{repo: repo, adminCode: adminCode, logger: l}
}

// IsOpen reads the persisted flag. A missing row counts as closed.
func (s *service) IsOpen(ctx context.Context) (bool, error) {
	value, found, err := s.repo.Get(ctx, AttendanceOpenKey)
	if err != nil {
		return false, err
	}
	return found && value == "true", nil
}

func (s *service) SetOpen(ctx context.Context, open bool, providedCode string) error {
	if subtle.ConstantTimeCompare([]byte(providedCode), []byte(s.adminCode)) != 1 {
		s.logger.Warn("attendance toggle rejected",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
		)
		return gateerrors.ErrUnauthorized
	}

	value := "false"
	if open {
		value = "true"
	}
	if err := s.repo.Upsert(ctx, AttendanceOpenKey, value); err != nil {
		return err
	}

	s.logger.Info("attendance gate toggled",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Bool("open", open),
	)
	return nil
}
