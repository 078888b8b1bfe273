package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	statsCacheKey = "stats:summary"
	statsCacheTTL = 30 * time.Second
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Report(ctx context.Context, department string) ([]DepartmentReport, error)
	ReportPDF(ctx context.Context, department string) ([]byte, error)
	ReportCSV(ctx context.Context, department string) ([]byte, error)
	Stats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Report returns check-ins joined with trainer data, one group per
// department. A specific department yields a single group.
func (s *service) Report(ctx context.Context, department string) ([]DepartmentReport, error) {
	rows, err := s.repo.ListAttendance(ctx, department)
	if err != nil {
		return nil, err
	}
	return groupByDepartment(rows), nil
}

func (s *service) ReportPDF(ctx context.Context, department string) ([]byte, error) {
	groups, err := s.Report(ctx, department)
	if err != nil {
		return nil, err
	}

	pages := make([][]string, 0, len(groups))
	for _, g := range groups {
		lines := []string{fmt.Sprintf("Attendance Report - %s", displayDepartment(g.Department))}
		for i, r := range g.Rows {
			lines = append(lines, fmt.Sprintf("%d. %s - ID: %s - Training: %s - Time: %s",
				i+1, r.Name, r.NationalID, r.TrainingID, r.Timestamp))
		}
		pages = append(pages, lines)
	}

	return buildReportPDF(pages)
}

func (s *service) ReportCSV(ctx context.Context, department string) ([]byte, error) {
	rows, err := s.repo.ListAttendance(ctx, department)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"name", "national_id", "training_id", "department", "timestamp"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Name, r.NationalID, r.TrainingID, r.Department, r.Timestamp}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stats serves the aggregate counts, cached briefly in Redis with a
// singleflight guard so a cache miss only queries the store once.
func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var resp StatsResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(statsCacheKey, func() (any, error) {
		total, err := s.repo.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		perDept, err := s.repo.CountByDepartment(ctx)
		if err != nil {
			return nil, err
		}

		resp := StatsResponse{Total: total, PerDepartment: perDept}
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
					s.logger.Warn("stats cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return StatsResponse{}, err
	}
	return v.(StatsResponse), nil
}

func groupByDepartment(rows []AttendanceRow) []DepartmentReport {
	groups := make([]DepartmentReport, 0)
	index := make(map[string]int)

	for _, r := range rows {
		i, ok := index[r.Department]
		if !ok {
			i = len(groups)
			index[r.Department] = i
			groups = append(groups, DepartmentReport{Department: r.Department})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

func displayDepartment(department string) string {
	if department == "" {
		return "Unassigned"
	}
	return department
}
