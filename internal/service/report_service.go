package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"prompt-insights/internal/apperr"
	"prompt-insights/internal/dto"
	"prompt-insights/internal/executor"
	"prompt-insights/internal/summary"

	"go.uber.org/zap"
)

type ReportService struct {
	assistant *Assistant
	dir       string
	logger    *zap.Logger
	now       func() time.Time
}

func NewReportService(assistant *Assistant, dir string, logger *zap.Logger) *ReportService {
	return &ReportService{
		assistant: assistant,
		dir:       dir,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate writes an executive report over rows the caller already has.
// The file is written only when the request asks for it.
func (s *ReportService) Generate(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperr.New(apperr.InvalidInput, "question is required").WithOp("report.Generate")
	}

	res := ResultFromRows(req.Columns, req.RawData)
	report, err := s.assistant.Report(ctx, question, req.SQLQuery, res)
	if err != nil {
		return nil, err
	}

	now := s.now()
	resp := &dto.ReportResponse{
		Report:    report.Body,
		Question:  report.Question,
		RowCount:  report.RowCount,
		Timestamp: now.Format(time.RFC3339),
	}

	if req.Save {
		path, err := summary.SaveReport(s.dir, report, now)
		if err != nil {
			return nil, err
		}
		s.logger.Info("Executive report saved", zap.String("path", path))
		resp.SavedTo = path
	}
	return resp, nil
}

// ResultFromRows rebuilds an execution result from rows sent back by a
// client. Without explicit columns the first row's keys are used in sorted
// order.
func ResultFromRows(columns []string, rows []executor.Row) *executor.Result {
	if len(columns) == 0 && len(rows) > 0 {
		for k := range rows[0] {
			columns = append(columns, k)
		}
		sort.Strings(columns)
	}
	return &executor.Result{
		Success:  true,
		Columns:  columns,
		Rows:     rows,
		RowCount: len(rows),
	}
}
