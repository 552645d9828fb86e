package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"prompt-insights/internal/dto"
	"prompt-insights/internal/executor"
	"prompt-insights/internal/llm/llmtest"

	"go.uber.org/zap"
)

func TestResultFromRows(t *testing.T) {
	res := ResultFromRows(nil, []executor.Row{{"zeta": 1, "alpha": 2}})
	if len(res.Columns) != 2 || res.Columns[0] != "alpha" || res.RowCount != 1 || !res.Success {
		t.Errorf("ResultFromRows() = %+v", res)
	}

	res = ResultFromRows([]string{"zeta", "alpha"}, nil)
	if res.Columns[0] != "zeta" || res.RowCount != 0 {
		t.Errorf("explicit columns = %+v", res)
	}
}

func TestGenerateReportSaves(t *testing.T) {
	dir := t.TempDir()
	fake := llmtest.Text("1. EXECUTIVE SUMMARY\nRates dominates.")
	svc := NewReportService(newTestAssistant(fake, &recordingRunner{}, nil), dir, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }

	resp, err := svc.Generate(context.Background(), &dto.ReportRequest{
		Question: "trades per desk",
		SQLQuery: "SELECT desk FROM trade_new;",
		RawData:  []executor.Row{{"desk": "Rates"}},
		Save:     true,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.RowCount != 1 || resp.SavedTo != filepath.Join(dir, "executive_report_20250304_050607.txt") {
		t.Errorf("Generate() = %+v", resp)
	}
	if _, err := os.Stat(resp.SavedTo); err != nil {
		t.Errorf("report file missing: %v", err)
	}
}

func TestGenerateReportWithoutSave(t *testing.T) {
	dir := t.TempDir()
	svc := NewReportService(newTestAssistant(llmtest.Text("Body"), &recordingRunner{}, nil), dir, zap.NewNop())

	resp, err := svc.Generate(context.Background(), &dto.ReportRequest{Question: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.SavedTo != "" {
		t.Error("report should not be saved without confirmation")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("dir has %d files", len(entries))
	}
}
