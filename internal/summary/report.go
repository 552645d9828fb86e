package summary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const reportRule = "================================================================================"

// ReportFileName is executive_report_YYYYMMDD_HHMMSS.txt for t.
func ReportFileName(t time.Time) string {
	return fmt.Sprintf("executive_report_%s.txt", t.Format("20060102_150405"))
}

// Render lays the report out as plain text with header, body and the SQL used.
func (r *Report) Render(generatedAt time.Time) string {
	var sb strings.Builder
	sb.WriteString("EXECUTIVE REPORT\n")
	sb.WriteString(reportRule + "\n")
	fmt.Fprintf(&sb, "Generated: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Question: %s\n", r.Question)
	fmt.Fprintf(&sb, "Records analyzed: %d\n", r.RowCount)
	sb.WriteString(reportRule + "\n\n")
	sb.WriteString(r.Body)
	sb.WriteString("\n\n")
	sb.WriteString(reportRule + "\n")
	sb.WriteString("SQL QUERY USED:\n")
	sb.WriteString(r.SQL)
	sb.WriteString("\n")
	sb.WriteString(reportRule + "\n")
	return sb.String()
}

// SaveReport writes r into dir and returns the file path.
func SaveReport(dir string, r *Report, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, ReportFileName(now))
	if err := os.WriteFile(path, []byte(r.Render(now)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
