// Package summary turns query results into prose: a one-line analyst answer,
// an executive summary and a sectioned executive report.
package summary

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"prompt-insights/internal/apperr"
	"prompt-insights/internal/executor"
	"prompt-insights/internal/llm"

	"go.uber.org/zap"
)

const (
	NoDataMessage = "No data found for this query."

	answerRows      = 20
	summaryRows     = 5
	reportRows      = 3
	reportRowMaxLen = 200
)

var (
	answerOpts  = llm.Options{Temperature: 0, MaxTokens: 150}
	summaryOpts = llm.Options{Temperature: 0.1, MaxTokens: 150}
	reportOpts  = llm.Options{Temperature: 0.3, MaxTokens: 800}
)

// ReportSections are the headings every executive report carries.
var ReportSections = []string{
	"EXECUTIVE SUMMARY",
	"KEY FINDINGS",
	"DATA INSIGHTS",
	"BUSINESS IMPLICATIONS",
	"RECOMMENDATIONS",
}

type Summarizer struct {
	llm    llm.Completer
	logger *zap.Logger
}

func NewSummarizer(completer llm.Completer, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		llm:    completer,
		logger: logger,
	}
}

// Answer writes a one or two sentence analyst answer grounded in the rows.
// When the model is unavailable the answer lists the first values found.
func (s *Summarizer) Answer(ctx context.Context, question string, res *executor.Result) string {
	if res == nil || res.RowCount == 0 {
		return NoDataMessage
	}

	prompt := fmt.Sprintf(`You are a senior risk analyst briefing a portfolio manager.
Answer the question using only the data below.

Question: %s
Data:
%s

Rules:
- Use the exact names and values from the data.
- One or two sentences.
- No placeholders or invented names.
- Mention the risk implication when there is one.

Answer:`, question, renderRows(res, answerRows, 0))

	out, err := s.llm.Complete(ctx, prompt, answerOpts)
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			s.logger.Warn("Answer generation failed, using data fallback", zap.Error(err))
		}
		return fallbackAnswer(question, res)
	}
	return strings.TrimSpace(out)
}

func fallbackAnswer(question string, res *executor.Result) string {
	var values []string
	for _, row := range res.Rows {
		for _, v := range res.Values(row) {
			if v == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				values = append(values, s)
			}
			if len(values) == 5 {
				break
			}
		}
		if len(values) == 5 {
			break
		}
	}

	if strings.Contains(strings.ToLower(question), "counterpart") {
		return fmt.Sprintf("Counterparty risk concentration identified across %s.", strings.Join(values, ", "))
	}
	return fmt.Sprintf("Risk exposure analysis shows: %s.", strings.Join(values, ", "))
}

func (s *Summarizer) ExecutiveSummary(ctx context.Context, question string, res *executor.Result) string {
	count := 0
	if res != nil {
		count = res.RowCount
	}

	prompt := fmt.Sprintf(`Write a concise executive summary of this query result.

Question: %s
Data:
%s
Total records: %d

Highlight key findings with specific values, note risks or business implications,
use financial terminology, and keep it to 2-3 sentences.

Executive summary:`, question, renderRows(res, summaryRows, 0), count)

	out, err := s.llm.Complete(ctx, prompt, summaryOpts)
	if err != nil || strings.TrimSpace(out) == "" {
		return fmt.Sprintf("Analysis of %d records shows key business insights related to the query.", count)
	}
	return strings.TrimSpace(out)
}

// Report is an executive report ready to display or save.
type Report struct {
	Question string
	SQL      string
	RowCount int
	Body     string
}

func (s *Summarizer) ExecutiveReport(ctx context.Context, question, sql string, res *executor.Result) (*Report, error) {
	count := 0
	var columns string
	if res != nil {
		count = res.RowCount
		if n := len(res.Columns); n > 0 {
			shown := res.Columns
			if n > 10 {
				shown = shown[:10]
			}
			columns = fmt.Sprintf("Data includes %d columns: %s", n, strings.Join(shown, ", "))
			if n > 10 {
				columns += "..."
			}
		}
	}

	var sections strings.Builder
	for i, name := range ReportSections {
		fmt.Fprintf(&sections, "%d. %s\n", i+1, name)
	}

	prompt := fmt.Sprintf(`Write an executive report on this database analysis.

Business question: %s
SQL query: %s
Total records found: %d
%s

Sample data:
%s

Use these sections:
%s
EXECUTIVE SUMMARY is 2-3 sentences, KEY FINDINGS is 3-5 bullet points and RECOMMENDATIONS is 2-3 actionable items.
Focus on business insight rather than technical detail.`,
		question, sql, count, columns, renderRows(res, reportRows, reportRowMaxLen), sections.String())

	out, err := s.llm.Complete(ctx, prompt, reportOpts)
	if err != nil {
		return nil, apperr.Wrap(apperr.ModelCallFailed, "could not generate executive report", err).WithOp("summary.ExecutiveReport")
	}

	return &Report{
		Question: question,
		SQL:      sql,
		RowCount: count,
		Body:     strings.TrimSpace(out),
	}, nil
}

func renderRows(res *executor.Result, limit, maxLen int) string {
	if res == nil || len(res.Rows) == 0 {
		return "(no rows)"
	}

	var sb strings.Builder
	for i, row := range res.Rows {
		if i == limit {
			break
		}
		parts := make([]string, len(res.Columns))
		for j, c := range res.Columns {
			parts[j] = fmt.Sprintf("%s: %v", c, row[c])
		}
		line := "{" + strings.Join(parts, ", ") + "}"
		line = clip(line, maxLen)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// clip cuts s to at most n bytes on a character boundary. n <= 0 keeps s.
func clip(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
