package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"prompt-insights/internal/executor"
	"prompt-insights/internal/llm/llmtest"
	"prompt-insights/internal/schema"
	"prompt-insights/internal/service"
	"prompt-insights/internal/sqlgen"
	"prompt-insights/internal/summary"

	"go.uber.org/zap"
)

type schemaStub struct {
	refreshed int
}

func (s *schemaStub) Get() (string, error) {
	return "Table: trade_new\nColumns: desk (varchar), notional (decimal)", nil
}

func (s *schemaStub) Refresh(context.Context) (*schema.Snapshot, error) {
	s.refreshed++
	return &schema.Snapshot{Database: "org_insights", TableCount: 3, GeneratedAt: time.Now()}, nil
}

type scriptedRunner struct {
	mu      sync.Mutex
	fn      func(query string) *executor.Result
	queries []string
}

func (r *scriptedRunner) Execute(_ context.Context, query string) *executor.Result {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	return r.fn(query)
}

func deskRows(query string) *executor.Result {
	if strings.Contains(query, "bogus") {
		return &executor.Result{Error: "Unknown column 'bogus' in 'field list'"}
	}
	return &executor.Result{
		Success:  true,
		Columns:  []string{"desk"},
		Rows:     []executor.Row{{"desk": "Rates"}},
		RowCount: 1,
	}
}

func noRows(string) *executor.Result {
	return &executor.Result{Success: true, Columns: []string{"desk"}}
}

func newTestShell(t *testing.T, fake *llmtest.Fake, runner *scriptedRunner, input string) (*Shell, *bytes.Buffer, *schemaStub) {
	t.Helper()
	logger := zap.NewNop()
	stub := &schemaStub{}
	assistant := service.NewAssistant(
		stub,
		runner,
		nil,
		sqlgen.NewGenerator(fake, logger),
		summary.NewSummarizer(fake, logger),
		logger,
	)

	var out bytes.Buffer
	shell := NewShell(assistant, stub, NewPrompter(strings.NewReader(input), &out), &out, ShellConfig{
		ReportDir: t.TempDir(),
	})
	return shell, &out, stub
}

func TestAskAnswered(t *testing.T) {
	fake := llmtest.Text("SELECT desk FROM trade_new;", "Rates is the only active desk.")
	runner := &scriptedRunner{fn: deskRows}
	shell, out, _ := newTestShell(t, fake, runner, "n\n")

	shell.Ask(context.Background(), "which desks traded")

	text := out.String()
	for _, want := range []string{"FROM trade_new;", "Rates is the only active desk.", "executed successfully (1 rows)"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if shell.last == nil || shell.lastError != "" {
		t.Errorf("shell state: last=%v lastError=%q", shell.last, shell.lastError)
	}
	if n := len(fake.Calls()); n != 2 {
		t.Errorf("model calls = %d, explanation was declined", n)
	}
}

func TestAskFailureRunsFixOnlyWhenConfirmed(t *testing.T) {
	fake := llmtest.Text("SELECT bogus FROM trade_new;", "SELECT desk FROM trade_new;", "Rates is the only active desk.")
	runner := &scriptedRunner{fn: deskRows}
	shell, out, _ := newTestShell(t, fake, runner, "y\n")

	shell.Ask(context.Background(), "which desks traded")

	if len(runner.queries) != 2 || runner.queries[1] != "SELECT desk FROM trade_new;" {
		t.Fatalf("queries = %v", runner.queries)
	}
	text := out.String()
	if !strings.Contains(text, "Query failed: Unknown column 'bogus'") || !strings.Contains(text, "Fixed query executed successfully (1 rows)") {
		t.Errorf("output:\n%s", text)
	}
	if shell.lastError != "" || shell.lastSQL != "SELECT desk FROM trade_new;" {
		t.Errorf("lastError=%q lastSQL=%q", shell.lastError, shell.lastSQL)
	}
}

func TestRunFixCommandAfterDecline(t *testing.T) {
	fake := llmtest.Text("SELECT bogus FROM trade_new;", "SELECT desk FROM trade_new;")
	runner := &scriptedRunner{fn: deskRows}
	shell, out, _ := newTestShell(t, fake, runner, "trades per desk\nn\nfix\nn\nquit\n")

	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(runner.queries) != 1 {
		t.Errorf("declined fixes must not run, queries = %v", runner.queries)
	}
	if got := strings.Count(out.String(), "Suggested fix:"); got != 2 {
		t.Errorf("suggested fix shown %d times", got)
	}
	if shell.lastError == "" {
		t.Error("failure should be remembered for the fix command")
	}
}

func TestAskNoResultsShowsSuggestionsAndExplains(t *testing.T) {
	fake := llmtest.Text("SELECT desk FROM trade_new WHERE desk = 'FX';", "Try the Rates desk instead.", "Lists FX desk rows.")
	runner := &scriptedRunner{fn: noRows}
	shell, out, _ := newTestShell(t, fake, runner, "y\n")

	shell.Ask(context.Background(), "fx desk trades")

	text := out.String()
	for _, want := range []string{"No results found.", "Try the Rates desk instead.", "Lists FX desk rows."} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if shell.last != nil {
		t.Error("an empty result is not reportable")
	}
}

func TestReportSavedOnConfirm(t *testing.T) {
	fake := llmtest.Text("SELECT desk FROM trade_new;", "Rates is the only active desk.", "EXECUTIVE SUMMARY\nRates dominates.")
	runner := &scriptedRunner{fn: deskRows}
	shell, out, _ := newTestShell(t, fake, runner, "which desks traded\nn\nreport\ny\nexit\n")
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	shell.now = func() time.Time { return now }

	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(shell.reportDir, summary.ReportFileName(now))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report not saved: %v\n%s", err, out.String())
	}
	if !strings.Contains(string(data), "Rates dominates.") || !strings.Contains(string(data), "SELECT desk FROM trade_new;") {
		t.Errorf("report file:\n%s", data)
	}
}

func TestRunCommandsWithoutState(t *testing.T) {
	shell, out, stub := newTestShell(t, llmtest.Text("unused"), &scriptedRunner{fn: deskRows}, "\nretry\nfix\nsummary\nreport\nrefresh\n")

	if err := shell.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"No previous question to retry.",
		"No failed query to fix.",
		"No recent query results available for a summary.",
		"No recent query results available for report generation.",
		"Schema refreshed: 3 tables in org_insights",
		"Goodbye!",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if stub.refreshed != 1 {
		t.Errorf("refreshed = %d", stub.refreshed)
	}
}

func TestRunRetry(t *testing.T) {
	fake := llmtest.Text(
		"SELECT desk FROM trade_new;", "Rates is the only active desk.",
		"SELECT desk FROM trade_new;", "Rates is the only active desk.",
	)
	runner := &scriptedRunner{fn: deskRows}
	shell, _, _ := newTestShell(t, fake, runner, "which desks traded\nn\nretry\nn\nq\n")

	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(runner.queries) != 2 {
		t.Errorf("queries = %v", runner.queries)
	}
}

func TestRunSummary(t *testing.T) {
	fake := llmtest.Text("SELECT desk FROM trade_new;", "Rates is the only active desk.", "Rates carries all booked risk.")
	runner := &scriptedRunner{fn: deskRows}
	shell, out, _ := newTestShell(t, fake, runner, "which desks traded\nn\nsummary\nq\n")

	if err := shell.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Rates carries all booked risk.") {
		t.Errorf("output:\n%s", out.String())
	}
}
