package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"prompt-insights/internal/apperr"
	"prompt-insights/internal/executor"
	"prompt-insights/internal/llm/llmtest"
	"prompt-insights/internal/models"
	"prompt-insights/internal/sqlgen"
	"prompt-insights/internal/summary"

	"go.uber.org/zap"
)

type schemaStub struct {
	text string
	err  error
}

func (s schemaStub) Get() (string, error) { return s.text, s.err }

type runnerFunc func(query string) *executor.Result

type recordingRunner struct {
	mu      sync.Mutex
	fn      runnerFunc
	queries []string
}

func (r *recordingRunner) Execute(_ context.Context, query string) *executor.Result {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	return r.fn(query)
}

type trainingStub struct {
	examples []models.TrainingExample
	err      error
	asked    []string
}

func (t *trainingStub) SemanticContext(_ context.Context, question string) ([]models.TrainingExample, error) {
	t.asked = append(t.asked, question)
	return t.examples, t.err
}

func rowsResult() *executor.Result {
	return &executor.Result{
		Success:  true,
		Columns:  []string{"desk", "trades"},
		Rows:     []executor.Row{{"desk": "Rates", "trades": int64(3)}},
		RowCount: 1,
	}
}

func emptyResult() *executor.Result {
	return &executor.Result{Success: true, Columns: []string{"desk"}, Rows: []executor.Row{}}
}

func failedResult(msg string) *executor.Result {
	return &executor.Result{Success: false, Error: msg}
}

const testSchema = "Table: trade_new\nColumns: desk (varchar)"

func newTestAssistant(fake *llmtest.Fake, runner QueryRunner, training TrainingContext) *Assistant {
	logger := zap.NewNop()
	return NewAssistant(
		schemaStub{text: testSchema},
		runner,
		training,
		sqlgen.NewGenerator(fake, logger),
		summary.NewSummarizer(fake, logger),
		logger,
	)
}

func TestAskAnswered(t *testing.T) {
	fake := llmtest.Text("SELECT desk, COUNT(*) AS trades FROM trade_new GROUP BY desk", "Rates desk leads with 3 trades.")
	runner := &recordingRunner{fn: func(string) *executor.Result { return rowsResult() }}
	training := &trainingStub{examples: []models.TrainingExample{{Question: "desks", Answer: "SELECT desk FROM trade_new;"}}}
	a := newTestAssistant(fake, runner, training)

	ans, err := a.Ask(context.Background(), "trades per desk")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Outcome != OutcomeAnswered || ans.Text != "Rates desk leads with 3 trades." {
		t.Errorf("answer = %+v", ans)
	}
	if runner.queries[0] != "SELECT desk, COUNT(*) AS trades FROM trade_new GROUP BY desk;" {
		t.Errorf("executed %q", runner.queries[0])
	}
	if ans.Generation.Source != sqlgen.SourceModel {
		t.Errorf("source = %s", ans.Generation.Source)
	}
	if len(training.asked) != 1 || !strings.Contains(fake.Calls()[0].Prompt, "SELECT desk FROM trade_new;") {
		t.Error("training context should reach the generation prompt")
	}
}

func TestAskNoResultsSuggestsAlternatives(t *testing.T) {
	fake := llmtest.Text("SELECT desk FROM trade_new WHERE 1 = 0;", "1. Drop the date filter.")
	runner := &recordingRunner{fn: func(string) *executor.Result { return emptyResult() }}
	a := newTestAssistant(fake, runner, nil)

	ans, err := a.Ask(context.Background(), "desks trading yesterday")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Outcome != OutcomeNoResults || ans.Text != summary.NoDataMessage {
		t.Errorf("answer = %+v", ans)
	}
	if ans.Suggestions != "1. Drop the date filter." {
		t.Errorf("suggestions = %q", ans.Suggestions)
	}
	if len(runner.queries) != 1 {
		t.Error("suggestions must not be executed")
	}
}

func TestAskFailureLeavesRepairToCaller(t *testing.T) {
	fake := llmtest.Text("SELECT bogus FROM trade_new;")
	runner := &recordingRunner{fn: func(string) *executor.Result { return failedResult("Unknown column 'bogus'") }}
	a := newTestAssistant(fake, runner, nil)

	ans, err := a.Ask(context.Background(), "bogus")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Outcome != OutcomeFailed || ans.SQL != "SELECT bogus FROM trade_new;" {
		t.Errorf("answer = %+v", ans)
	}
	if n := len(fake.Calls()); n != 1 {
		t.Errorf("model called %d times, want only generation", n)
	}
}

func TestAskToleratesTrainingFailure(t *testing.T) {
	fake := llmtest.Text("SELECT 1;", "One row came back from the desk query.")
	runner := &recordingRunner{fn: func(string) *executor.Result { return rowsResult() }}
	a := newTestAssistant(fake, runner, &trainingStub{err: errors.New("connection refused")})

	ans, err := a.Ask(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Outcome != OutcomeAnswered {
		t.Errorf("outcome = %s", ans.Outcome)
	}
}

func TestAskSchemaUnavailable(t *testing.T) {
	fake := llmtest.Text("SELECT 1;")
	logger := zap.NewNop()
	a := NewAssistant(
		schemaStub{err: apperr.New(apperr.SchemaUnavailable, "no schema loaded")},
		&recordingRunner{fn: func(string) *executor.Result { return rowsResult() }},
		nil,
		sqlgen.NewGenerator(fake, logger),
		summary.NewSummarizer(fake, logger),
		logger,
	)

	if _, err := a.Ask(context.Background(), "q"); apperr.KindOf(err) != apperr.SchemaUnavailable {
		t.Errorf("Ask() error = %v", err)
	}
	if len(fake.Calls()) != 0 {
		t.Error("model should not be called without a schema")
	}
}

func TestRepairKeepsOriginalOnModelFailure(t *testing.T) {
	a := newTestAssistant(llmtest.Failing(), &recordingRunner{}, nil)

	failed := "SELECT bogus FROM trade_new;"
	fixed, err := a.Repair(context.Background(), failed, "Unknown column")
	if fixed != "" || apperr.KindOf(err) != apperr.ModelCallFailed {
		t.Errorf("Repair() = %q, %v", fixed, err)
	}
	if failed != "SELECT bogus FROM trade_new;" {
		t.Error("original statement changed")
	}
}
