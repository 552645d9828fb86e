package service

import (
	"context"
	"time"

	"prompt-insights/internal/executor"
	"prompt-insights/internal/models"
	"prompt-insights/internal/sqlgen"
	"prompt-insights/internal/summary"

	"go.uber.org/zap"
)

type SchemaSource interface {
	Get() (string, error)
}

type QueryRunner interface {
	Execute(ctx context.Context, query string) *executor.Result
}

type TrainingContext interface {
	SemanticContext(ctx context.Context, question string) ([]models.TrainingExample, error)
}

type Outcome string

const (
	OutcomeAnswered  Outcome = "answered"
	OutcomeNoResults Outcome = "no_results"
	OutcomeFailed    Outcome = "failed"
)

// Answer is the result of one pass through the question loop.
type Answer struct {
	Question    string
	SQL         string
	Generation  *sqlgen.Generation
	Result      *executor.Result
	Outcome     Outcome
	Text        string
	Suggestions string
}

// Assistant runs question, generation, execution and summarizing in order.
type Assistant struct {
	schema     SchemaSource
	runner     QueryRunner
	training   TrainingContext
	generator  *sqlgen.Generator
	summarizer *summary.Summarizer
	logger     *zap.Logger
}

// NewAssistant builds an Assistant. training may be nil when no feedback
// store is configured.
func NewAssistant(
	schema SchemaSource,
	runner QueryRunner,
	training TrainingContext,
	generator *sqlgen.Generator,
	summarizer *summary.Summarizer,
	logger *zap.Logger,
) *Assistant {
	return &Assistant{
		schema:     schema,
		runner:     runner,
		training:   training,
		generator:  generator,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Ask generates a statement for question, runs it and describes the outcome.
// Execution failures are reported through Outcome, not the error.
func (a *Assistant) Ask(ctx context.Context, question string) (*Answer, error) {
	schemaText, err := a.schema.Get()
	if err != nil {
		return nil, err
	}

	gen, err := a.generator.Generate(ctx, question, schemaText, a.examples(ctx, question))
	if err != nil {
		return nil, err
	}
	ans := a.Run(ctx, question, gen.SQL)
	ans.Generation = gen
	return ans, nil
}

// Run executes query as given and summarizes the result.
func (a *Assistant) Run(ctx context.Context, question, query string) *Answer {
	start := time.Now()
	res := a.runner.Execute(ctx, query)

	ans := &Answer{
		Question: question,
		SQL:      query,
		Result:   res,
	}

	switch {
	case !res.Success:
		ans.Outcome = OutcomeFailed
		a.logger.Info("Query failed", zap.String("sql", query), zap.String("error", res.Error))
	case res.Empty():
		ans.Outcome = OutcomeNoResults
		ans.Text = summary.NoDataMessage
		ans.Suggestions = a.Alternatives(ctx, question, query)
	default:
		ans.Outcome = OutcomeAnswered
		ans.Text = a.summarizer.Answer(ctx, question, res)
	}

	a.logger.Info("Question processed",
		zap.String("outcome", string(ans.Outcome)),
		zap.Int("rows", res.RowCount),
		zap.Duration("duration", time.Since(start)),
	)
	return ans
}

// Repair asks the model for a corrected statement. The failed statement is
// never modified; an empty string comes back with the error on failure.
func (a *Assistant) Repair(ctx context.Context, failedSQL, dbError string) (string, error) {
	schemaText, err := a.schema.Get()
	if err != nil {
		return "", err
	}
	return a.generator.Fix(ctx, failedSQL, dbError, schemaText)
}

func (a *Assistant) Alternatives(ctx context.Context, question, query string) string {
	schemaText, err := a.schema.Get()
	if err != nil {
		a.logger.Warn("Schema unavailable for suggestions", zap.Error(err))
	}
	return a.generator.SuggestAlternatives(ctx, question, query, schemaText)
}

func (a *Assistant) Interpret(ctx context.Context, question string) sqlgen.Interpretation {
	return a.generator.Interpret(ctx, question)
}

func (a *Assistant) Explain(ctx context.Context, query string) (string, error) {
	return a.generator.Explain(ctx, query)
}

func (a *Assistant) ExecutiveSummary(ctx context.Context, question string, res *executor.Result) string {
	return a.summarizer.ExecutiveSummary(ctx, question, res)
}

func (a *Assistant) Report(ctx context.Context, question, query string, res *executor.Result) (*summary.Report, error) {
	return a.summarizer.ExecutiveReport(ctx, question, query, res)
}

// examples loads training context; lookup failures only lose the context.
func (a *Assistant) examples(ctx context.Context, question string) []models.TrainingExample {
	if a.training == nil {
		return nil
	}
	examples, err := a.training.SemanticContext(ctx, question)
	if err != nil {
		a.logger.Warn("Training context lookup failed", zap.Error(err))
		return nil
	}
	return examples
}
