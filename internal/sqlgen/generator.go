// Package sqlgen turns questions into MySQL statements and repairs statements
// that failed. Model output is cleaned lexically and checked against a
// denylist; it is never parsed.
package sqlgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"prompt-insights/internal/apperr"
	"prompt-insights/internal/llm"
	"prompt-insights/internal/models"

	"go.uber.org/zap"
)

type Source string

const (
	SourceShortcut Source = "shortcut"
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Generation is the statement chosen for a question.
type Generation struct {
	SQL    string
	Source Source
	// RejectedSQL and ForbiddenToken are set when the model's statement was
	// replaced by a fallback.
	RejectedSQL    string
	ForbiddenToken string
}

func (g *Generation) Substituted() bool { return g.Source == SourceFallback }

// Interpretation is the model's structured reading of a question.
type Interpretation struct {
	DataRequested       string `json:"data_requested"`
	AnalysisType        string `json:"analysis_type"`
	ContextSignificance string `json:"context_significance"`
}

const suggestionFallback = "Try checking the date format or available data in the tables."

var (
	generateOpts  = llm.Options{Temperature: 0, MaxTokens: 500}
	fixOpts       = llm.Options{Temperature: 0, MaxTokens: 300}
	suggestOpts   = llm.Options{Temperature: 0.3, MaxTokens: 300}
	explainOpts   = llm.Options{Temperature: 0.3, MaxTokens: 300}
	interpretOpts = llm.Options{Temperature: 0.1, MaxTokens: 200}
)

type Generator struct {
	llm    llm.Completer
	logger *zap.Logger
}

func NewGenerator(completer llm.Completer, logger *zap.Logger) *Generator {
	return &Generator{
		llm:    completer,
		logger: logger,
	}
}

// Generate produces a statement for question. Administrative questions are
// answered without a model call.
func (g *Generator) Generate(ctx context.Context, question, schema string, examples []models.TrainingExample) (*Generation, error) {
	if sql, ok := AdminShortcut(question); ok {
		g.logger.Debug("Admin shortcut matched", zap.String("sql", sql))
		return &Generation{SQL: sql, Source: SourceShortcut}, nil
	}

	if len(examples) > MaxTrainingSnippets {
		examples = examples[:MaxTrainingSnippets]
	}

	raw, err := g.llm.Complete(ctx, buildGenerationPrompt(question, schema, examples), generateOpts)
	if err != nil {
		return nil, apperr.Wrap(apperr.ModelCallFailed, "could not generate SQL", err).WithOp("sqlgen.Generate")
	}
	if strings.TrimSpace(raw) == "" {
		return nil, apperr.New(apperr.ModelCallFailed, "model returned an empty statement").WithOp("sqlgen.Generate")
	}

	sql := CleanSQL(raw)
	if tok, bad := ForbiddenConstruct(sql); bad {
		fallback := FallbackQuery(question)
		g.logger.Warn("Generated SQL uses a forbidden construct, substituting fallback",
			zap.String("token", tok),
			zap.String("rejected_sql", sql),
		)
		return &Generation{
			SQL:            fallback,
			Source:         SourceFallback,
			RejectedSQL:    sql,
			ForbiddenToken: tok,
		}, nil
	}

	return &Generation{SQL: sql, Source: SourceModel}, nil
}

// Fix asks the model for a corrected version of failedSQL. On failure it
// returns an empty string and a ModelCallFailed error; failedSQL is left for
// the caller to keep.
func (g *Generator) Fix(ctx context.Context, failedSQL, dbError, schema string) (string, error) {
	raw, err := g.llm.Complete(ctx, buildFixPrompt(failedSQL, dbError, schema), fixOpts)
	if err != nil {
		return "", apperr.Wrap(apperr.ModelCallFailed, "could not generate a fix", err).WithOp("sqlgen.Fix")
	}
	if strings.TrimSpace(raw) == "" {
		return "", apperr.New(apperr.ModelCallFailed, "model returned an empty fix").WithOp("sqlgen.Fix")
	}

	fixed := CleanSQL(raw)
	if tok, bad := ForbiddenConstruct(fixed); bad {
		g.logger.Warn("Suggested fix uses a forbidden construct", zap.String("token", tok))
		return "", apperr.New(apperr.ModelCallFailed, fmt.Sprintf("suggested fix uses unsupported %s", tok)).WithOp("sqlgen.Fix")
	}
	return fixed, nil
}

// SuggestAlternatives describes other ways to ask for the data after a
// query failed or came back empty. The suggestions are never executed.
func (g *Generator) SuggestAlternatives(ctx context.Context, question, sql, schema string) string {
	out, err := g.llm.Complete(ctx, buildAlternativesPrompt(question, sql, schema), suggestOpts)
	if err != nil || strings.TrimSpace(out) == "" {
		if err != nil {
			g.logger.Warn("Alternative suggestions failed", zap.Error(err))
		}
		return suggestionFallback
	}
	return strings.TrimSpace(out)
}

func (g *Generator) Explain(ctx context.Context, sql string) (string, error) {
	out, err := g.llm.Complete(ctx, buildExplainPrompt(sql), explainOpts)
	if err != nil {
		return "", apperr.Wrap(apperr.ModelCallFailed, "could not explain query", err).WithOp("sqlgen.Explain")
	}
	return strings.TrimSpace(out), nil
}

// Interpret never fails; a generic interpretation is returned when the model
// is unavailable or its answer is not valid JSON.
func (g *Generator) Interpret(ctx context.Context, question string) Interpretation {
	fallback := Interpretation{
		DataRequested:       "Analysis of: " + question,
		AnalysisType:        "Data query and analysis",
		ContextSignificance: "Provides business insights from database",
	}

	out, err := g.llm.Complete(ctx, buildInterpretPrompt(question), interpretOpts)
	if err != nil {
		g.logger.Warn("Question interpretation failed", zap.Error(err))
		return fallback
	}

	var in Interpretation
	if err := json.Unmarshal([]byte(stripJSONFences(out)), &in); err != nil {
		g.logger.Debug("Interpretation is not valid JSON", zap.String("raw", out))
		return fallback
	}
	if in.DataRequested == "" {
		in.DataRequested = fallback.DataRequested
	}
	if in.AnalysisType == "" {
		in.AnalysisType = fallback.AnalysisType
	}
	if in.ContextSignificance == "" {
		in.ContextSignificance = fallback.ContextSignificance
	}
	return in
}

func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if start, end := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}'); start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}
