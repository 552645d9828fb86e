package repository

import (
	"context"
	"strings"

	"prompt-insights/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	contextKeywords = 3
	contextLimit    = 5
)

var trainingColumns = []string{
	"id",
	"question",
	"answer",
	"COALESCE(context, '')",
	"source",
	"COALESCE(approved_by, '')",
	"created_at",
}

type TrainingRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewTrainingRepository(db DBTX, logger *zap.Logger) *TrainingRepository {
	return &TrainingRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TrainingRepository) Create(ctx context.Context, ex *models.TrainingExample) error {
	if ex.Source == "" {
		ex.Source = models.TrainingSourceManual
	}

	query := squirrel.Insert("training_data").
		Columns("question", "answer", "context", "source", "approved_by").
		Values(ex.Question, ex.Answer, ex.Context, ex.Source, ex.ApprovedBy).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&ex.ID, &ex.CreatedAt)
}

func (r *TrainingRepository) List(ctx context.Context) ([]*models.TrainingExample, error) {
	query := squirrel.Select(trainingColumns...).
		From("training_data").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.query(ctx, query)
}

// SemanticContext finds examples whose question or answer contains the first
// keywords of the question as one phrase.
func (r *TrainingRepository) SemanticContext(ctx context.Context, question string) ([]models.TrainingExample, error) {
	words := strings.Fields(strings.ToLower(question))
	if len(words) == 0 {
		return nil, nil
	}
	if len(words) > contextKeywords {
		words = words[:contextKeywords]
	}
	pattern := "%" + strings.Join(words, " ") + "%"

	query := squirrel.Select(trainingColumns...).
		From("training_data").
		Where(squirrel.Or{
			squirrel.ILike{"question": pattern},
			squirrel.ILike{"answer": pattern},
		}).
		Limit(contextLimit).
		PlaceholderFormat(squirrel.Dollar)

	found, err := r.query(ctx, query)
	if err != nil {
		return nil, err
	}

	examples := make([]models.TrainingExample, 0, len(found))
	for _, ex := range found {
		examples = append(examples, *ex)
	}
	return examples, nil
}

func (r *TrainingRepository) query(ctx context.Context, q squirrel.SelectBuilder) ([]*models.TrainingExample, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []*models.TrainingExample
	for rows.Next() {
		ex, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

func scanTraining(row pgx.Row) (*models.TrainingExample, error) {
	var ex models.TrainingExample
	if err := row.Scan(&ex.ID, &ex.Question, &ex.Answer, &ex.Context, &ex.Source, &ex.ApprovedBy, &ex.CreatedAt); err != nil {
		return nil, err
	}
	return &ex, nil
}
