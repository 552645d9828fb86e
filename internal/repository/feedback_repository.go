package repository

import (
	"context"
	"fmt"

	"prompt-insights/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var feedbackColumns = []string{
	"id",
	"message_id",
	"type",
	"COALESCE(feedback, '')",
	"COALESCE(original_query, '')",
	"COALESCE(sql_query, '')",
	"COALESCE(response, '')",
	"COALESCE(session_id, '')",
	"status",
	"created_at",
}

type FeedbackRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewFeedbackRepository(db DBTX, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.Status == "" {
		fb.Status = models.FeedbackPending
	}

	query := squirrel.Insert("feedback").
		Columns("message_id", "type", "feedback", "original_query", "sql_query", "response", "session_id", "status").
		Values(fb.MessageID, fb.Type, fb.Feedback, fb.OriginalQuery, fb.SQLQuery, fb.Response, fb.SessionID, fb.Status).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&fb.ID, &fb.CreatedAt)
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	query := squirrel.Select(feedbackColumns...).
		From("feedback").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	fb, err := scanFeedback(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return fb, nil
}

func (r *FeedbackRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	return r.list(ctx, nil)
}

// ListPending returns thumbs-down feedback that has not been reviewed yet.
func (r *FeedbackRepository) ListPending(ctx context.Context) ([]*models.Feedback, error) {
	return r.list(ctx, squirrel.Eq{"status": models.FeedbackPending, "type": models.FeedbackDown})
}

func (r *FeedbackRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Feedback, error) {
	query := squirrel.Select(feedbackColumns...).
		From("feedback").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	if where != nil {
		query = query.Where(where)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []*models.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, fb)
	}
	return feedbacks, rows.Err()
}

func (r *FeedbackRepository) Update(ctx context.Context, id int64, upd models.FeedbackUpdate) error {
	set := map[string]any{}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Feedback != nil {
		set["feedback"] = *upd.Feedback
	}
	if upd.OriginalQuery != nil {
		set["original_query"] = *upd.OriginalQuery
	}
	if upd.SQLQuery != nil {
		set["sql_query"] = *upd.SQLQuery
	}
	if upd.Response != nil {
		set["response"] = *upd.Response
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if len(set) == 0 {
		return nil
	}

	query := squirrel.Update("feedback").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execOne(ctx, query)
}

func (r *FeedbackRepository) SetStatus(ctx context.Context, id int64, status models.FeedbackStatus) error {
	query := squirrel.Update("feedback").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execOne(ctx, query)
}

func (r *FeedbackRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("feedback").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execOne(ctx, query)
}

// Approve turns feedback into a training example and marks it approved in
// one transaction.
func (r *FeedbackRepository) Approve(ctx context.Context, id int64, approvedBy string) (_ *models.TrainingExample, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	sel, args, err := squirrel.Select(feedbackColumns...).
		From("feedback").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	fb, err := scanFeedback(tx.QueryRow(ctx, sel, args...))
	if err != nil {
		return nil, notFound(err)
	}

	ex := &models.TrainingExample{
		Question:   fb.OriginalQuery,
		Answer:     "User feedback: " + fb.Feedback,
		Context:    "Original response: " + fb.Response,
		Source:     models.TrainingSourceFeedback,
		ApprovedBy: approvedBy,
	}

	ins, args, err := squirrel.Insert("training_data").
		Columns("question", "answer", "context", "source", "approved_by").
		Values(ex.Question, ex.Answer, ex.Context, ex.Source, ex.ApprovedBy).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err = tx.QueryRow(ctx, ins, args...).Scan(&ex.ID, &ex.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert training example: %w", err)
	}

	upd, args, err := squirrel.Update("feedback").
		Set("status", models.FeedbackApproved).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err = tx.Exec(ctx, upd, args...); err != nil {
		return nil, fmt.Errorf("failed to mark feedback approved: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit approval: %w", err)
	}

	r.logger.Info("Feedback approved into training data",
		zap.Int64("feedback_id", id),
		zap.Int64("training_id", ex.ID),
	)
	return ex, nil
}

func (r *FeedbackRepository) execOne(ctx context.Context, q squirrel.Sqlizer) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var fb models.Feedback
	if err := row.Scan(
		&fb.ID, &fb.MessageID, &fb.Type, &fb.Feedback, &fb.OriginalQuery,
		&fb.SQLQuery, &fb.Response, &fb.SessionID, &fb.Status, &fb.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &fb, nil
}
