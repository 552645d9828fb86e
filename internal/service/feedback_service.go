package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prompt-insights/internal/apperr"
	"prompt-insights/internal/dto"
	"prompt-insights/internal/models"
	"prompt-insights/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedbackStore interface {
	Create(ctx context.Context, fb *models.Feedback) error
	GetByID(ctx context.Context, id int64) (*models.Feedback, error)
	List(ctx context.Context) ([]*models.Feedback, error)
	ListPending(ctx context.Context) ([]*models.Feedback, error)
	Update(ctx context.Context, id int64, upd models.FeedbackUpdate) error
	SetStatus(ctx context.Context, id int64, status models.FeedbackStatus) error
	Delete(ctx context.Context, id int64) error
	Approve(ctx context.Context, id int64, approvedBy string) (*models.TrainingExample, error)
}

type TrainingStore interface {
	Create(ctx context.Context, ex *models.TrainingExample) error
	List(ctx context.Context) ([]*models.TrainingExample, error)
}

type FeedbackService struct {
	feedback FeedbackStore
	training TrainingStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewFeedbackService(feedback FeedbackStore, training TrainingStore, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		training: training,
		logger:   logger,
		now:      time.Now,
	}
}

// Submit records a thumbs up or down from the chat surface.
func (s *FeedbackService) Submit(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	messageID := req.MessageID
	if messageID == "" {
		messageID = uuid.NewString()
	}
	return s.create(ctx, messageID, req)
}

// CreateAsAdmin records feedback entered by hand in the admin console.
func (s *FeedbackService) CreateAsAdmin(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	return s.create(ctx, fmt.Sprintf("admin-%d", s.now().Unix()), req)
}

func (s *FeedbackService) create(ctx context.Context, messageID string, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	typ, err := parseFeedbackType(req.Type)
	if err != nil {
		return nil, err
	}

	fb := &models.Feedback{
		MessageID:     messageID,
		Type:          typ,
		Feedback:      sanitizeUTF8(req.Feedback),
		OriginalQuery: sanitizeUTF8(req.OriginalQuery),
		SQLQuery:      sanitizeUTF8(req.SQLQuery),
		Response:      sanitizeUTF8(req.Response),
		SessionID:     req.SessionID,
		Status:        models.FeedbackPending,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.logger.Info("Feedback recorded",
		zap.Int64("id", fb.ID),
		zap.String("type", string(fb.Type)),
		zap.String("session_id", fb.SessionID),
	)
	return toFeedbackResponse(fb), nil
}

func (s *FeedbackService) List(ctx context.Context) ([]dto.FeedbackResponse, error) {
	return s.list(s.feedback.List(ctx))
}

func (s *FeedbackService) ListPending(ctx context.Context) ([]dto.FeedbackResponse, error) {
	return s.list(s.feedback.ListPending(ctx))
}

func (s *FeedbackService) list(items []*models.Feedback, err error) ([]dto.FeedbackResponse, error) {
	if err != nil {
		return nil, err
	}
	out := make([]dto.FeedbackResponse, 0, len(items))
	for _, fb := range items {
		out = append(out, *toFeedbackResponse(fb))
	}
	return out, nil
}

func (s *FeedbackService) Update(ctx context.Context, id int64, req *dto.FeedbackUpdateRequest) (*dto.FeedbackResponse, error) {
	upd := models.FeedbackUpdate{}
	if req.Type != nil {
		typ, err := parseFeedbackType(*req.Type)
		if err != nil {
			return nil, err
		}
		upd.Type = &typ
	}
	if req.Status != nil {
		status, err := parseFeedbackStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		upd.Status = &status
	}
	upd.Feedback = sanitizePtr(req.Feedback)
	upd.OriginalQuery = sanitizePtr(req.OriginalQuery)
	upd.SQLQuery = sanitizePtr(req.SQLQuery)
	upd.Response = sanitizePtr(req.Response)

	if upd.Empty() {
		return nil, apperr.New(apperr.InvalidInput, "no fields to update").WithOp("feedback.Update")
	}

	if err := s.feedback.Update(ctx, id, upd); err != nil {
		return nil, notFoundErr(err, "feedback.Update")
	}

	fb, err := s.feedback.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundErr(err, "feedback.Update")
	}
	return toFeedbackResponse(fb), nil
}

func (s *FeedbackService) Delete(ctx context.Context, id int64) error {
	return notFoundErr(s.feedback.Delete(ctx, id), "feedback.Delete")
}

// Approve copies the feedback into training data and marks it approved.
func (s *FeedbackService) Approve(ctx context.Context, id int64, approvedBy string) (*dto.TrainingResponse, error) {
	ex, err := s.feedback.Approve(ctx, id, approvedBy)
	if err != nil {
		return nil, notFoundErr(err, "feedback.Approve")
	}
	return toTrainingResponse(ex), nil
}

func (s *FeedbackService) Reject(ctx context.Context, id int64) error {
	if err := s.feedback.SetStatus(ctx, id, models.FeedbackRejected); err != nil {
		return notFoundErr(err, "feedback.Reject")
	}
	s.logger.Info("Feedback rejected", zap.Int64("id", id))
	return nil
}

func (s *FeedbackService) Training(ctx context.Context) ([]dto.TrainingResponse, error) {
	items, err := s.training.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TrainingResponse, 0, len(items))
	for _, ex := range items {
		out = append(out, *toTrainingResponse(ex))
	}
	return out, nil
}

func (s *FeedbackService) AddTraining(ctx context.Context, req *dto.TrainingRequest, approvedBy string) (*dto.TrainingResponse, error) {
	if req.Question == "" || req.Answer == "" {
		return nil, apperr.New(apperr.InvalidInput, "question and answer are required").WithOp("feedback.AddTraining")
	}

	ex := &models.TrainingExample{
		Question:   sanitizeUTF8(req.Question),
		Answer:     sanitizeUTF8(req.Answer),
		Context:    sanitizeUTF8(req.Context),
		Source:     models.TrainingSourceManual,
		ApprovedBy: approvedBy,
	}
	if err := s.training.Create(ctx, ex); err != nil {
		return nil, fmt.Errorf("failed to save training example: %w", err)
	}
	return toTrainingResponse(ex), nil
}

func parseFeedbackType(v string) (models.FeedbackType, error) {
	switch t := models.FeedbackType(v); t {
	case models.FeedbackUp, models.FeedbackDown:
		return t, nil
	}
	return "", apperr.New(apperr.InvalidInput, "type must be up or down")
}

func parseFeedbackStatus(v string) (models.FeedbackStatus, error) {
	switch st := models.FeedbackStatus(v); st {
	case models.FeedbackPending, models.FeedbackApproved, models.FeedbackRejected:
		return st, nil
	}
	return "", apperr.New(apperr.InvalidInput, "status must be pending, approved or rejected")
}

func notFoundErr(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Wrap(apperr.NotFound, "feedback not found", err).WithOp(op)
	}
	return err
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizeUTF8(*s)
	return &v
}

func toFeedbackResponse(fb *models.Feedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		ID:            fb.ID,
		MessageID:     fb.MessageID,
		Type:          string(fb.Type),
		Feedback:      fb.Feedback,
		OriginalQuery: fb.OriginalQuery,
		SQLQuery:      fb.SQLQuery,
		Response:      fb.Response,
		SessionID:     fb.SessionID,
		Status:        string(fb.Status),
		CreatedAt:     fb.CreatedAt.Format(time.RFC3339),
	}
}

func toTrainingResponse(ex *models.TrainingExample) *dto.TrainingResponse {
	return &dto.TrainingResponse{
		ID:         ex.ID,
		Question:   ex.Question,
		Answer:     ex.Answer,
		Context:    ex.Context,
		Source:     string(ex.Source),
		ApprovedBy: ex.ApprovedBy,
		CreatedAt:  ex.CreatedAt.Format(time.RFC3339),
	}
}
