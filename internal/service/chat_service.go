package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"prompt-insights/internal/apperr"
	"prompt-insights/internal/dto"
	"prompt-insights/internal/session"

	"go.uber.org/zap"
)

var (
	ErrNoPendingConfirmation = errors.New("no pending confirmation")
	ErrNoPendingFix          = errors.New("no pending fix")
	errPendingConfirmation   = errors.New("confirmation pending")
)

const (
	confirmPrompt       = "Please confirm your question:"
	confirmFirstMessage = "Please confirm the previous question first."
	rephraseMessage     = "Please rephrase or clarify your question."
	fixDiscardedMessage = "Suggested fix discarded."
	// answers shorter than this are flagged for refinement
	minAnswerLength = 20
)

type ChatService struct {
	assistant *Assistant
	sessions  session.Store
	logger    *zap.Logger
	now       func() time.Time
}

func NewChatService(assistant *Assistant, sessions session.Store, logger *zap.Logger) *ChatService {
	return &ChatService{
		assistant: assistant,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
	}
}

// Chat stores the question as pending and returns the model's reading of it
// for the user to confirm. Nothing is executed yet.
func (s *ChatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	question := strings.TrimSpace(req.Message)
	if question == "" {
		return nil, apperr.New(apperr.InvalidInput, "message is required").WithOp("chat.Chat")
	}

	sess, err := s.resolve(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Chat message received", zap.String("session_id", sess.ID), zap.String("message", question))

	if sess.Pending != nil {
		return s.awaitingConfirmation(sess.ID), nil
	}

	interp := s.assistant.Interpret(ctx, question)

	_, err = s.sessions.Update(ctx, sess.ID, func(ss *session.Session) error {
		if ss.Pending != nil {
			return errPendingConfirmation
		}
		ss.Pending = &session.Pending{Question: question, CreatedAt: s.now()}
		return nil
	})
	if errors.Is(err, errPendingConfirmation) {
		return s.awaitingConfirmation(sess.ID), nil
	}
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Response:          confirmPrompt,
		Success:           true,
		SessionID:         sess.ID,
		Timestamp:         s.timestamp(),
		NeedsConfirmation: true,
		InterpretedQuestion: &dto.Interpretation{
			DataRequested:       interp.DataRequested,
			AnalysisType:        interp.AnalysisType,
			ContextSignificance: interp.ContextSignificance,
		},
	}, nil
}

// Confirm answers the pending question when confirmed, or drops it.
func (s *ChatService) Confirm(ctx context.Context, req *dto.ConfirmRequest) (*dto.ChatResponse, error) {
	var pending session.Pending
	_, err := s.sessions.Update(ctx, req.SessionID, func(ss *session.Session) error {
		if ss.Pending == nil {
			return ErrNoPendingConfirmation
		}
		pending = *ss.Pending
		ss.Pending = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !req.Confirmed {
		return &dto.ChatResponse{
			Response:  rephraseMessage,
			Success:   true,
			SessionID: req.SessionID,
			Timestamp: s.timestamp(),
		}, nil
	}

	ans, err := s.assistant.Ask(ctx, pending.Question)
	if err != nil {
		s.logger.Error("Failed to answer question", zap.String("session_id", req.SessionID), zap.Error(err))
		return nil, err
	}

	return s.finish(ctx, req.SessionID, ans)
}

// Refine re-asks the question with the user's clarification appended.
func (s *ChatService) Refine(ctx context.Context, req *dto.RefineRequest) (*dto.ChatResponse, error) {
	question := strings.TrimSpace(req.OriginalQuestion)
	if feedback := strings.TrimSpace(req.Feedback); feedback != "" {
		question += ". " + feedback
	}
	return s.Chat(ctx, &dto.ChatRequest{Message: question, SessionID: req.SessionID})
}

// ApplyFix runs the repaired statement suggested after the last failure, or
// discards it.
func (s *ChatService) ApplyFix(ctx context.Context, sessionID string, req *dto.FixRequest) (*dto.ChatResponse, error) {
	var fix session.Fix
	_, err := s.sessions.Update(ctx, sessionID, func(ss *session.Session) error {
		if ss.PendingFix == nil {
			return ErrNoPendingFix
		}
		fix = *ss.PendingFix
		ss.PendingFix = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !req.Confirmed {
		return &dto.ChatResponse{
			Response:  fixDiscardedMessage,
			Success:   true,
			SessionID: sessionID,
			Timestamp: s.timestamp(),
		}, nil
	}

	s.logger.Info("Running suggested fix", zap.String("session_id", sessionID), zap.String("sql", fix.FixedSQL))
	return s.finish(ctx, sessionID, s.assistant.Run(ctx, fix.Question, fix.FixedSQL))
}

func (s *ChatService) History(ctx context.Context, sessionID string) ([]dto.HistoryMessage, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.HistoryMessage, 0, len(sess.History))
	for _, m := range sess.History {
		out = append(out, dto.HistoryMessage{
			ID:        m.ID,
			Type:      string(m.Role),
			Content:   m.Content,
			SQLQuery:  m.SQL,
			RowCount:  m.RowCount,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	return out, nil
}

// finish records the exchange and, after a failure, stores a suggested fix
// for the user to accept.
func (s *ChatService) finish(ctx context.Context, sessionID string, ans *Answer) (*dto.ChatResponse, error) {
	resp := s.respond(sessionID, ans)

	var fix *session.Fix
	if ans.Outcome == OutcomeFailed {
		fixed, err := s.assistant.Repair(ctx, ans.SQL, ans.Result.Error)
		switch {
		case err != nil:
			s.logger.Warn("Could not suggest a fix", zap.Error(err))
		case fixed == ans.SQL:
			s.logger.Info("Suggested fix is identical to the failed query", zap.String("session_id", sessionID))
		default:
			fix = &session.Fix{
				Question:  ans.Question,
				FailedSQL: ans.SQL,
				Error:     ans.Result.Error,
				FixedSQL:  fixed,
			}
			resp.SuggestedFix = fixed
		}
	}

	_, err := s.sessions.Update(ctx, sessionID, func(ss *session.Session) error {
		now := s.now()
		ss.Append(session.RoleUser, ans.Question, "", 0, now)
		ss.Append(session.RoleAssistant, resp.Response, ans.SQL, resp.RowCount, now)
		ss.PendingFix = fix
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ChatService) respond(sessionID string, ans *Answer) *dto.ChatResponse {
	res := ans.Result
	resp := &dto.ChatResponse{
		Response:  ans.Text,
		SQLQuery:  ans.SQL,
		Columns:   res.Columns,
		RawData:   res.Rows,
		RowCount:  res.RowCount,
		Truncated: res.Truncated,
		Success:   res.Success,
		SessionID: sessionID,
		Timestamp: s.timestamp(),
	}

	switch ans.Outcome {
	case OutcomeFailed:
		resp.Response = "Query failed: " + res.Error
		resp.Error = res.Error
	case OutcomeNoResults:
		resp.Suggestions = ans.Suggestions
		resp.NeedsRefinement = true
	case OutcomeAnswered:
		resp.NeedsRefinement = len(ans.Text) < minAnswerLength
	}
	return resp
}

func (s *ChatService) resolve(ctx context.Context, id string) (*session.Session, error) {
	if id != "" {
		sess, err := s.sessions.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}
		s.logger.Info("Unknown session, starting a new one", zap.String("session_id", id))
	}
	return s.sessions.Create(ctx)
}

func (s *ChatService) awaitingConfirmation(sessionID string) *dto.ChatResponse {
	return &dto.ChatResponse{
		Response:  confirmFirstMessage,
		Success:   false,
		SessionID: sessionID,
		Timestamp: s.timestamp(),
	}
}

func (s *ChatService) timestamp() string {
	return s.now().Format(time.RFC3339)
}
