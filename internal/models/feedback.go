package models

import "time"

type FeedbackType string

const (
	FeedbackUp   FeedbackType = "up"
	FeedbackDown FeedbackType = "down"
)

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackApproved FeedbackStatus = "approved"
	FeedbackRejected FeedbackStatus = "rejected"
)

type Feedback struct {
	ID            int64          `db:"id"`
	MessageID     string         `db:"message_id"`
	Type          FeedbackType   `db:"type"`
	Feedback      string         `db:"feedback"`
	OriginalQuery string         `db:"original_query"`
	SQLQuery      string         `db:"sql_query"`
	Response      string         `db:"response"`
	SessionID     string         `db:"session_id"`
	Status        FeedbackStatus `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
}

// FeedbackUpdate carries the fields an admin may change; nil means unchanged.
type FeedbackUpdate struct {
	Type          *FeedbackType
	Feedback      *string
	OriginalQuery *string
	SQLQuery      *string
	Response      *string
	Status        *FeedbackStatus
}

func (u FeedbackUpdate) Empty() bool {
	return u.Type == nil && u.Feedback == nil && u.OriginalQuery == nil &&
		u.SQLQuery == nil && u.Response == nil && u.Status == nil
}
