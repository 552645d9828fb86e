package dto

type FeedbackRequest struct {
	MessageID     string `json:"message_id"`
	Type          string `json:"type" validate:"required,oneof=up down"`
	Feedback      string `json:"feedback"`
	OriginalQuery string `json:"original_query"`
	SQLQuery      string `json:"sql_query"`
	Response      string `json:"response"`
	SessionID     string `json:"session_id"`
}

type FeedbackUpdateRequest struct {
	Type          *string `json:"type,omitempty"`
	Feedback      *string `json:"feedback,omitempty"`
	OriginalQuery *string `json:"original_query,omitempty"`
	SQLQuery      *string `json:"sql_query,omitempty"`
	Response      *string `json:"response,omitempty"`
	Status        *string `json:"status,omitempty"`
}

type FeedbackResponse struct {
	ID            int64  `json:"id"`
	MessageID     string `json:"message_id"`
	Type          string `json:"type"`
	Feedback      string `json:"feedback"`
	OriginalQuery string `json:"original_query"`
	SQLQuery      string `json:"sql_query"`
	Response      string `json:"response"`
	SessionID     string `json:"session_id"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type TrainingRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Context  string `json:"context"`
}

type TrainingResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Context    string `json:"context"`
	Source     string `json:"source"`
	ApprovedBy string `json:"approved_by"`
	CreatedAt  string `json:"created_at"`
}
