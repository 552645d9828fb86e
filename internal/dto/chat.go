package dto

import "prompt-insights/internal/executor"

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}

type ConfirmRequest struct {
	Confirmed bool   `json:"confirmed"`
	SessionID string `json:"session_id" validate:"required"`
}

type RefineRequest struct {
	OriginalQuestion string `json:"original_question" validate:"required"`
	Feedback         string `json:"feedback"`
	SessionID        string `json:"session_id"`
}

type FixRequest struct {
	Confirmed bool `json:"confirmed"`
}

type Interpretation struct {
	DataRequested       string `json:"data_requested"`
	AnalysisType        string `json:"analysis_type"`
	ContextSignificance string `json:"context_significance"`
}

type ChatResponse struct {
	Response            string          `json:"response"`
	SQLQuery            string          `json:"sql_query,omitempty"`
	Columns             []string        `json:"columns,omitempty"`
	RawData             []executor.Row  `json:"raw_data,omitempty"`
	RowCount            int             `json:"row_count"`
	Truncated           bool            `json:"truncated,omitempty"`
	Success             bool            `json:"success"`
	SessionID           string          `json:"session_id"`
	Timestamp           string          `json:"timestamp"`
	NeedsRefinement     bool            `json:"needs_refinement"`
	NeedsConfirmation   bool            `json:"needs_confirmation"`
	InterpretedQuestion *Interpretation `json:"interpreted_question,omitempty"`
	Suggestions         string          `json:"suggestions,omitempty"`
	SuggestedFix        string          `json:"suggested_fix,omitempty"`
	Error               string          `json:"error,omitempty"`
}

type HistoryMessage struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Content   string `json:"content"`
	SQLQuery  string `json:"sql_query,omitempty"`
	RowCount  int    `json:"row_count,omitempty"`
	Timestamp string `json:"timestamp"`
}

type ReportRequest struct {
	Question string         `json:"question" validate:"required"`
	SQLQuery string         `json:"sql_query"`
	Columns  []string       `json:"columns,omitempty"`
	RawData  []executor.Row `json:"raw_data"`
	Save     bool           `json:"save"`
}

type ReportResponse struct {
	Report    string `json:"report"`
	Question  string `json:"question"`
	RowCount  int    `json:"row_count"`
	SavedTo   string `json:"saved_to,omitempty"`
	Timestamp string `json:"timestamp"`
}

type SchemaInfoResponse struct {
	Database    string `json:"database"`
	TableCount  int    `json:"table_count"`
	GeneratedAt string `json:"generated_at"`
	FileSize    int64  `json:"file_size"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}
