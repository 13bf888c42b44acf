package model

import (
	"encoding/json"
	"time"
)

// ChatRequest carries either a natural-language message or a pre-structured
// filter body (programmatic callers). When Message is empty and any filter
// field is set, classification is skipped entirely.
type ChatRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Message  string `json:"message"`

	// structured filter fields, used verbatim on the non-NLU path
	Status           string `json:"status"`
	ResolutionStatus string `json:"resolution_status"`
	AdminClientID    string `json:"admin_client_id"`
	ViewerClientID   string `json:"viewer_client_id"`
	CameraDetailID   string `json:"camera_detail_id"`
	DateRange        string `json:"date_range"`
	FromDate         string `json:"from_date"`
	ToDate           string `json:"to_date"`
	// size/from tolerate strings and floats; extraction coerces them
	Size      interface{} `json:"size"`
	From      interface{} `json:"from"`
	SortField string      `json:"sort_field"`
	SortOrder string      `json:"sort_order"`
	// Query overrides the built query body verbatim when present
	Query json.RawMessage `json:"query"`
}

// HasStructuredFilters reports whether any explicit filter field is set.
func (r *ChatRequest) HasStructuredFilters() bool {
	return r.Status != "" || r.ResolutionStatus != "" ||
		r.AdminClientID != "" || r.ViewerClientID != "" ||
		r.CameraDetailID != "" || r.DateRange != "" ||
		r.FromDate != "" || r.ToDate != "" ||
		r.Size != nil || r.From != nil ||
		r.SortField != "" || r.SortOrder != "" ||
		len(r.Query) > 0
}

// ChatResponse is the full pipeline result for one message.
type ChatResponse struct {
	Response       string          `json:"response"`
	QueryType      string          `json:"query_type"`
	ConversationID string          `json:"conversation_id"`
	ChatID         string          `json:"chat_id"`
	Operation      string          `json:"operation"`
	MessageCount   int             `json:"message_count"`
	Search         *SearchEnvelope `json:"search,omitempty"`
}

// ChatTurn is one question/answer pair in a conversation. Immutable once
// appended; list order is chronological order.
type ChatTurn struct {
	ChatID            string       `json:"chat_id"`
	UserMessage       string       `json:"user_message"`
	AssistantResponse string       `json:"assistant_response"`
	QueryType         string       `json:"query_type"`
	RawResults        *RawDocument `json:"raw_results,omitempty"`
	Timestamp         time.Time    `json:"timestamp"`
}

// UpsertResult reports what UpsertTurn did.
type UpsertResult struct {
	ConversationID string `json:"conversation_id"`
	ChatID         string `json:"chat_id"`
	Operation      string `json:"operation"` // created | updated
	MessageCount   int    `json:"message_count"`
}

const (
	OperationCreated = "created"
	OperationUpdated = "updated"
)

// ConversationResponse is the read model of a client's ledger. Absence is not
// an error: Found=false with an empty message list.
type ConversationResponse struct {
	Found          bool       `json:"found"`
	ClientID       string     `json:"client_id"`
	ConversationID string     `json:"conversation_id,omitempty"`
	MessageCount   int        `json:"message_count"`
	Messages       []ChatTurn `json:"messages"`
}

// SearchEnvelope is the uniform post-processed backend response.
type SearchEnvelope struct {
	Documents     []map[string]interface{} `json:"documents"`
	Total         int64                    `json:"total"`
	ExecutedQuery interface{}              `json:"executed_query,omitempty"`
	TookMs        int                      `json:"took_ms"`
	Aggregations  map[string]interface{}   `json:"aggregations,omitempty"`
}
