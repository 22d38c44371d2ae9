package model

import "time"

// ResponseType tags the payload carried by a QueryResponse.
type ResponseType string

const (
	ResponseTypeData      ResponseType = "data"
	ResponseTypeContent   ResponseType = "content"
	ResponseTypeChart     ResponseType = "chart"
	ResponseTypeAnalytics ResponseType = "analytics"
	ResponseTypeAction    ResponseType = "action"
	ResponseTypeHybrid    ResponseType = "hybrid"
)

// TableData is tabular output from a structured query.
type TableData struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Passage is one retrieved piece of page content.
type Passage struct {
	PageID  string  `json:"pageId"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// ContentData is unstructured output from a content search.
type ContentData struct {
	Text     string    `json:"text"`
	Passages []Passage `json:"passages,omitempty"`
}

// AnalyticsData holds per-label aggregates. Any series may be absent.
type AnalyticsData struct {
	Metric  string    `json:"metric"`
	Labels  []string  `json:"labels"`
	Sum     []float64 `json:"sum,omitempty"`
	Average []float64 `json:"average,omitempty"`
	Count   []float64 `json:"count,omitempty"`
}

// ActionData describes an action awaiting confirmation.
type ActionData struct {
	Message              string   `json:"message"`
	RequiresConfirmation bool     `json:"requiresConfirmation"`
	TargetIDs            []string `json:"targetIds,omitempty"`
}

// ResponseData is a tagged payload; only the fields relevant to the response type are set.
type ResponseData struct {
	Table     *TableData     `json:"table,omitempty"`
	Content   *ContentData   `json:"content,omitempty"`
	Analytics *AnalyticsData `json:"analytics,omitempty"`
	Action    *ActionData    `json:"action,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// ExecutionMetadata describes where a QueryResponse came from.
type ExecutionMetadata struct {
	Source         string        `json:"source"`
	Confidence     float64       `json:"confidence"`
	ProcessingTime time.Duration `json:"processingTime"`
	RowCount       *int          `json:"rowCount,omitempty"`
}

// QueryResponse is the normalized envelope returned by route execution.
type QueryResponse struct {
	Type     ResponseType      `json:"type"`
	Data     ResponseData      `json:"data"`
	Metadata ExecutionMetadata `json:"metadata"`
}
