package model

import "time"

// RouteType is the backend strategy chosen to answer a query.
type RouteType string

const (
	RouteDatabaseQuery  RouteType = "database_query"
	RouteRAGSearch      RouteType = "rag_search"
	RouteAnalyticsQuery RouteType = "analytics_query"
	RouteHybridQuery    RouteType = "hybrid_query"
	RouteActionHandler  RouteType = "action_handler"
	RouteFallback       RouteType = "fallback_handler"
)

// IsValid reports whether r is one of the six routes.
func (r RouteType) IsValid() bool {
	switch r {
	case RouteDatabaseQuery, RouteRAGSearch, RouteAnalyticsQuery, RouteHybridQuery, RouteActionHandler, RouteFallback:
		return true
	}
	return false
}

// SearchStrategy used by rag_search.
const SearchSemantic = "semantic"

// Hybrid sources.
const (
	SourceDatabases = "databases"
	SourcePages     = "pages"
)

// TimeWindow is a resolved, concrete time range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type DatabaseQueryParams struct {
	DatabaseIDs []string    `json:"databaseIds"`
	Limit       int         `json:"limit"`
	TimeRange   *TimeWindow `json:"timeRange,omitempty"`
}

type RAGSearchParams struct {
	SearchStrategy string   `json:"searchStrategy"`
	MaxResults     int      `json:"maxResults"`
	PageIDs        []string `json:"pageIds,omitempty"`
}

type AnalyticsParams struct {
	DatabaseIDs  []string    `json:"databaseIds"`
	Aggregations []string    `json:"aggregations"`
	Metrics      []string    `json:"metrics,omitempty"`
	TimeRange    *TimeWindow `json:"timeRange,omitempty"`
}

type HybridParams struct {
	Sources     []string `json:"sources"`
	DatabaseIDs []string `json:"databaseIds,omitempty"`
	PageIDs     []string `json:"pageIds,omitempty"`
	Limit       int      `json:"limit"`
	MaxResults  int      `json:"maxResults"`
}

type ActionParams struct {
	RequiresConfirmation bool     `json:"requiresConfirmation"`
	TargetIDs            []string `json:"targetIds,omitempty"`
}

type FallbackParams struct {
	SuggestClarification bool     `json:"suggestClarification"`
	Suggestions          []string `json:"suggestions,omitempty"`
}

// RouteParameters carries exactly one populated variant, the one matching RouteDecision.Primary.
type RouteParameters struct {
	Database  *DatabaseQueryParams `json:"database,omitempty"`
	RAG       *RAGSearchParams     `json:"rag,omitempty"`
	Analytics *AnalyticsParams     `json:"analytics,omitempty"`
	Hybrid    *HybridParams        `json:"hybrid,omitempty"`
	Action    *ActionParams        `json:"action,omitempty"`
	Fallback  *FallbackParams      `json:"fallback,omitempty"`
}

// RouteDecision is the output of the query router.
type RouteDecision struct {
	Primary    RouteType       `json:"primary"`
	Secondary  RouteType       `json:"secondary,omitempty"`
	Confidence float64         `json:"confidence"`
	Reasoning  string          `json:"reasoning"`
	Parameters RouteParameters `json:"parameters"`
}

// ExecuteInput is what the route execution backend receives.
type ExecuteInput struct {
	Query       string
	WorkspaceID string
	UserID      string
	Route       RouteDecision
}
