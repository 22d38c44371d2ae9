package model

// Intent is the classified purpose of a query.
type Intent string

const (
	IntentDataQuery     Intent = "data_query"
	IntentContentSearch Intent = "content_search"
	IntentAnalytics     Intent = "analytics"
	IntentSummary       Intent = "summary"
	IntentAction        Intent = "action"
	IntentNavigation    Intent = "navigation"
	IntentHelp          Intent = "help"
	IntentAmbiguous     Intent = "ambiguous"
)

// IsValid reports whether i is one of the known intents.
func (i Intent) IsValid() bool {
	switch i {
	case IntentDataQuery, IntentContentSearch, IntentAnalytics, IntentSummary,
		IntentAction, IntentNavigation, IntentHelp, IntentAmbiguous:
		return true
	}
	return false
}

// OutputFormat is the display shape suggested for the answer.
type OutputFormat string

const (
	FormatText               OutputFormat = "text"
	FormatTable              OutputFormat = "table"
	FormatChart              OutputFormat = "chart"
	FormatList               OutputFormat = "list"
	FormatMixed              OutputFormat = "mixed"
	FormatActionConfirmation OutputFormat = "action_confirmation"
)

// IsValid reports whether f is one of the known formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatChart, FormatList, FormatMixed, FormatActionConfirmation:
		return true
	}
	return false
}

// EntityType classifies an extracted reference.
type EntityType string

const (
	EntityDatabase  EntityType = "database"
	EntityPage      EntityType = "page"
	EntityProject   EntityType = "project"
	EntityWorkspace EntityType = "workspace"
	EntityDateRange EntityType = "date_range"
	EntityMetric    EntityType = "metric"
	EntityGeneric   EntityType = "entity"
)

// IsValid reports whether t is one of the known entity types.
func (t EntityType) IsValid() bool {
	switch t {
	case EntityDatabase, EntityPage, EntityProject, EntityWorkspace, EntityDateRange, EntityMetric, EntityGeneric:
		return true
	}
	return false
}

// Entity is a typed reference found in a query.
type Entity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
}

// TimeRange as extracted from the query. Relative is a free-form phrase resolved later.
type TimeRange struct {
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Relative string `json:"relative,omitempty"`
}

// IntentClassification is the immutable result of intent classification.
type IntentClassification struct {
	Intent          Intent       `json:"intent"`
	Confidence      float64      `json:"confidence"`
	SuggestedFormat OutputFormat `json:"suggestedFormat"`
	Entities        []Entity     `json:"entities"`
	TimeRange       *TimeRange   `json:"timeRange,omitempty"`
	Aggregations    []string     `json:"aggregations,omitempty"`
	Explanation     string       `json:"explanation"`
}

// EntitiesOfType returns the values of every entity of type t, in order.
func (c IntentClassification) EntitiesOfType(t EntityType) []string {
	var values []string
	for _, e := range c.Entities {
		if e.Type == t {
			values = append(values, e.Value)
		}
	}
	return values
}

// SessionContext is the light per-session context that accompanies a query to the classifier.
type SessionContext struct {
	WorkspaceID   string   `json:"workspaceId,omitempty"`
	CurrentPageID string   `json:"currentPageId,omitempty"`
	RecentQueries []string `json:"recentQueries,omitempty"`
}
