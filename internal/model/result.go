package model

import (
	"encoding/json"
	"time"
)

// Pipeline stage names.
const (
	StageClassification = "classification"
	StageContext        = "context_extraction"
	StageRouting        = "routing"
	StageExecution      = "execution"
	StageGeneration     = "generation"
)

// StageTimings records how long each pipeline stage took. Stages that did not run stay zero.
type StageTimings struct {
	Classification time.Duration
	Context        time.Duration
	Routing        time.Duration
	Execution      time.Duration
	Generation     time.Duration
	Total          time.Duration
}

// Set records d for the named stage.
func (t *StageTimings) Set(stage string, d time.Duration) {
	switch stage {
	case StageClassification:
		t.Classification = d
	case StageContext:
		t.Context = d
	case StageRouting:
		t.Routing = d
	case StageExecution:
		t.Execution = d
	case StageGeneration:
		t.Generation = d
	}
}

// MarshalJSON renders every stage in milliseconds.
func (t StageTimings) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]float64{
		"classificationMs": ms(t.Classification),
		"contextMs":        ms(t.Context),
		"routingMs":        ms(t.Routing),
		"executionMs":      ms(t.Execution),
		"generationMs":     ms(t.Generation),
		"totalMs":          ms(t.Total),
	})
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// DebugInfo is attached to a result when the caller asks for it.
type DebugInfo struct {
	Intent                   Intent          `json:"intent"`
	ClassificationConfidence float64         `json:"classificationConfidence"`
	Route                    RouteType       `json:"route"`
	RouteConfidence          float64         `json:"routeConfidence"`
	Reasoning                string          `json:"reasoning"`
	DataSources              []string        `json:"dataSources"`
	Entities                 []Entity        `json:"entities,omitempty"`
	TimeRange                *TimeWindow     `json:"timeRange,omitempty"`
	Parameters               RouteParameters `json:"parameters"`
	RealTime                 bool            `json:"realTime"`
	Cacheable                bool            `json:"cacheable"`
	DatabaseReferences       []string        `json:"databaseReferences,omitempty"`
}

// OrchestrationResult is what a single processed query returns.
type OrchestrationResult struct {
	RequestID      string             `json:"requestId"`
	Success        bool               `json:"success"`
	Response       StructuredResponse `json:"response"`
	Timings        StageTimings       `json:"timings"`
	Cached         bool               `json:"cached"`
	BudgetExceeded bool               `json:"budgetExceeded"`
	Error          string             `json:"error,omitempty"`
	Debug          *DebugInfo         `json:"debug,omitempty"`
}

// ProcessOptions tunes a single ProcessQuery call.
type ProcessOptions struct {
	IncludeDebug    bool
	BypassCache     bool
	MaxResponseTime time.Duration
	Session         SessionContext
}
