package router

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-query/internal/model"
	"workspace-query/pkg/log"
)

type fixedTimes struct{ window *model.TimeWindow }

func (f fixedTimes) ExtractTimeRange(model.IntentClassification) *model.TimeWindow { return f.window }

var lastQuarter = &model.TimeWindow{
	Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
}

func newTestRouter() *QueryRouter {
	return New(log.NewNop(), fixedTimes{window: lastQuarter}, Config{MaxDatabases: 2})
}

func contextWith(dbs int, pages int) model.QueryContext {
	qc := model.QueryContext{}
	for i := 0; i < dbs; i++ {
		qc.Databases = append(qc.Databases, model.DatabaseInfo{ID: string(rune('a'+i)) + "-db", Name: "DB"})
	}
	for i := 0; i < pages; i++ {
		qc.Pages = append(qc.Pages, model.PageInfo{ID: string(rune('a'+i)) + "-page"})
	}
	return qc
}

func TestDetermineRoute_Rules(t *testing.T) {
	tests := []struct {
		name    string
		cls     model.IntentClassification
		qc      model.QueryContext
		primary model.RouteType
		check   func(t *testing.T, d model.RouteDecision)
	}{
		{
			name:    "data query with databases",
			cls:     model.IntentClassification{Intent: model.IntentDataQuery, Confidence: 0.9},
			qc:      contextWith(3, 1),
			primary: model.RouteDatabaseQuery,
			check: func(t *testing.T, d model.RouteDecision) {
				require.NotNil(t, d.Parameters.Database)
				assert.Equal(t, []string{"a-db", "b-db"}, d.Parameters.Database.DatabaseIDs)
				assert.Equal(t, DefaultRowLimit, d.Parameters.Database.Limit)
				assert.Equal(t, model.RouteRAGSearch, d.Secondary)
				assert.Nil(t, d.Parameters.RAG)
			},
		},
		{
			name:    "data query without databases",
			cls:     model.IntentClassification{Intent: model.IntentDataQuery, Confidence: 0.9},
			qc:      contextWith(0, 2),
			primary: model.RouteFallback,
			check: func(t *testing.T, d model.RouteDecision) {
				assert.Contains(t, d.Reasoning, "unclear")
			},
		},
		{
			name:    "content search",
			cls:     model.IntentClassification{Intent: model.IntentContentSearch, Confidence: 0.8},
			qc:      contextWith(0, 0),
			primary: model.RouteRAGSearch,
			check: func(t *testing.T, d model.RouteDecision) {
				require.NotNil(t, d.Parameters.RAG)
				assert.Equal(t, model.SearchSemantic, d.Parameters.RAG.SearchStrategy)
				assert.Equal(t, DefaultRAGMaxResults, d.Parameters.RAG.MaxResults)
			},
		},
		{
			name: "analytics",
			cls: model.IntentClassification{
				Intent: model.IntentAnalytics, Confidence: 0.85, Aggregations: []string{"sum"},
				Entities: []model.Entity{{Type: model.EntityMetric, Value: "revenue"}},
			},
			qc:      contextWith(1, 0),
			primary: model.RouteAnalyticsQuery,
			check: func(t *testing.T, d model.RouteDecision) {
				require.NotNil(t, d.Parameters.Analytics)
				assert.Equal(t, []string{"sum"}, d.Parameters.Analytics.Aggregations)
				assert.Equal(t, []string{"revenue"}, d.Parameters.Analytics.Metrics)
				assert.Equal(t, lastQuarter, d.Parameters.Analytics.TimeRange)
			},
		},
		{
			name: "summary over databases and pages",
			cls: model.IntentClassification{Intent: model.IntentSummary, Confidence: 0.8, Entities: []model.Entity{
				{Type: model.EntityDatabase, Value: "Tasks"}, {Type: model.EntityPage, Value: "Roadmap"},
			}},
			qc:      contextWith(1, 2),
			primary: model.RouteHybridQuery,
			check: func(t *testing.T, d model.RouteDecision) {
				require.NotNil(t, d.Parameters.Hybrid)
				assert.Equal(t, []string{model.SourceDatabases, model.SourcePages}, d.Parameters.Hybrid.Sources)
				assert.Len(t, d.Parameters.Hybrid.PageIDs, 2)
			},
		},
		{
			name:    "summary of pages only",
			cls:     model.IntentClassification{Intent: model.IntentSummary, Confidence: 0.8},
			qc:      contextWith(1, 2),
			primary: model.RouteRAGSearch,
		},
		{
			name:    "action",
			cls:     model.IntentClassification{Intent: model.IntentAction, Confidence: 0.95},
			qc:      contextWith(1, 0),
			primary: model.RouteActionHandler,
			check: func(t *testing.T, d model.RouteDecision) {
				require.NotNil(t, d.Parameters.Action)
				assert.True(t, d.Parameters.Action.RequiresConfirmation)
			},
		},
		{
			name:    "help",
			cls:     model.IntentClassification{Intent: model.IntentHelp, Confidence: 0.9},
			primary: model.RouteFallback,
			check: func(t *testing.T, d model.RouteDecision) {
				assert.False(t, d.Parameters.Fallback.SuggestClarification)
				assert.Equal(t, HelpSuggestions, d.Parameters.Fallback.Suggestions)
			},
		},
		{
			name:    "ambiguous",
			cls:     model.IntentClassification{Intent: model.IntentAmbiguous, Confidence: 0.9},
			qc:      contextWith(2, 2),
			primary: model.RouteFallback,
		},
		{
			name:    "low confidence data query",
			cls:     model.IntentClassification{Intent: model.IntentDataQuery, Confidence: 0.3},
			qc:      contextWith(2, 0),
			primary: model.RouteFallback,
		},
	}

	r := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := r.DetermineRoute(context.Background(), "q", tt.cls, tt.qc)
			assert.Equal(t, tt.primary, d.Primary)
			assert.True(t, d.Primary.IsValid())
			assert.GreaterOrEqual(t, d.Confidence, 0.0)
			assert.LessOrEqual(t, d.Confidence, 1.0)
			if d.Primary == model.RouteFallback {
				require.NotNil(t, d.Parameters.Fallback)
			}
			if tt.check != nil {
				tt.check(t, d)
			}
		})
	}
}

func TestDetermineRoute_AmbiguousAlwaysFallback(t *testing.T) {
	r := newTestRouter()
	for _, conf := range []float64{0, 0.1, 0.25, 0.49} {
		d := r.DetermineRoute(context.Background(), "hmm", model.IntentClassification{Intent: model.IntentAmbiguous, Confidence: conf}, contextWith(3, 3))
		assert.Equal(t, model.RouteFallback, d.Primary)
		assert.True(t, d.Parameters.Fallback.SuggestClarification)
		assert.Contains(t, d.Reasoning, "unclear")
	}
}

func TestAdjustConfidence(t *testing.T) {
	matched := model.ContextEntity{Entity: model.Entity{Type: model.EntityDatabase}, MatchedResourceID: "db"}
	unmatched := model.ContextEntity{Entity: model.Entity{Type: model.EntityDatabase}}
	dateRange := model.ContextEntity{Entity: model.Entity{Type: model.EntityDateRange}}

	base := 0.7
	assert.Equal(t, base, adjustConfidence(base, nil))
	assert.Greater(t, adjustConfidence(base, []model.ContextEntity{matched}), base)
	assert.Less(t, adjustConfidence(base, []model.ContextEntity{unmatched}), base)
	assert.Equal(t, base, adjustConfidence(base, []model.ContextEntity{dateRange}))

	many := make([]model.ContextEntity, 100)
	for i := range many {
		many[i] = matched
	}
	assert.LessOrEqual(t, adjustConfidence(1, many), 1.0)
	assert.GreaterOrEqual(t, adjustConfidence(0, []model.ContextEntity{unmatched}), 0.0)
	assert.Equal(t, 1.0, adjustConfidence(7, nil))
	assert.Equal(t, 0.0, adjustConfidence(-2, nil))
}
