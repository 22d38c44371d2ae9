package router

import (
	"context"
	"fmt"
	"strings"

	"workspace-query/internal/model"
)

// DetermineRoute picks the primary route for a query. Sub-threshold classifications and ambiguous
// intents always end up in the fallback handler, whatever else the rules would say.
func (r *QueryRouter) DetermineRoute(ctx context.Context, query string, cls model.IntentClassification, qc model.QueryContext) model.RouteDecision {
	decision := r.decide(cls, qc)
	decision.Confidence = adjustConfidence(cls.Confidence, qc.ExtractedEntities)

	r.l.Infof(ctx, "%s: %q -> %s (confidence %.2f): %s",
		LogPrefixDetermineRoute, query, decision.Primary, decision.Confidence, decision.Reasoning)
	return decision
}

func (r *QueryRouter) decide(cls model.IntentClassification, qc model.QueryContext) model.RouteDecision {
	if cls.Intent == model.IntentAmbiguous || cls.Confidence < r.cfg.LowConfidenceThreshold {
		return r.fallback(fmt.Sprintf(ReasonAmbiguous, cls.Intent, cls.Confidence), DefaultSuggestions)
	}

	hasDatabases := len(qc.Databases) > 0
	hasPages := len(qc.Pages) > 0

	switch cls.Intent {
	case model.IntentDataQuery:
		if hasDatabases {
			return r.databaseQuery(cls, qc, hasPages)
		}

	case model.IntentContentSearch:
		return r.ragSearch(qc, hasDatabases)

	case model.IntentAnalytics:
		return r.analytics(cls, qc)

	case model.IntentSummary, model.IntentNavigation:
		structured, unstructured := signals(cls, qc)
		switch {
		case structured && unstructured && hasDatabases && hasPages:
			return r.hybrid(cls, qc)
		case structured && hasDatabases:
			return r.databaseQuery(cls, qc, hasPages)
		case hasPages:
			return r.ragSearch(qc, hasDatabases)
		}

	case model.IntentAction:
		return model.RouteDecision{
			Primary:   model.RouteActionHandler,
			Reasoning: ReasonAction,
			Parameters: model.RouteParameters{Action: &model.ActionParams{
				RequiresConfirmation: true,
				TargetIDs:            matchedIDs(qc.ExtractedEntities, ""),
			}},
		}

	case model.IntentHelp:
		d := r.fallback(ReasonHelp, HelpSuggestions)
		d.Parameters.Fallback.SuggestClarification = false
		return d
	}

	return r.fallback(fmt.Sprintf(ReasonNoDataFallback, cls.Intent), suggestionsFor(qc))
}

func (r *QueryRouter) databaseQuery(cls model.IntentClassification, qc model.QueryContext, hasPages bool) model.RouteDecision {
	ids := topDatabaseIDs(qc.Databases, r.cfg.MaxDatabases)
	d := model.RouteDecision{
		Primary:   model.RouteDatabaseQuery,
		Reasoning: fmt.Sprintf(ReasonDatabaseQuery, len(ids)),
		Parameters: model.RouteParameters{Database: &model.DatabaseQueryParams{
			DatabaseIDs: ids,
			Limit:       r.cfg.RowLimit,
			TimeRange:   r.times.ExtractTimeRange(cls),
		}},
	}
	if hasPages {
		d.Secondary = model.RouteRAGSearch
	}
	return d
}

func (r *QueryRouter) ragSearch(qc model.QueryContext, hasDatabases bool) model.RouteDecision {
	d := model.RouteDecision{
		Primary:   model.RouteRAGSearch,
		Reasoning: ReasonRAGSearch,
		Parameters: model.RouteParameters{RAG: &model.RAGSearchParams{
			SearchStrategy: model.SearchSemantic,
			MaxResults:     r.cfg.RAGMaxResults,
			PageIDs:        matchedIDs(qc.ExtractedEntities, model.ResourcePage),
		}},
	}
	if hasDatabases {
		d.Secondary = model.RouteDatabaseQuery
	}
	return d
}

func (r *QueryRouter) analytics(cls model.IntentClassification, qc model.QueryContext) model.RouteDecision {
	aggregations := cls.Aggregations
	if len(aggregations) == 0 {
		aggregations = DefaultAggregations
	}
	ids := topDatabaseIDs(qc.Databases, r.cfg.MaxDatabases)
	return model.RouteDecision{
		Primary:   model.RouteAnalyticsQuery,
		Secondary: model.RouteDatabaseQuery,
		Reasoning: fmt.Sprintf(ReasonAnalytics, strings.Join(aggregations, "/"), len(ids)),
		Parameters: model.RouteParameters{Analytics: &model.AnalyticsParams{
			DatabaseIDs:  ids,
			Aggregations: aggregations,
			Metrics:      cls.EntitiesOfType(model.EntityMetric),
			TimeRange:    r.times.ExtractTimeRange(cls),
		}},
	}
}

func (r *QueryRouter) hybrid(cls model.IntentClassification, qc model.QueryContext) model.RouteDecision {
	pageIDs := make([]string, 0, r.cfg.RAGMaxResults)
	for _, p := range qc.Pages {
		if len(pageIDs) == r.cfg.RAGMaxResults {
			break
		}
		pageIDs = append(pageIDs, p.ID)
	}
	return model.RouteDecision{
		Primary:   model.RouteHybridQuery,
		Reasoning: fmt.Sprintf(ReasonHybrid, cls.Intent),
		Parameters: model.RouteParameters{Hybrid: &model.HybridParams{
			Sources:     []string{model.SourceDatabases, model.SourcePages},
			DatabaseIDs: topDatabaseIDs(qc.Databases, r.cfg.MaxDatabases),
			PageIDs:     pageIDs,
			Limit:       r.cfg.RowLimit,
			MaxResults:  r.cfg.RAGMaxResults,
		}},
	}
}

func (r *QueryRouter) fallback(reason string, suggestions []string) model.RouteDecision {
	return model.RouteDecision{
		Primary:   model.RouteFallback,
		Reasoning: reason,
		Parameters: model.RouteParameters{Fallback: &model.FallbackParams{
			SuggestClarification: true,
			Suggestions:          suggestions,
		}},
	}
}

// signals reports whether the query points at structured data, unstructured content, or both.
func signals(cls model.IntentClassification, qc model.QueryContext) (structured, unstructured bool) {
	for _, e := range cls.Entities {
		switch e.Type {
		case model.EntityDatabase, model.EntityMetric:
			structured = true
		case model.EntityPage:
			unstructured = true
		}
	}
	for _, e := range qc.ExtractedEntities {
		switch e.MatchedResourceType {
		case model.ResourceDatabase:
			structured = true
		case model.ResourcePage:
			unstructured = true
		}
	}
	return structured, unstructured
}

func topDatabaseIDs(dbs []model.DatabaseInfo, n int) []string {
	if len(dbs) < n {
		n = len(dbs)
	}
	ids := make([]string, 0, n)
	for _, db := range dbs[:n] {
		ids = append(ids, db.ID)
	}
	return ids
}

// matchedIDs lists matched resource ids, optionally restricted to one resource type.
func matchedIDs(entities []model.ContextEntity, kind model.ResourceType) []string {
	var ids []string
	for _, e := range entities {
		if e.Matched() && (kind == "" || e.MatchedResourceType == kind) {
			ids = append(ids, e.MatchedResourceID)
		}
	}
	return ids
}

func suggestionsFor(qc model.QueryContext) []string {
	if len(qc.Databases) == 0 {
		return DefaultSuggestions
	}
	out := make([]string, 0, len(DefaultSuggestions))
	for _, db := range qc.Databases {
		if len(out) == cap(out) {
			break
		}
		out = append(out, fmt.Sprintf("Show records from %s", db.Name))
	}
	return out
}
