package usecase

import (
	"strings"

	"workspace-query/internal/intent"
	"workspace-query/internal/metrics"
	"workspace-query/internal/model"
	"workspace-query/internal/orchestrator"
)

// cacheKey is the workspace plus the normalized query.
func cacheKey(workspaceID, query string) string {
	return workspaceID + ":" + strings.ToLower(strings.TrimSpace(query))
}

// lookup reads without refreshing recency, so size eviction drops the oldest insertion.
func (uc *implUseCase) lookup(key string) (model.OrchestrationResult, bool) {
	res, ok := uc.cache.Peek(key)
	if ok {
		uc.hits.Add(1)
		uc.metrics.CacheEvent(metrics.CacheResponse, metrics.EventHit)
	} else {
		uc.misses.Add(1)
		uc.metrics.CacheEvent(metrics.CacheResponse, metrics.EventMiss)
	}
	return res, ok
}

// shouldCache refuses actions and answers that depend on the current state of the data.
func shouldCache(cls model.IntentClassification, route model.RouteDecision) bool {
	if cls.Intent == model.IntentAction || route.Primary == model.RouteActionHandler {
		return false
	}
	return !intent.RequiresFreshData(cls)
}

func (uc *implUseCase) CacheStats() orchestrator.CacheStats {
	return orchestrator.CacheStats{
		Size:     uc.cache.Len(),
		Capacity: uc.capacity,
		Hits:     uc.hits.Load(),
		Misses:   uc.misses.Load(),
	}
}

func (uc *implUseCase) ClearCache() {
	uc.cache.Purge()
}
