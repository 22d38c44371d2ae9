package orchestrator

import (
	"context"

	"workspace-query/internal/model"
)

// UseCase runs natural-language queries through the full pipeline.
type UseCase interface {
	// ProcessQuery never fails: problems surface as Success == false with a text block.
	ProcessQuery(ctx context.Context, query, workspaceID, userID string, opts model.ProcessOptions) model.OrchestrationResult
	CacheStats() CacheStats
	ClearCache()
}
