package extractor

import (
	"context"

	"workspace-query/internal/model"
)

// UseCase resolves which workspace resources are relevant to a classified query.
type UseCase interface {
	// Extract fetches and scores the workspace resources. Fails with ErrWorkspaceNotFound.
	Extract(ctx context.Context, input ExtractInput) (model.QueryContext, error)

	// Enrich applies intent-specific filtering and boosts to an extracted context.
	Enrich(ctx context.Context, qc model.QueryContext, cls model.IntentClassification) model.QueryContext
}
