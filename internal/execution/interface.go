package execution

import (
	"context"

	"workspace-query/internal/model"
)

// Executor runs a routed query against the workspace backends.
type Executor interface {
	Execute(ctx context.Context, input model.ExecuteInput) (model.QueryResponse, error)
}

// Indexer (re)builds the passage index used by content search.
type Indexer interface {
	IndexWorkspace(ctx context.Context, workspaceID string) (int, error)
}
