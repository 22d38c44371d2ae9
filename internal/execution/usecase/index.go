package usecase

import (
	"context"
	"fmt"

	"workspace-query/internal/execution"
)

// IndexWorkspace embeds every live page of the workspace into the passage index.
func (uc *implUseCase) IndexWorkspace(ctx context.Context, workspaceID string) (int, error) {
	if uc.passages == nil {
		return 0, execution.ErrIndexUnavailable
	}

	docs, err := uc.rows.ListPageDocuments(ctx, workspaceID)
	if err != nil {
		uc.l.Errorf(ctx, "%s: list pages of %s: %v", execution.LogPrefixIndexWorkspace, workspaceID, err)
		return 0, fmt.Errorf("list pages: %w", err)
	}

	n, err := uc.passages.Index(ctx, workspaceID, docs)
	if err != nil {
		uc.l.Errorf(ctx, "%s: index %s: %v", execution.LogPrefixIndexWorkspace, workspaceID, err)
		return n, fmt.Errorf("index passages: %w", err)
	}
	uc.l.Infof(ctx, "%s: workspace %s indexed (%d pages, %d passages)", execution.LogPrefixIndexWorkspace, workspaceID, len(docs), n)
	return n, nil
}
