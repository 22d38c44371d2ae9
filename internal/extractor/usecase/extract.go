package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"workspace-query/internal/extractor"
	"workspace-query/internal/extractor/repository"
	"workspace-query/internal/metrics"
	"workspace-query/internal/model"
)

// Extract fetches workspace, databases, pages, user and recent activity concurrently,
// then matches entities and scores the resources.
func (uc *implUseCase) Extract(ctx context.Context, input extractor.ExtractInput) (model.QueryContext, error) {
	workspaceID := strings.TrimSpace(input.WorkspaceID)
	if workspaceID == "" {
		return model.QueryContext{}, extractor.ErrWorkspaceNotFound
	}

	var (
		ws     model.WorkspaceInfo
		wsErr  error
		dbs    []model.DatabaseInfo
		pages  []model.PageInfo
		user   model.UserProfile
		recent []string
	)

	// The workspace lookup is kept out of the group's cancellation so a missing
	// workspace is reported as such even when a list call fails first.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ws, wsErr = uc.workspace(ctx, workspaceID)
		return nil
	})
	g.Go(func() error {
		var err error
		dbs, err = uc.repo.ListDatabases(gctx, workspaceID)
		if err != nil {
			return fmt.Errorf("list databases: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pages, err = uc.repo.ListPages(gctx, repository.ListPagesOptions{WorkspaceID: workspaceID, Limit: uc.pageLimit})
		if err != nil {
			return fmt.Errorf("list pages: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		user, err = uc.repo.GetUser(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		ids, err := uc.repo.ListRecentDatabaseIDs(gctx, input.UserID, uc.now().Add(-extractor.RecentAccessWindow))
		if err != nil {
			uc.l.Warnf(ctx, "%s: recent activity unavailable: %v", extractor.LogPrefixExtract, err)
			return nil
		}
		recent = ids
		return nil
	})

	err := g.Wait()
	if wsErr != nil {
		return model.QueryContext{}, wsErr
	}
	if err != nil {
		return model.QueryContext{}, err
	}

	if user.ID == "" {
		user.ID = input.UserID
	}

	recentSet := make(map[string]bool, len(recent))
	for _, id := range recent {
		recentSet[id] = true
	}

	// Scoring writes into the slices; the repository's copies stay untouched.
	scoredDBs := make([]model.DatabaseInfo, len(dbs))
	copy(scoredDBs, dbs)
	scoredPages := make([]model.PageInfo, len(pages))
	copy(scoredPages, pages)

	qc := model.QueryContext{
		Workspace:         ws,
		Databases:         scoredDBs,
		Pages:             scoredPages,
		User:              user,
		ExtractedEntities: matchEntities(input.Classification.Entities, ws, dbs, pages),
	}
	uc.scoreDatabases(qc.Databases, input.Query, input.Classification.Entities, recentSet)
	uc.scorePages(qc.Pages, input.Query, input.Classification.Entities)
	sortDatabases(qc.Databases)
	sortPages(qc.Pages)

	uc.l.Debugf(ctx, "%s: %d databases, %d pages, %d entities for workspace %s",
		extractor.LogPrefixExtract, len(qc.Databases), len(qc.Pages), len(qc.ExtractedEntities), workspaceID)
	return qc, nil
}

// workspace reads through the per-workspace cache. Missing workspaces are not cached.
func (uc *implUseCase) workspace(ctx context.Context, workspaceID string) (model.WorkspaceInfo, error) {
	if ws, ok := uc.workspaces.Peek(workspaceID); ok {
		uc.metrics.CacheEvent(metrics.CacheWorkspace, metrics.EventHit)
		return ws, nil
	}
	uc.metrics.CacheEvent(metrics.CacheWorkspace, metrics.EventMiss)

	ws, err := uc.repo.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return model.WorkspaceInfo{}, fmt.Errorf("get workspace: %w", err)
	}
	if ws.ID == "" {
		return model.WorkspaceInfo{}, extractor.ErrWorkspaceNotFound
	}
	uc.workspaces.Add(workspaceID, ws)
	return ws, nil
}
