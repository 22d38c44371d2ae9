package repository

import (
	"context"
	"time"

	"workspace-query/internal/model"
)

// CatalogRepository reads the workspace resources a query can be answered from.
// Lookups of a single missing row return a zero value and no error.
type CatalogRepository interface {
	GetWorkspace(ctx context.Context, workspaceID string) (model.WorkspaceInfo, error)
	ListDatabases(ctx context.Context, workspaceID string) ([]model.DatabaseInfo, error)
	ListPages(ctx context.Context, opt ListPagesOptions) ([]model.PageInfo, error)
	GetUser(ctx context.Context, userID string) (model.UserProfile, error)
	ListRecentDatabaseIDs(ctx context.Context, userID string, since time.Time) ([]string, error)
}
