package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"workspace-query/internal/extractor"
	"workspace-query/internal/extractor/repository"
	"workspace-query/internal/metrics"
	"workspace-query/internal/model"
	"workspace-query/pkg/log"
)

type implUseCase struct {
	repo       repository.CatalogRepository
	l          log.Logger
	workspaces *expirable.LRU[string, model.WorkspaceInfo]
	metrics    *metrics.Metrics
	pageLimit  int
	now        func() time.Time
}

var _ extractor.UseCase = (*implUseCase)(nil)

// New creates a new extractor UseCase backed by the catalog repository.
func New(repo repository.CatalogRepository, l log.Logger, opts extractor.Options) *implUseCase {
	if opts.WorkspaceCacheTTL <= 0 {
		opts.WorkspaceCacheTTL = extractor.DefaultWorkspaceCacheTTL
	}
	if opts.WorkspaceCacheSize <= 0 {
		opts.WorkspaceCacheSize = extractor.DefaultWorkspaceCacheSize
	}
	if opts.PageLimit <= 0 {
		opts.PageLimit = extractor.DefaultPageLimit
	}

	return &implUseCase{
		repo:       repo,
		l:          l,
		workspaces: expirable.NewLRU[string, model.WorkspaceInfo](opts.WorkspaceCacheSize, nil, opts.WorkspaceCacheTTL),
		metrics:    opts.Metrics,
		pageLimit:  opts.PageLimit,
		now:        time.Now,
	}
}
