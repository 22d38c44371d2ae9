package usecase

import (
	"time"

	"workspace-query/internal/execution"
	"workspace-query/internal/execution/repository"
	"workspace-query/pkg/log"
)

type implUseCase struct {
	rows       repository.RowRepository
	passages   repository.PassageRepository
	l          log.Logger
	rowLimit   int
	maxResults int
	now        func() time.Time
}

var (
	_ execution.Executor = (*implUseCase)(nil)
	_ execution.Indexer  = (*implUseCase)(nil)
)

// New creates the route executor. passages may be nil, in which case content search
// uses the keyword search of the row repository.
func New(rows repository.RowRepository, passages repository.PassageRepository, l log.Logger, opts execution.Options) *implUseCase {
	if opts.RowLimit <= 0 {
		opts.RowLimit = execution.DefaultRowLimit
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = execution.DefaultMaxResults
	}
	return &implUseCase{
		rows:       rows,
		passages:   passages,
		l:          l,
		rowLimit:   opts.RowLimit,
		maxResults: opts.MaxResults,
		now:        time.Now,
	}
}
