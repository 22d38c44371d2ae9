package http

import (
	"workspace-query/internal/execution"
	"workspace-query/internal/orchestrator"
	"workspace-query/pkg/log"
)

type handler struct {
	l       log.Logger
	uc      orchestrator.UseCase
	indexer execution.Indexer
}

// New creates the HTTP handler for workspace queries. indexer may be nil.
func New(l log.Logger, uc orchestrator.UseCase, indexer execution.Indexer) *handler {
	return &handler{
		l:       l,
		uc:      uc,
		indexer: indexer,
	}
}
