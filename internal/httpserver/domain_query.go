package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"workspace-query/internal/middleware"
	queryHTTP "workspace-query/internal/query/delivery/http"
)

// setupQueryDomain registers the query, cache and index routes.
func (srv HTTPServer) setupQueryDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := queryHTTP.New(srv.l, srv.orchestrator, srv.indexer)
	queryHTTP.RegisterRoutes(api, h, mw)

	if srv.indexer == nil {
		srv.l.Infof(ctx, "Passage index not configured, /index answers 503")
	}
	srv.l.Infof(ctx, "Query domain registered")
	return nil
}
