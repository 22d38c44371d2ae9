package http

import (
	"github.com/gin-gonic/gin"

	"workspace-query/internal/execution"
	"workspace-query/pkg/response"
)

// Query godoc
// @Summary     Answer a natural-language query
// @Description Classifies the query, routes it to the workspace backends and returns renderable content blocks.
// @Description Pipeline failures still answer 200 with success=false and a rephrase hint.
// @Tags        Query
// @Accept      json
// @Produce     json
// @Param       workspace_id path   string   true  "Workspace ID"
// @Param       X-User-ID    header string   false "Caller identity, used for rate limiting"
// @Param       body         body   queryReq true  "Query"
// @Success     200 {object} model.OrchestrationResult
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Router      /api/v1/workspaces/{workspace_id}/query [POST]
func (h *handler) Query(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processQueryReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := h.uc.ProcessQuery(ctx, req.Query, req.WorkspaceID, req.UserID, req.toOptions())
	if !result.Success {
		h.l.Warnf(ctx, "internal.query.delivery.http.Query: degraded result: %s", result.Error)
	}

	response.OK(c, result)
}

// CacheStats godoc
// @Summary     Response cache statistics
// @Tags        Query
// @Produce     json
// @Success     200 {object} cacheStatsResp
// @Router      /api/v1/cache/stats [GET]
func (h *handler) CacheStats(c *gin.Context) {
	response.OK(c, h.newCacheStatsResp(h.uc.CacheStats()))
}

// ClearCache godoc
// @Summary     Drop every cached response
// @Tags        Query
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/cache [DELETE]
func (h *handler) ClearCache(c *gin.Context) {
	h.uc.ClearCache()
	h.l.Infof(c.Request.Context(), "internal.query.delivery.http.ClearCache: response cache cleared")
	response.OK(c, nil)
}

// IndexWorkspace godoc
// @Summary     Rebuild the passage index of a workspace
// @Tags        Query
// @Produce     json
// @Param       workspace_id path string true "Workspace ID"
// @Success     200 {object} indexResp
// @Failure     503 {object} response.Resp "Index not configured"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/workspaces/{workspace_id}/index [POST]
func (h *handler) IndexWorkspace(c *gin.Context) {
	ctx := c.Request.Context()
	workspaceID := c.Param("workspace_id")

	if h.indexer == nil {
		response.Error(c, h.mapError(execution.ErrIndexUnavailable))
		return
	}

	n, err := h.indexer.IndexWorkspace(ctx, workspaceID)
	if err != nil {
		h.l.Errorf(ctx, "internal.query.delivery.http.IndexWorkspace: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, indexResp{WorkspaceID: workspaceID, Passages: n})
}
