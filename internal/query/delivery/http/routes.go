package http

import (
	"github.com/gin-gonic/gin"

	"workspace-query/internal/middleware"
)

// RegisterRoutes maps the query endpoints. Queries are rate limited per user.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	ws := rg.Group("/workspaces/:workspace_id")
	{
		ws.POST("/query", mw.RateLimit(), h.Query)
		ws.POST("/index", h.IndexWorkspace)
	}

	cache := rg.Group("/cache")
	{
		cache.GET("/stats", h.CacheStats)
		cache.DELETE("", h.ClearCache)
	}
}
