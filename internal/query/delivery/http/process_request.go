package http

import (
	"github.com/gin-gonic/gin"

	"workspace-query/internal/middleware"
)

// processQueryReq binds the body and fills workspace and user from the path and headers.
func (h *handler) processQueryReq(c *gin.Context) (queryReq, error) {
	var req queryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.WorkspaceID = c.Param("workspace_id")
	req.UserID = c.GetHeader(middleware.HeaderUserID)
	return req, req.validate()
}
