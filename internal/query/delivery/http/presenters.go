package http

import (
	"strings"
	"time"

	"workspace-query/internal/model"
	"workspace-query/internal/orchestrator"
)

// --- Request DTOs ---

type sessionReq struct {
	CurrentPageID string   `json:"current_page_id"`
	RecentQueries []string `json:"recent_queries" binding:"max=20"`
}

type queryReq struct {
	WorkspaceID       string     `json:"-"`
	UserID            string     `json:"-"`
	Query             string     `json:"query"                binding:"required,max=2000"`
	IncludeDebug      bool       `json:"include_debug"`
	BypassCache       bool       `json:"bypass_cache"`
	MaxResponseTimeMs int        `json:"max_response_time_ms" binding:"min=0,max=60000"`
	Session           sessionReq `json:"session"`
}

func (r queryReq) validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return orchestrator.ErrEmptyQuery
	}
	if strings.TrimSpace(r.WorkspaceID) == "" {
		return orchestrator.ErrMissingWorkspace
	}
	return nil
}

func (r queryReq) toOptions() model.ProcessOptions {
	return model.ProcessOptions{
		IncludeDebug:    r.IncludeDebug,
		BypassCache:     r.BypassCache,
		MaxResponseTime: time.Duration(r.MaxResponseTimeMs) * time.Millisecond,
		Session: model.SessionContext{
			WorkspaceID:   r.WorkspaceID,
			CurrentPageID: r.Session.CurrentPageID,
			RecentQueries: r.Session.RecentQueries,
		},
	}
}

// --- Response DTOs ---

type cacheStatsResp struct {
	Size     int     `json:"size"`
	Capacity int     `json:"capacity"`
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRate  float64 `json:"hit_rate"`
}

func (h *handler) newCacheStatsResp(s orchestrator.CacheStats) cacheStatsResp {
	resp := cacheStatsResp{
		Size:     s.Size,
		Capacity: s.Capacity,
		Hits:     s.Hits,
		Misses:   s.Misses,
	}
	if total := s.Hits + s.Misses; total > 0 {
		resp.HitRate = float64(s.Hits) / float64(total)
	}
	return resp
}

type indexResp struct {
	WorkspaceID string `json:"workspace_id"`
	Passages    int    `json:"passages"`
}
