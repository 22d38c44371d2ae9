package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-query/internal/execution"
	"workspace-query/internal/middleware"
	"workspace-query/internal/model"
	"workspace-query/internal/orchestrator"
	"workspace-query/pkg/log"
)

type fakeOrchestrator struct {
	calls     int
	query     string
	workspace string
	user      string
	opts      model.ProcessOptions
	result    model.OrchestrationResult
	stats     orchestrator.CacheStats
	cleared   bool
}

func (f *fakeOrchestrator) ProcessQuery(_ context.Context, query, workspaceID, userID string, opts model.ProcessOptions) model.OrchestrationResult {
	f.calls++
	f.query, f.workspace, f.user, f.opts = query, workspaceID, userID, opts
	return f.result
}

func (f *fakeOrchestrator) CacheStats() orchestrator.CacheStats { return f.stats }
func (f *fakeOrchestrator) ClearCache()                         { f.cleared = true }

type fakeIndexer struct {
	n   int
	err error
}

func (f fakeIndexer) IndexWorkspace(context.Context, string) (int, error) { return f.n, f.err }

func newRouter(uc orchestrator.UseCase, indexer execution.Indexer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(log.NewNop(), uc, indexer)
	RegisterRoutes(r.Group("/api/v1"), h, middleware.New(log.NewNop(), middleware.Config{}))
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderUserID, "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestQuery(t *testing.T) {
	uc := &fakeOrchestrator{result: model.OrchestrationResult{RequestID: "r-1", Success: true}}
	r := newRouter(uc, nil)

	w := do(r, http.MethodPost, "/api/v1/workspaces/ws-1/query", map[string]any{
		"query":                "show my tasks",
		"include_debug":        true,
		"bypass_cache":         true,
		"max_response_time_ms": 1500,
		"session":              map[string]any{"current_page_id": "p-9", "recent_queries": []string{"hello"}},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, uc.calls)
	assert.Equal(t, "show my tasks", uc.query)
	assert.Equal(t, "ws-1", uc.workspace)
	assert.Equal(t, "user-1", uc.user)
	assert.True(t, uc.opts.IncludeDebug)
	assert.True(t, uc.opts.BypassCache)
	assert.Equal(t, 1500*time.Millisecond, uc.opts.MaxResponseTime)
	assert.Equal(t, "p-9", uc.opts.Session.CurrentPageID)
	assert.Equal(t, "ws-1", uc.opts.Session.WorkspaceID)

	var result model.OrchestrationResult
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.Equal(t, "r-1", result.RequestID)
	assert.True(t, result.Success)
}

func TestQuery_DegradedStillOK(t *testing.T) {
	uc := &fakeOrchestrator{result: model.OrchestrationResult{RequestID: "r-2", Error: "execution stage: boom"}}
	r := newRouter(uc, nil)

	w := do(r, http.MethodPost, "/api/v1/workspaces/ws-1/query", map[string]any{"query": "sales by month"})

	assert.Equal(t, http.StatusOK, w.Code)
	var result model.OrchestrationResult
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.False(t, result.Success)
}

func TestQuery_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"missing query", map[string]any{}},
		{"blank query", map[string]any{"query": "   "}},
		{"budget too large", map[string]any{"query": "x", "max_response_time_ms": 120000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeOrchestrator{}
			r := newRouter(uc, nil)

			w := do(r, http.MethodPost, "/api/v1/workspaces/ws-1/query", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, uc.calls)
		})
	}
}

func TestCacheEndpoints(t *testing.T) {
	uc := &fakeOrchestrator{stats: orchestrator.CacheStats{Size: 2, Capacity: 100, Hits: 3, Misses: 1}}
	r := newRouter(uc, nil)

	w := do(r, http.MethodGet, "/api/v1/cache/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats cacheStatsResp
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, 2, stats.Size)
	assert.InDelta(t, 0.75, stats.HitRate, 1e-9)

	w = do(r, http.MethodDelete, "/api/v1/cache", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, uc.cleared)
}

func TestIndexWorkspace(t *testing.T) {
	tests := []struct {
		name       string
		indexer    execution.Indexer
		wantStatus int
	}{
		{"not configured", nil, http.StatusServiceUnavailable},
		{"indexed", fakeIndexer{n: 12}, http.StatusOK},
		{"failure", fakeIndexer{err: errors.New("qdrant down")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(&fakeOrchestrator{}, tt.indexer)

			w := do(r, http.MethodPost, "/api/v1/workspaces/ws-1/index", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var resp indexResp
				require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
				assert.Equal(t, 12, resp.Passages)
				assert.Equal(t, "ws-1", resp.WorkspaceID)
			}
		})
	}
}
