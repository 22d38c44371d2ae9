package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workspace-query/internal/metrics"
	"workspace-query/internal/model"
	"workspace-query/internal/orchestrator"
	"workspace-query/pkg/log"
)

type stubOrchestrator struct{}

func (stubOrchestrator) ProcessQuery(context.Context, string, string, string, model.ProcessOptions) model.OrchestrationResult {
	return model.OrchestrationResult{Success: true}
}
func (stubOrchestrator) CacheStats() orchestrator.CacheStats { return orchestrator.CacheStats{} }
func (stubOrchestrator) ClearCache()                         {}

func newServer(t *testing.T, ready func(context.Context) error) *HTTPServer {
	t.Helper()
	srv, err := New(log.NewNop(), Config{
		Port:         8080,
		Mode:         gin.TestMode,
		Orchestrator: stubOrchestrator{},
		Metrics:      metrics.New(),
		Ready:        ready,
	})
	require.NoError(t, err)
	return srv
}

func serve(srv *HTTPServer, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.gin.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNew_Validate(t *testing.T) {
	_, err := New(log.NewNop(), Config{Port: 8080, Mode: gin.TestMode})
	assert.Error(t, err)

	_, err = New(log.NewNop(), Config{Mode: gin.TestMode, Orchestrator: stubOrchestrator{}})
	assert.Error(t, err)
}

func TestNew_TrustedProxies(t *testing.T) {
	base := Config{Port: 8080, Mode: gin.TestMode, Orchestrator: stubOrchestrator{}}

	cfg := base
	cfg.TrustedProxies = []string{"not-an-ip"}
	_, err := New(log.NewNop(), cfg)
	assert.Error(t, err)

	cfg.TrustedProxies = []string{"10.0.0.0/8"}
	srv, err := New(log.NewNop(), cfg)
	require.NoError(t, err)

	var seen string
	srv.gin.GET("/whoami", func(c *gin.Context) { seen = c.ClientIP() })
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.RemoteAddr = "10.1.2.3:4000"
	req.Header.Set("X-Forwarded-For", "192.168.1.9")
	srv.gin.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "192.168.1.9", seen)

	untrusted := newServer(t, nil)
	untrusted.gin.GET("/whoami", func(c *gin.Context) { seen = c.ClientIP() })
	untrusted.gin.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "10.1.2.3", seen)
}

func TestSystemRoutes(t *testing.T) {
	srv := newServer(t, nil)

	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/live").Code)
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/ready").Code)

	w := serve(srv, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReady_CheckFails(t *testing.T) {
	srv := newServer(t, func(context.Context) error { return errors.New("db down") })

	assert.Equal(t, http.StatusServiceUnavailable, serve(srv, http.MethodGet, "/ready").Code)
}

func TestDomainRoutes(t *testing.T) {
	srv := newServer(t, nil)

	w := serve(srv, http.MethodGet, "/api/v1/cache/stats")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusServiceUnavailable, serve(srv, http.MethodPost, "/api/v1/workspaces/ws/index").Code)
}
