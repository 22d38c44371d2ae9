package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.CacheEvent(CacheResponse, EventHit)
	m.CacheEvent(CacheResponse, EventHit)
	m.CacheEvent(CacheResponse, EventMiss)
	m.RecordRequest("data_query", "database_query", true)
	m.BudgetExceeded()
	m.ObserveStage("classification", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues(CacheResponse, EventHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues(CacheResponse, EventMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("data_query", "database_query", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.budgetExceeded))
	assert.Equal(t, 1, testutil.CollectAndCount(m.stageDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheEvent(CacheClassification, EventMiss)
		m.RecordRequest("help", "fallback_handler", false)
		m.BudgetExceeded()
		m.ObserveStage("routing", time.Millisecond)
	})
	assert.Nil(t, m.Registry())
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.BudgetExceeded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "query_budget_exceeded_total 1"))
}

func TestMetrics_IsolatedRegistries(t *testing.T) {
	a, b := New(), New()
	a.BudgetExceeded()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.budgetExceeded))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.budgetExceeded))
}
