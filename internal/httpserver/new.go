package httpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"workspace-query/internal/execution"
	"workspace-query/internal/metrics"
	"workspace-query/internal/orchestrator"
	"workspace-query/pkg/log"
)

const shutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin            *gin.Engine
	l              log.Logger
	port           int
	mode           string
	environment    string
	trustedProxies []string

	// Query domain
	orchestrator   orchestrator.UseCase
	indexer        execution.Indexer
	metrics        *metrics.Metrics
	requestsPerMin int

	// Readiness probe, usually a database ping
	ready func(ctx context.Context) error
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers are honored. Empty trusts none.
	TrustedProxies []string

	Orchestrator   orchestrator.UseCase
	Indexer        execution.Indexer
	Metrics        *metrics.Metrics
	RequestsPerMin int

	Ready func(ctx context.Context) error
}

// New creates a new HTTPServer instance and registers its routes.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		trustedProxies: cfg.TrustedProxies,
		orchestrator:   cfg.Orchestrator,
		indexer:        cfg.Indexer,
		metrics:        cfg.Metrics,
		requestsPerMin: cfg.RequestsPerMin,
		ready:          cfg.Ready,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(srv.trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.orchestrator == nil {
		return errors.New("orchestrator is required")
	}
	return nil
}
