package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"workspace-query/config"
	_ "workspace-query/docs" // Swagger docs
	"workspace-query/internal/execution"
	execRepo "workspace-query/internal/execution/repository"
	execPostgre "workspace-query/internal/execution/repository/postgre"
	execVector "workspace-query/internal/execution/repository/vector"
	execUC "workspace-query/internal/execution/usecase"
	"workspace-query/internal/extractor"
	extractorPostgre "workspace-query/internal/extractor/repository/postgre"
	extractorUC "workspace-query/internal/extractor/usecase"
	"workspace-query/internal/httpserver"
	"workspace-query/internal/intent"
	"workspace-query/internal/metrics"
	"workspace-query/internal/orchestrator"
	orchestratorUC "workspace-query/internal/orchestrator/usecase"
	"workspace-query/internal/output"
	"workspace-query/internal/router"
	"workspace-query/pkg/llmprovider"
	"workspace-query/pkg/log"
	"workspace-query/pkg/postgre"
	"workspace-query/pkg/qdrant"
	"workspace-query/pkg/voyage"
)

// @title       Workspace Query API
// @description Natural-language queries over workspace databases and pages.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Workspace Query API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, err := postgre.Connect(ctx, postgre.Options{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error(ctx, "Failed to connect to postgres: ", err)
		return
	}
	defer db.Close()

	// 4. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Warnf(ctx, "No LLM provider available, classification and rendering fall back to rules: %v", err)
	}
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      cfg.LLM.RetryDelayDuration(),
		MaxTotalTimeout: cfg.LLM.MaxTotalTimeoutDuration(),
	}, logger)

	m := metrics.New()

	// 5. Pipeline stages
	classifier, err := intent.New(llm, logger, intent.Options{
		CacheTTL:  cfg.Pipeline.ClassificationCacheTTL,
		CacheSize: cfg.Pipeline.ClassificationCacheSize,
		Timezone:  cfg.Pipeline.Timezone,
		Metrics:   m,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize classifier: ", err)
		return
	}

	extractorUseCase := extractorUC.New(extractorPostgre.New(db, logger), logger, extractor.Options{
		WorkspaceCacheTTL: cfg.Pipeline.WorkspaceCacheTTL,
		Metrics:           m,
	})

	queryRouter := router.New(logger, classifier, router.Config{
		LowConfidenceThreshold: cfg.Pipeline.LowConfidenceThreshold,
		MaxDatabases:           cfg.Pipeline.MaxDatabases,
		RowLimit:               cfg.Pipeline.DatabaseRowLimit,
		RAGMaxResults:          cfg.Pipeline.RAGMaxResults,
	})

	var rendererLLM llmprovider.Generator
	if len(providers) > 0 {
		rendererLLM = llm
	}
	generator := output.New(rendererLLM, logger, output.Config{
		MaxTableRows:   cfg.Pipeline.MaxTableRows,
		MaxChartPoints: cfg.Pipeline.MaxChartPoints,
	})

	passages := newPassageRepository(ctx, cfg, logger)
	executor := execUC.New(execPostgre.New(db, logger), passages, logger, execution.Options{
		RowLimit:   cfg.Pipeline.DatabaseRowLimit,
		MaxResults: cfg.Pipeline.RAGMaxResults,
	})

	// 6. Orchestrator
	orch := orchestratorUC.New(orchestratorUC.Deps{
		Classifier: classifier,
		Extractor:  extractorUseCase,
		Router:     queryRouter,
		Executor:   executor,
		Generator:  generator,
	}, logger, orchestrator.Options{
		CacheTTL:        cfg.Pipeline.ResponseCacheTTL,
		CacheSize:       cfg.Pipeline.ResponseCacheSize,
		MaxResponseTime: cfg.Pipeline.MaxResponseTime,
		Metrics:         m,
	})

	var indexer execution.Indexer
	if passages != nil {
		indexer = executor
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		TrustedProxies: cfg.HTTPServer.TrustedProxies,
		Orchestrator:   orch,
		Indexer:        indexer,
		Metrics:        m,
		RequestsPerMin: cfg.RateLimit.RequestsPerMin,
		Ready:          db.PingContext,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// newPassageRepository returns nil when Voyage or Qdrant is not configured;
// content search then uses Postgres full-text search only.
func newPassageRepository(ctx context.Context, cfg *config.Config, logger log.Logger) execRepo.PassageRepository {
	if cfg.Voyage.APIKey == "" || cfg.Qdrant.URL == "" {
		logger.Warn(ctx, "Semantic search disabled: VOYAGE_API_KEY or QDRANT_URL is missing")
		return nil
	}

	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Warnf(ctx, "Semantic search disabled: %v", err)
		return nil
	}

	store := qdrant.NewClient(cfg.Qdrant.URL).WithAPIKey(cfg.Qdrant.APIKey)
	logger.Infof(ctx, "Semantic search enabled (collection %s)", cfg.Qdrant.CollectionName)
	return execVector.New(store, embedder.WithModel(cfg.Voyage.Model), cfg.Qdrant.CollectionName, logger)
}
