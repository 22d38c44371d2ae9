package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"workspace-query/config"
	"workspace-query/internal/execution"
	execPostgre "workspace-query/internal/execution/repository/postgre"
	execVector "workspace-query/internal/execution/repository/vector"
	execUC "workspace-query/internal/execution/usecase"
	"workspace-query/pkg/log"
	"workspace-query/pkg/postgre"
	"workspace-query/pkg/qdrant"
	"workspace-query/pkg/voyage"
)

// main rebuilds the semantic passage index for the workspaces given as arguments.
//
//	indexer [-concurrency 2] <workspace-id>...
func main() {
	concurrency := flag.Int("concurrency", 2, "workspaces indexed in parallel")
	flag.Parse()

	workspaceIDs := flag.Args()
	if len(workspaceIDs) == 0 {
		fmt.Println("usage: indexer [-concurrency n] <workspace-id>...")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, workspaceIDs, *concurrency); err != nil {
		logger.Error(ctx, "Indexing failed: ", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Indexing finished")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger, workspaceIDs []string, concurrency int) error {
	if cfg.Voyage.APIKey == "" || cfg.Qdrant.URL == "" {
		return fmt.Errorf("%w: VOYAGE_API_KEY and QDRANT_URL are required", execution.ErrIndexUnavailable)
	}

	db, err := postgre.Connect(ctx, postgre.Options{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		return err
	}
	store := qdrant.NewClient(cfg.Qdrant.URL).WithAPIKey(cfg.Qdrant.APIKey)
	passages := execVector.New(store, embedder.WithModel(cfg.Voyage.Model), cfg.Qdrant.CollectionName, logger)

	indexer := execUC.New(execPostgre.New(db, logger), passages, logger, execution.Options{})

	if concurrency <= 0 {
		concurrency = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, id := range workspaceIDs {
		g.Go(func() error {
			n, err := indexer.IndexWorkspace(gctx, id)
			if err != nil {
				return fmt.Errorf("workspace %s: %w", id, err)
			}
			logger.Infof(gctx, "Indexed workspace %s: %d passages", id, n)
			return nil
		})
	}
	return g.Wait()
}
