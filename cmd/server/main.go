// supplytrack server: inventory records for a logistics domain.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"supplytrack/internal/config"
	"supplytrack/internal/domain/catalogs/category"
	"supplytrack/internal/domain/catalogs/warehouse"
	"supplytrack/internal/domain/supplies/item"
	v1 "supplytrack/internal/infrastructure/http/v1"
	"supplytrack/internal/infrastructure/storage/postgres"
	"supplytrack/internal/infrastructure/storage/postgres/catalog_repo"
	"supplytrack/internal/infrastructure/storage/postgres/item_repo"
	"supplytrack/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "load config", "error", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		logger.Fatal(ctx, "init logger", "error", err)
	}
	defer func() { _ = log.Sync() }()

	ctx = logger.WithLogger(ctx, log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal(ctx, "connect database", "error", err)
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			logger.Fatal(ctx, "run migrations", "error", err)
		}
	}

	txManager := postgres.NewTxManager(pool.Pool)

	// Repositories
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	warehouseRepo := catalog_repo.NewWarehouseRepo(txManager)
	itemRepo := item_repo.NewItemRepo(txManager)

	// Services
	categoryService := category.NewService(categoryRepo, txManager)
	warehouseService := warehouse.NewService(warehouseRepo, txManager)
	itemService := item.NewService(itemRepo, categoryService, warehouseService, txManager)

	router := v1.NewRouter(v1.RouterConfig{
		Pool:       pool,
		Logger:     log,
		RateLimit:  cfg.RateLimit,
		Categories: categoryService,
		Warehouses: warehouseService,
		Items:      itemService,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info(ctx, "server starting", "addr", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "server failed", "error", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "shutdown failed", "error", err)
	}

	logger.Info(ctx, "server stopped")
}
