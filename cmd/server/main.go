// Package main is the entry point for the stockkeeper API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"stockkeeper/internal/domain/auth"
	"stockkeeper/internal/domain/inventory"
	"stockkeeper/internal/domain/shoppingitem"
	"stockkeeper/internal/domain/stockitem"
	"stockkeeper/internal/domain/user"
	v1 "stockkeeper/internal/infrastructure/http/v1"
	"stockkeeper/internal/infrastructure/storage/postgres"
	"stockkeeper/internal/infrastructure/storage/postgres/auth_repo"
	"stockkeeper/internal/infrastructure/storage/postgres/item_repo"
	"stockkeeper/pkg/config"
	"stockkeeper/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.App.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	logger.SetDefault(log)

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting stockkeeper server", "env", cfg.App.Env)

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.DB.URL)
	poolCfg.MaxConns = cfg.DB.MaxConns
	poolCfg.MinConns = cfg.DB.MinConns

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalw("failed to migrate database", "error", err)
		}
	}

	txOpts := postgres.DefaultTxOptions()
	txOpts.StatementTimeout = cfg.DB.StatementTimeout
	txHandler := postgres.NewTxHandler(pool, txOpts)

	// --- Services ---
	stockAtomic := stockitem.NewAtomicService(item_repo.NewStockItemRepo(), txHandler)
	shoppingAtomic := shoppingitem.NewAtomicService(item_repo.NewShoppingItemRepo(), txHandler)
	users := user.NewAtomicService(auth_repo.NewUserRepo(), txHandler)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AccessTokenTTL: cfg.JWT.TTL,
	})
	authService := auth.NewService(users, jwtService, auth.DefaultServiceConfig())

	// --- Router ---
	if !cfg.App.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := v1.NewRouter(v1.RouterConfig{
		Logger:        log,
		JWTValidator:  jwtService,
		AuthService:   authService,
		StockItems:    inventory.NewStockItemService(txHandler, stockAtomic, shoppingAtomic),
		ShoppingItems: inventory.NewShoppingItemService(shoppingAtomic),
		Readiness:     pool,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	go reportPoolStats(ctx, pool, time.Minute)

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func reportPoolStats(ctx context.Context, pool *postgres.Pool, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			postgres.LogPoolStats(ctx, pool)
		}
	}
}
