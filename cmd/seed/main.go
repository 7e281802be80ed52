// Package main provides a CLI tool for seeding the database with a demo account.
package main

import (
	"context"
	"fmt"
	"os"

	"stockkeeper/internal/core/apperror"
	"stockkeeper/internal/domain/auth"
	"stockkeeper/internal/domain/inventory"
	"stockkeeper/internal/domain/shoppingitem"
	"stockkeeper/internal/domain/stockitem"
	"stockkeeper/internal/domain/user"
	"stockkeeper/internal/infrastructure/storage/postgres"
	"stockkeeper/internal/infrastructure/storage/postgres/auth_repo"
	"stockkeeper/internal/infrastructure/storage/postgres/item_repo"
	"stockkeeper/pkg/config"
	"stockkeeper/pkg/logger"
)

var demoItems = []stockitem.CreateSpec{
	{Name: "bolt", Quantity: 5, MinimumQuantity: 10},
	{Name: "nut", Quantity: 40, MinimumQuantity: 20},
	{Name: "washer", Quantity: 0, MinimumQuantity: 50},
	{Name: "wood glue", Quantity: 1, MinimumQuantity: 1},
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DB.URL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to migrate database", "error", err)
	}

	txHandler := postgres.NewTxHandler(pool, postgres.DefaultTxOptions())
	users := user.NewAtomicService(auth_repo.NewUserRepo(), txHandler)

	owner, err := seedDemoUser(ctx, users, log)
	if err != nil {
		log.Fatalw("failed to seed demo user", "error", err)
	}

	stock := inventory.NewStockItemService(
		txHandler,
		stockitem.NewAtomicService(item_repo.NewStockItemRepo(), txHandler),
		shoppingitem.NewAtomicService(item_repo.NewShoppingItemRepo(), txHandler),
	)
	if err := seedDemoItems(ctx, stock, owner.ID, log); err != nil {
		log.Fatalw("failed to seed demo items", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedDemoUser(ctx context.Context, users *user.AtomicService, log *logger.Logger) (*user.User, error) {
	name := getEnv("DEMO_USER", "demo")
	password := getEnv("DEMO_PASSWORD", "demo-password")

	existing, err := users.ReadByName(ctx, nil, name)
	if err == nil {
		log.Infow("demo user already exists", "user_id", existing.ID)
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("unused"))
	authService := auth.NewService(users, jwtService, auth.DefaultServiceConfig())

	u, err := authService.Register(ctx, auth.RegisterRequest{Name: name, Password: password})
	if err != nil {
		return nil, err
	}

	log.Infow("demo user created", "user_id", u.ID, "name", u.Name)
	return u, nil
}

func seedDemoItems(ctx context.Context, stock *inventory.StockItemService, ownerID string, log *logger.Logger) error {
	for _, spec := range demoItems {
		item, err := stock.Create(ctx, ownerID, spec)
		switch {
		case apperror.IsConflict(err):
			log.Infow("stock item already exists", "name", spec.Name)
		case err != nil:
			return fmt.Errorf("create %q: %w", spec.Name, err)
		default:
			log.Infow("stock item created", "name", item.Name, "shortfall", item.Shortfall())
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
