// Package pgtest starts a throwaway PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"stockkeeper/internal/infrastructure/storage/postgres"
)

// Image is the PostgreSQL image used by integration tests.
const Image = "postgres:16-alpine"

// Start runs a migrated database in a container for the lifetime of t.
// The test is skipped under -short.
func Start(t testing.TB) *postgres.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test: skipped in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		Image,
		tcpostgres.WithDatabase("stockkeeper"),
		tcpostgres.WithUsername("stockkeeper"),
		tcpostgres.WithPassword("stockkeeper"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

// Truncate empties the given tables.
func Truncate(t testing.TB, pool *postgres.Pool, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := pool.Exec(context.Background(), "TRUNCATE TABLE "+table)
		require.NoError(t, err)
	}
}
