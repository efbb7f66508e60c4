package test_utils

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	testDbName     = "pocketledger"
	testDbUser     = "test_pocketledger"
	testDbPassword = "test_pocketledger"
)

// StartPostgres starts a disposable Postgres container with all migrations
// applied. The test is skipped when no container runtime is available.
func StartPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(
		ctx, "postgres:16-alpine",
		postgres.WithDatabase(testDbName),
		postgres.WithUsername(testDbUser),
		postgres.WithPassword(testDbPassword),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to read container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to read container port: %v", err)
	}
	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Driver: config.DriverPostgres,
		Host:   host,
		Port:   port.Int(),
		User:   testDbUser,
		Pass:   testDbPassword,
		Name:   testDbName,
		Schema: "public",
	}

	if err := database.MigratePostgres(cfg); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	pool, err := database.OpenPostgres(cfg)
	if err != nil {
		t.Fatalf("Failed to open database connection: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
