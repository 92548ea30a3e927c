package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bibbank/guestrisk/migrations"
	pkgpostgres "github.com/bibbank/guestrisk/pkg/postgres"
)

// PostgresContainer is a migrated PostgreSQL instance holding the reference
// schema.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// NewPostgresContainer starts PostgreSQL, applies the embedded migrations and
// opens a pool. Teardown is registered with t.Cleanup.
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("guestrisk"),
		postgres.WithUsername("guestrisk"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")

	require.NoError(t, pkgpostgres.RunMigrations(dsn, migrations.FS, "."), "apply migrations")

	pool, err := pkgpostgres.NewPool(ctx, pkgpostgres.Config{URL: dsn, MaxConns: 4, ApplicationName: "guestrisk-test"})
	require.NoError(t, err, "open pool")
	t.Cleanup(pool.Close)

	return &PostgresContainer{Container: container, Pool: pool, DSN: dsn}
}

// Truncate empties the given tables between subtests.
func (pc *PostgresContainer) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := pc.Pool.Exec(context.Background(), "TRUNCATE "+table+" RESTART IDENTITY")
		require.NoError(t, err, "truncate %s", table)
	}
}
