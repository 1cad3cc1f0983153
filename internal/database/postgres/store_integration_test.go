package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/FairyGrove_Go/internal/database"
	"github.com/osse101/FairyGrove_Go/internal/repository"
	"github.com/osse101/FairyGrove_Go/internal/testing/storetest"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

// setupContainer starts Postgres and migrates it. Failures leave testPool nil and tests skip.
func setupContainer(ctx context.Context) func() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("grove"),
		postgres.WithUsername("grove"),
		postgres.WithPassword("grove"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return terminate
	}

	pool, err := database.NewPool(ctx, connStr, database.DefaultMaxConnections, time.Minute, 5*time.Minute)
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return terminate
	}
	if _, err := database.MigratePool(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return terminate
	}

	testPool = pool
	return terminate
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
}

// emptyStore truncates every table. The pool is shared, so Close is not registered.
func emptyStore(t *testing.T) repository.Store {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE event_log, purchases, referrals, players CASCADE`)
	require.NoError(t, err)
	return NewStore(testPool)
}

func TestStoreContract_Integration(t *testing.T) {
	requireDB(t)
	storetest.Run(t, emptyStore)
}

func TestMigrate_Idempotent_Integration(t *testing.T) {
	requireDB(t)

	version, err := database.MigratePool(context.Background(), testPool)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)
}

func TestLoadGame_StoredAsJSONB_Integration(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	s := emptyStore(t)

	_, err := s.CreateGame(ctx, "p1", storetest.NewDocument("CODE0001"))
	require.NoError(t, err)

	var leaves int64
	err = testPool.QueryRow(ctx, `SELECT (document->'resources'->>'leaves')::bigint FROM players WHERE player_id = $1`, "p1").Scan(&leaves)
	require.NoError(t, err)
	assert.Equal(t, int64(10), leaves)
}
