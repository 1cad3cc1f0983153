package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/config"
	"github.com/osse101/FairyGrove_Go/internal/database/memory"
	"github.com/osse101/FairyGrove_Go/internal/event"
	"github.com/osse101/FairyGrove_Go/internal/eventlog"
	"github.com/osse101/FairyGrove_Go/internal/testing/storetest"
)

func TestInitializeEventSystem_CreatesDeadLetterDir(t *testing.T) {
	cfg := &config.Config{
		EventDeadLetterPath: filepath.Join(t.TempDir(), "nested", "dead.jsonl"),
		EventRetryDelay:     10 * time.Millisecond,
	}

	store := memory.NewStore()
	events, err := InitializeEventSystem(cfg, eventlog.NewService(store))
	require.NoError(t, err)
	require.NotNil(t, events.Bus)
	publisher := events.Publisher
	require.NotNil(t, publisher)
	assert.DirExists(t, filepath.Dir(cfg.EventDeadLetterPath))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, publisher.Publish(ctx, event.New(event.QuestClaimed, "tg:9", event.QuestPayloadV1{}, time.Now())))
	logged, err := store.EventsByPlayer(ctx, "tg:9", 10)
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, string(event.QuestClaimed), logged[0].EventType)

	assert.NoError(t, publisher.Shutdown(ctx))
}

func TestResolveEventSettings(t *testing.T) {
	defaults := resolveEventSettings(&config.Config{EventMaxRetries: -1})
	assert.Equal(t, EventDefaultMaxRetries, defaults.maxRetries)
	assert.Equal(t, EventDefaultRetryDelay, defaults.retryDelay)
	assert.Equal(t, EventDefaultDeadLetterPath, defaults.deadLetterPath)

	set := resolveEventSettings(&config.Config{EventMaxRetries: 2, EventRetryDelay: time.Second, EventDeadLetterPath: "x/dead.jsonl"})
	assert.Equal(t, eventSettings{maxRetries: 2, retryDelay: time.Second, deadLetterPath: "x/dead.jsonl"}, set)
}

func TestInitializeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := InitializeStore(ctx, &config.Config{DBDriver: config.DBDriverMemory})
		require.NoError(t, err)
		defer store.Close()
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("sqlite migrates", func(t *testing.T) {
		cfg := &config.Config{
			DBDriver:   config.DBDriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "grove.db"),
		}
		store, err := InitializeStore(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()

		rec, err := store.CreateGame(ctx, "p1", storetest.NewDocument("ABCD1234"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), rec.Version)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := InitializeStore(ctx, &config.Config{DBDriver: "mongo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgUnknownDriver)
	})
}

func TestGracefulShutdown_ToleratesMissingComponents(t *testing.T) {
	store, err := InitializeStore(context.Background(), &config.Config{DBDriver: config.DBDriverMemory})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{Store: store})
	})
}

func TestInitializeWorkers_StopsCleanly(t *testing.T) {
	store := memory.NewStore()
	cfg := &config.Config{EventLogRetention: time.Hour, EventLogCleanupInterval: time.Hour}

	pool, sched := InitializeWorkers(cfg, eventlog.NewService(store))
	require.NotNil(t, pool)
	require.NotNil(t, sched)

	done := make(chan struct{})
	go func() {
		GracefulShutdown(context.Background(), ShutdownComponents{Scheduler: sched, WorkerPool: pool, Store: store})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not finish")
	}
	assert.False(t, pool.Enqueue(eventlog.NewCleanupJob(eventlog.NewService(store), time.Hour)))
}
