package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/osse101/FairyGrove_Go/internal/config"
	"github.com/osse101/FairyGrove_Go/internal/database"
	"github.com/osse101/FairyGrove_Go/internal/database/memory"
	"github.com/osse101/FairyGrove_Go/internal/database/postgres"
	"github.com/osse101/FairyGrove_Go/internal/database/sqlite"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// InitializeStore opens the configured backend, applies pending migrations
// and returns it as a repository.Store.
func InitializeStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		version, err := database.MigratePool(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrations, err)
		}
		slog.Info(LogMsgStoreReady, "driver", cfg.DBDriver, "schema_version", version)
		return postgres.NewStore(pool), nil

	case config.DBDriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLiteDSN())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		version, err := database.Migrate(ctx, db, goose.DialectSQLite3)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrations, err)
		}
		slog.Info(LogMsgStoreReady, "driver", cfg.DBDriver, "schema_version", version)
		return sqlite.NewStore(db), nil

	case config.DBDriverMemory:
		slog.Warn(LogMsgMemoryStoreInUse)
		return memory.NewStore(), nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.DBDriver)
}
