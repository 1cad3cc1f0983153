package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate applies all pending migrations for the dialect and returns the resulting schema version
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) (int64, error) {
	var dir string
	switch dialect {
	case goose.DialectPostgres:
		dir = MigrationsDirPostgres
	case goose.DialectSQLite3:
		dir = MigrationsDirSQLite
	default:
		return 0, fmt.Errorf("%s: %s", ErrMsgUnknownDialect, dialect)
	}

	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	for _, r := range results {
		slog.Default().Info(LogMsgMigrationApplied, "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	if len(results) == 0 {
		slog.Default().Info(LogMsgMigrationsUpToDate, "version", version)
	}
	return version, nil
}

// MigratePool runs the postgres migrations through a database/sql view of the pool
func MigratePool(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Migrate(ctx, db, goose.DialectPostgres)
}
