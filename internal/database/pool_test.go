package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPragmas = "?_pragma=foreign_keys(ON)"

func TestNewPool_InvalidConnString(t *testing.T) {
	pool, err := NewPool(context.Background(), "://not-a-url", DefaultMaxConnections, time.Minute, time.Hour)

	require.Error(t, err)
	assert.Nil(t, pool)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestOpenSQLite_AndMigrate(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "grove.db")+testPragmas)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	version, err := Migrate(ctx, db, goose.DialectSQLite3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	for _, table := range []string{"players", "referrals", "purchases", "event_log"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrate_UnknownDialect(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "grove.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(ctx, db, goose.DialectMySQL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownDialect)
}
