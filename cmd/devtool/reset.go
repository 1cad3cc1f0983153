package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/urfave/cli/v3"

	"github.com/osse101/FairyGrove_Go/internal/bootstrap"
	"github.com/osse101/FairyGrove_Go/internal/config"
	"github.com/osse101/FairyGrove_Go/internal/database"
)

const flagYes = "yes"

var errNotConfirmed = errors.New("refusing to reset without --yes")

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Drop the game database, recreate it and apply migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagDriver, Usage: "postgres or sqlite (defaults to DB_DRIVER)"},
			&cli.BoolFlag{Name: flagYes, Usage: "confirm that all player data is destroyed"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool(flagYes) {
				return errNotConfirmed
			}
			out := cmd.Root().Writer
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			switch cfg.DBDriver {
			case config.DBDriverSQLite:
				PrintInfo(out, "Removing %s", cfg.SQLitePath)
				if err := os.Remove(cfg.SQLitePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			case config.DBDriverPostgres:
				if err := recreatePostgres(ctx, cfg); err != nil {
					return err
				}
			default:
				PrintWarning(out, "nothing to reset for driver %s", cfg.DBDriver)
				return nil
			}

			store, err := bootstrap.InitializeStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			PrintSuccess(out, "Database reset complete")
			return nil
		},
	}
}

// recreatePostgres drops and recreates the configured database through the
// server's maintenance database
func recreatePostgres(ctx context.Context, cfg *config.Config) error {
	connURL, err := url.Parse(cfg.GetDBConnString())
	if err != nil {
		return err
	}
	dbName := cfg.DBName
	if p := connURL.Path; len(p) > 1 {
		dbName = p[1:]
	}
	connURL.Path = "/postgres"

	pool, err := database.NewPool(ctx, connURL.String(), 1, time.Minute, time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	ident := pgx.Identifier{dbName}.Sanitize()
	if _, err := pool.Exec(ctx, `
		SELECT pg_terminate_backend(pid) FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, dbName); err != nil {
		return fmt.Errorf("terminate connections: %w", err)
	}
	if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	if _, err := pool.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	return nil
}
