package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/osse101/FairyGrove_Go/internal/bootstrap"
	"github.com/osse101/FairyGrove_Go/internal/config"
	"github.com/osse101/FairyGrove_Go/internal/database"
)

const (
	flagDriver   = "driver"
	flagAttempts = "attempts"
	flagInterval = "interval"
)

// loadConfig reads the service configuration; --driver overrides DB_DRIVER
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if d := cmd.String(flagDriver); d != "" {
		cfg.DBDriver = d
	}
	return cfg, nil
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending schema migrations for the configured driver",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagDriver, Usage: "postgres or sqlite (defaults to DB_DRIVER)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.DBDriver == config.DBDriverMemory {
				PrintWarning(out, "memory driver has no schema")
				return nil
			}

			PrintHeader(out, "Migrating "+cfg.DBDriver)
			store, err := bootstrap.InitializeStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			PrintSuccess(out, "Schema up to date")
			return nil
		},
	}
}

func waitForDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "wait-for-db",
		Usage: "Wait for PostgreSQL to accept connections",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: flagAttempts, Value: 30, Usage: "maximum connection attempts"},
			&cli.DurationFlag{Name: flagInterval, Value: 2 * time.Second, Usage: "delay between attempts"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			PrintHeader(out, "Waiting for database...")
			attempts := cmd.Int64(flagAttempts)
			for i := int64(1); i <= attempts; i++ {
				pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 1, time.Minute, time.Minute)
				if err == nil {
					pool.Close()
					PrintSuccess(out, "Database is ready")
					return nil
				}
				fmt.Fprintf(out, "Database not ready (%d/%d): %v\n", i, attempts, err)

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(cmd.Duration(flagInterval)):
				}
			}
			return fmt.Errorf("database failed to become ready after %d attempts", attempts)
		},
	}
}
