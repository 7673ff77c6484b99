package main

import (
	"context"
	"fmt"
	"os"
	"time"

	mongomigration "slotlink/internal/migrations/mongo"
	postgresmigration "slotlink/internal/migrations/postgres"
	"slotlink/pkg/config"

	"github.com/spf13/pflag"
)

const JobName = "slotlink-migrate"

func main() {
	var driver string
	var timeout time.Duration

	flagSet := pflag.NewFlagSet(JobName, pflag.ContinueOnError)
	flagSet.StringVar(&driver, "driver", "", "store to migrate: mongo or postgres (default: STORE_DRIVER)")
	flagSet.DurationVar(&timeout, "timeout", 120*time.Second, "overall migration deadline")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if driver != "" {
		_ = os.Setenv(config.EnvStoreDriver, driver)
	}

	cfg := config.Load(JobName)
	cfg.Connect()
	defer cfg.GracefulShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg.Log.Info("Starting migration job", "store_driver", cfg.StoreDriver)
	if err := migrate(ctx, cfg); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cancel()
		cfg.GracefulShutdown()
		os.Exit(1)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrate(ctx context.Context, cfg *config.Config) error {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return postgresmigration.RunMigration(ctx, cfg.Client.Postgres, cfg.Log)
	default:
		return mongomigration.RunMigration(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log)
	}
}
