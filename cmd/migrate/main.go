package main

import (
	"context"
	"flag"
	"os"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/config"
	pkgconfig "github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/config"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	migration "github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/migration-pg"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/postgresql"
)

func main() {
	var (
		direction = flag.String("direction", "up", "Migration direction: up or down")
		steps     = flag.Int("steps", 0, "Number of steps to migrate (0 = all)")
	)
	flag.Parse()

	ctx := context.Background()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	fatal := func(err error, action string) {
		log.Error(err, logger.NewField("action", action))
		_ = log.Sync()
		os.Exit(1)
	}

	cfg := &config.Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		fatal(err, "load_config")
	}

	pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
	if err != nil {
		fatal(err, "connect_postgres")
	}
	defer pgClient.Close()

	runner := migration.NewRunner(pgClient, log, cfg.Migration)
	if err := runner.EnsureMigrationTable(ctx); err != nil {
		fatal(err, "ensure_migration_table")
	}

	switch *direction {
	case "up":
		err = runner.MigrateUp(ctx, *steps)
	case "down":
		err = runner.MigrateDown(ctx, *steps)
	default:
		log.Warn("Invalid direction, use 'up' or 'down'", logger.NewField("direction", *direction))
		os.Exit(2)
	}
	if err != nil {
		fatal(err, "migrate_"+*direction)
	}

	log.Info("Migration completed successfully", logger.NewField("direction", *direction))
}
