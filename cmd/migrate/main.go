package main

import (
	"flag"
	"log/slog"
	"os"

	"postboard-service/internal/infrastructure/config"
	"postboard-service/internal/infrastructure/logger"
	"postboard-service/internal/infrastructure/outbound/repository/postgres/migrations"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up, down or version")
	steps := flag.Int("steps", 0, "number of steps to migrate, negative to roll back; overrides direction")
	flag.Parse()

	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	migrator, err := migrations.NewMigrator(cfg.Database.MigrationsPath, cfg.Database.DSN(), log)
	if err != nil {
		log.Error("Failed to init migrator", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			log.Error("Failed to close migrator", slog.String("error", err.Error()))
		}
	}()

	switch {
	case *steps != 0:
		err = migrator.Steps(*steps)
	case *direction == "up":
		err = migrator.Up()
	case *direction == "down":
		err = migrator.Down()
	case *direction == "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = migrator.Version()
		if err == nil {
			log.Info("Current migration version", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		}
	default:
		log.Error("Unknown migration direction", slog.String("direction", *direction))
		os.Exit(2)
	}

	if err != nil {
		log.Error("Migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
