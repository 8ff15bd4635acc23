package main

import (
	"github.com/smallbiznis/mercato/internal/clock"
	"github.com/smallbiznis/mercato/internal/config"
	"github.com/smallbiznis/mercato/internal/migration"
	"github.com/smallbiznis/mercato/internal/seed"
	"github.com/smallbiznis/mercato/pkg/db"
	"go.uber.org/zap"
)

// One-shot command: migrate the configured database and fill it with the
// demo dataset when empty.
func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatal("acquire database handle", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	if err := migration.RunMigrations(sqlDB, cfg.DBType); err != nil {
		log.Fatal("apply migrations", zap.Error(err))
	}
	if err := seed.EnsureDemoData(conn, clock.NewSystemClock()); err != nil {
		log.Fatal("seed demo data", zap.Error(err))
	}

	log.Info("demo data ready",
		zap.String("database_type", cfg.DBType),
		zap.String("database", cfg.DBName),
	)
}
