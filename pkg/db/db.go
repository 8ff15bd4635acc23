package db

import (
	"context"
	"time"

	"github.com/smallbiznis/mercato/internal/config"
	"github.com/smallbiznis/mercato/internal/observability"
	"github.com/smallbiznis/mercato/internal/observability/logger"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(New),
)

// Open connects to the configured database with the zap-backed GORM logger
// and pool settings applied. Used directly by one-shot commands.
func Open(cfg config.Config) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(logger.DefaultGormLoggerConfig()),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTime) * time.Second)

	return conn, nil
}

// New opens the database for the long-running service, instruments it and
// ties the pool to the fx lifecycle.
func New(lc fx.Lifecycle, cfg config.Config, obsCfg observability.Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if obsCfg.OtelEnabled {
		if err := conn.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.DBName))); err != nil {
			return nil, err
		}
	}
	if err := conn.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          cfg.DBName,
		RefreshInterval: 15,
	})); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = ctx
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			log.Info("closing database pool")
			return sqlDB.Close()
		},
	})

	return conn, nil
}
