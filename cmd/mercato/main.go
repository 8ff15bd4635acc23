package main

import (
	"github.com/smallbiznis/mercato/internal/analytics"
	"github.com/smallbiznis/mercato/internal/catalog"
	"github.com/smallbiznis/mercato/internal/clock"
	"github.com/smallbiznis/mercato/internal/config"
	"github.com/smallbiznis/mercato/internal/migration"
	"github.com/smallbiznis/mercato/internal/observability"
	"github.com/smallbiznis/mercato/internal/orders"
	"github.com/smallbiznis/mercato/internal/server"
	"github.com/smallbiznis/mercato/internal/snapshot"
	"github.com/smallbiznis/mercato/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,

		// Schema first, then the in-memory snapshot, then the dashboard.
		migration.Module,
		catalog.Module,
		orders.Module,
		snapshot.Module,
		analytics.Module,

		server.Module,
	)
	app.Run()
}
