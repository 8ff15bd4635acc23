package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	analyticsdomain "github.com/smallbiznis/mercato/internal/analytics/domain"
	"github.com/smallbiznis/mercato/internal/config"
	"github.com/smallbiznis/mercato/internal/observability"
	obsmiddleware "github.com/smallbiznis/mercato/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/mercato/internal/observability/metrics"
	obstracing "github.com/smallbiznis/mercato/internal/observability/tracing"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	analyticsSvc analyticsdomain.Service
	dashboardCfg *config.DashboardConfigHolder
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	AnalyticsSvc analyticsdomain.Service
	DashboardCfg *config.DashboardConfigHolder
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		analyticsSvc: p.AnalyticsSvc,
		dashboardCfg: p.DashboardCfg,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("", s.GetDashboardOverview)
		dashboard.GET("/kpis", s.GetDashboardKPIs)
		dashboard.GET("/daily-sales", s.GetDashboardDailySales)
		dashboard.GET("/top-products", s.GetDashboardTopProducts)
		dashboard.GET("/category-shares", s.GetDashboardCategoryShares)
		dashboard.GET("/store-comparison", s.GetDashboardStoreComparison)
		dashboard.GET("/hourly-profile", s.GetDashboardHourlyProfile)
		dashboard.GET("/low-stock", s.GetDashboardLowStock)
		dashboard.GET("/filters", s.GetDashboardFilters)
	}
}
