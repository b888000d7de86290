package bootstrap

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ZinnunMalikov/clipsmart-main/internal/api"
	"github.com/ZinnunMalikov/clipsmart-main/internal/calendar"
	"github.com/ZinnunMalikov/clipsmart-main/internal/classifier"
	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/httpserver"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/processor"
	"github.com/ZinnunMalikov/clipsmart-main/internal/telemetry"
)

// App is the assembled HTTP service.
type App struct {
	Server  *httpserver.Server
	logger  logger.Logger
	closers []closer
}

// NewApp wires every component. Only the classifier is mandatory; the rest
// degrade to disabled when unconfigured or unreachable.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) *App {
	tp := telemetry.NewProvider()
	app := &App{logger: log}

	svc := classifier.NewService(log, tp)
	deps := api.Deps{
		Classifier: svc,
		Batch:      processor.NewBatchProcessor(svc, cfg.Batch.Concurrency, log, tp),
		Calendar:   calendar.Builder{},
		MaxBatch:   cfg.Batch.MaxItems,
		Logger:     log,
		Telemetry:  tp,
	}
	checks := map[string]httpserver.HealthChecker{}

	// Interfaces are only assigned when the concrete value is non-nil.
	if client := SetupAssistant(cfg.Assistant, log, tp); client != nil {
		deps.Assistant = client
	}
	if c, closeFn := SetupCache(cfg.Redis, log, tp); c != nil {
		deps.Cache = c
		checks["redis"] = httpserver.PingCheck(c.Ping)
		app.closers = append(app.closers, closeFn)
	}
	if store := SetupObjectStore(ctx, cfg.ObjectStore, log, tp); store != nil {
		deps.Store = store
	}

	reqLog, closeFn := SetupRequestLog(ctx, cfg, log)
	deps.RequestLog = reqLog
	checks["request_log"] = httpserver.PingCheck(reqLog.Ping)
	if closeFn != nil {
		app.closers = append(app.closers, closeFn)
	}

	handler := api.NewHandler(deps)
	app.Server = httpserver.NewServer(cfg.Service, log, func(router *gin.Engine) {
		api.SetupRoutes(router, handler, api.RouteOptions{
			JWTSecret: cfg.Auth.JWTSecret,
			Metrics:   tp.Handler(),
			Health: httpserver.HealthOptions{
				ServiceName:    cfg.Service.Name,
				ServiceVersion: cfg.Service.Version,
				StartTime:      time.Now(),
				Checks:         checks,
			},
		})
	})

	log.Info("Service assembled",
		logger.Bool("assistant", deps.Assistant != nil),
		logger.Bool("cache", deps.Cache != nil),
		logger.Bool("object_store", deps.Store != nil),
		logger.String("request_log", reqLog.Backend()),
		logger.Bool("auth", cfg.Auth.JWTSecret != ""),
	)
	return app
}

// Run serves until a signal arrives or ctx is done, then releases components.
func (a *App) Run(ctx context.Context) error {
	err := a.Server.RunWithGracefulShutdown(ctx)
	return errors.Join(err, a.Close())
}

// Close releases components in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		a.logger.Warn("Errors while closing components", logger.Error(errors.Join(errs...)))
	}
	return errors.Join(errs...)
}
