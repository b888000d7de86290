// Command httpd serves the ClipSmart classification API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ZinnunMalikov/clipsmart-main/internal/bootstrap"
	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
	"github.com/ZinnunMalikov/clipsmart-main/internal/profiling"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "httpd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Service.Debug {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	profiling.StartPprofServer(log)
	profiler, err := profiling.StartPyroscope("httpd", cfg.Service.Version, log)
	if err != nil {
		log.Warn("Continuous profiling disabled", logger.Error(err))
	}
	defer func() { _ = profiler.Stop() }()

	log.Info("Starting ClipSmart service",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
		logger.Bool("debug", cfg.Service.Debug),
	)

	ctx := context.Background()
	app := bootstrap.NewApp(ctx, cfg, log)
	return app.Run(ctx)
}
