// Package profiling starts the optional pprof endpoint and Pyroscope agent.
package profiling

import (
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // bound to localhost only
	"os"
	"runtime"
	"time"

	"github.com/grafana/pyroscope-go"

	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

const (
	defaultPprofPort       = "6060"
	defaultPyroscopeURL    = "http://pyroscope:4040"
	defaultEnvironment     = "development"
	pprofReadHeaderTimeout = 5 * time.Second
)

// StartPprofServer serves net/http/pprof on localhost when
// ENABLE_PROFILING=true. PPROF_PORT overrides the port.
func StartPprofServer(log logger.Logger) {
	if os.Getenv("ENABLE_PROFILING") != "true" {
		return
	}

	port := os.Getenv("PPROF_PORT")
	if port == "" {
		port = defaultPprofPort
	}
	addr := "localhost:" + port

	srv := &http.Server{Addr: addr, Handler: http.DefaultServeMux, ReadHeaderTimeout: pprofReadHeaderTimeout}
	go func() {
		log.Info("Starting pprof server", logger.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("pprof server stopped", logger.Error(err))
		}
	}()
}

// Profiler is a running Pyroscope agent. A nil Profiler is valid and inert.
type Profiler struct {
	profiler *pyroscope.Profiler
}

// StartPyroscope starts continuous profiling when
// ENABLE_CONTINUOUS_PROFILING=true and returns nil otherwise.
func StartPyroscope(serviceName, version string, log logger.Logger) (*Profiler, error) {
	if os.Getenv("ENABLE_CONTINUOUS_PROFILING") != "true" {
		return nil, nil
	}

	serverURL := os.Getenv("PYROSCOPE_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultPyroscopeURL
	}
	environment := os.Getenv("PYROSCOPE_ENVIRONMENT")
	if environment == "" {
		environment = defaultEnvironment
	}

	cfg := pyroscope.Config{
		ApplicationName: "clipsmart." + serviceName,
		ServerAddress:   serverURL,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
		Tags: map[string]string{
			"environment": environment,
			"version":     version,
			"hostname":    hostname(),
			"go_version":  runtime.Version(),
		},
	}

	p, err := pyroscope.Start(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}

	log.Info("Pyroscope continuous profiling started",
		logger.String("application", cfg.ApplicationName),
		logger.String("server", serverURL),
		logger.String("environment", environment))

	return &Profiler{profiler: p}, nil
}

// Stop flushes and stops the agent.
func (p *Profiler) Stop() error {
	if p == nil || p.profiler == nil {
		return nil
	}
	return p.profiler.Stop()
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
