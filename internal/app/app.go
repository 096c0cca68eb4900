// Package app wires the cronty components together: backend clients, the
// gateway service, the tool registry and the MCP server. It owns their
// lifecycle for the duration of one serve run.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aatumaykin/cronty/internal/auth"
	"github.com/aatumaykin/cronty/internal/config"
	"github.com/aatumaykin/cronty/internal/gateway"
	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/mcpserver"
	"github.com/aatumaykin/cronty/internal/metrics"
	"github.com/aatumaykin/cronty/internal/tools"
)

// App represents the main application structure.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	version string

	// Observability
	registry *prometheus.Registry
	metrics  *metrics.PrometheusMetrics

	// Core components
	gateway  *gateway.Service
	executor *tools.Executor
	server   *mcpserver.Server
	verifier *auth.Verifier

	// stdio streams; replaced in tests
	stdin  io.Reader
	stdout io.Writer

	mu      sync.Mutex
	started bool
}

// New creates a new App. Components are built by Initialize.
func New(cfg *config.Config, log *logger.Logger, version string) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		config:  cfg,
		logger:  log,
		version: version,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
	}
}

// Run initializes the components and serves on the configured transport
// until ctx is cancelled or, for stdio, the client closes the stream.
func (a *App) Run(ctx context.Context) error {
	if err := a.Initialize(ctx); err != nil {
		return err
	}
	defer func() {
		if err := a.Shutdown(); err != nil {
			a.logger.Error("Shutdown failed", err)
		}
	}()

	switch a.config.Server.Transport {
	case config.TransportStdio:
		return a.server.ServeStdio(ctx, a.stdin, a.stdout)
	case config.TransportHTTP:
		return a.server.ServeHTTP(ctx, a.httpConfig())
	default:
		return fmt.Errorf("unsupported transport: %s", a.config.Server.Transport)
	}
}

func (a *App) httpConfig() mcpserver.HTTPConfig {
	cfg := mcpserver.HTTPConfig{
		Addr:     a.config.Server.Addr,
		Path:     a.config.Server.Path,
		Verifier: a.verifier,
		Version:  a.version,
	}
	if a.config.Metrics.Enabled {
		cfg.Metrics = a.metrics.Handler()
		cfg.MetricsPath = a.config.Metrics.Path
	}
	return cfg
}

// Executor returns the tool executor. Nil before Initialize.
func (a *App) Executor() *tools.Executor {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.executor
}
