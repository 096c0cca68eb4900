package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aatumaykin/cronty/internal/auth"
	"github.com/aatumaykin/cronty/internal/gateway"
	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/mcpserver"
	"github.com/aatumaykin/cronty/internal/metrics"
	"github.com/aatumaykin/cronty/internal/ntfy"
	"github.com/aatumaykin/cronty/internal/qstash"
	"github.com/aatumaykin/cronty/internal/tools"
)

// Initialize builds all components from the configuration:
// metrics, backend clients, gateway service, tools, authentication and the
// MCP server. Nothing is contacted over the network.
func (a *App) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return fmt.Errorf("application already initialized")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// 1. Metrics
	a.registry = prometheus.NewRegistry()
	if a.config.Metrics.Enabled {
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.metrics = metrics.InitPrometheusMetrics(a.config.Metrics.Namespace, a.registry)
	}

	// 2. Backend clients
	scheduler := qstash.New(qstash.Config{
		BaseURL: a.config.QStash.URL,
		Token:   a.config.QStash.Token,
		Timeout: time.Duration(a.config.QStash.TimeoutSeconds) * time.Second,
	}, a.logger.Named("qstash"), qstash.WithRecorder(a.metrics))

	notifier := ntfy.New(ntfy.Config{
		BaseURL: a.config.Ntfy.URL,
		Token:   a.config.Ntfy.Token,
		Timeout: time.Duration(a.config.Ntfy.TimeoutSeconds) * time.Second,
	}, a.logger.Named("ntfy"), a.metrics)

	// 3. Gateway service
	a.gateway = gateway.New(gateway.Config{
		NotificationURL: a.config.Ntfy.URL,
		DefaultTopic:    a.config.Ntfy.Topic,
		MissingSettings: a.config.MissingSettings(),
	}, scheduler, notifier, a.logger.Named("gateway"))

	// 4. Tools
	registry := tools.NewRegistry()
	if err := tools.RegisterAll(registry, a.gateway, a.logger); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	a.executor = tools.NewExecutor(registry, a.metrics, a.logger, nil)

	// 5. Authentication
	if a.config.AuthEnabled() {
		v, err := auth.NewVerifier([]byte(a.config.Auth.JWTSecret))
		if err != nil {
			return fmt.Errorf("failed to create token verifier: %w", err)
		}
		a.verifier = v
	}

	// 6. MCP server
	server, err := mcpserver.New(a.executor, a.version, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	a.server = server

	a.started = true
	a.logger.Info("Application initialized",
		logger.Field{Key: "transport", Value: a.config.Server.Transport},
		logger.Field{Key: "tools", Value: len(registry.List())},
		logger.Field{Key: "auth", Value: a.verifier != nil})

	return nil
}
