package mcpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aatumaykin/cronty/internal/auth"
	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/logger"
)

// ShutdownTimeout bounds the graceful HTTP shutdown.
const ShutdownTimeout = 10 * time.Second

// HTTPConfig describes the HTTP surface.
type HTTPConfig struct {
	Addr string
	// Path mounts the MCP endpoint, e.g. /mcp.
	Path string
	// Verifier authenticates MCP requests. Nil disables authentication.
	Verifier *auth.Verifier
	// Metrics, when set, is served on MetricsPath without authentication.
	Metrics     http.Handler
	MetricsPath string
	Version     string
}

// Handler builds the HTTP routes: the MCP endpoint behind bearer
// authentication, a liveness probe and optionally the metrics endpoint.
func (s *Server) Handler(cfg HTTPConfig) http.Handler {
	mux := http.NewServeMux()

	streamable := server.NewStreamableHTTPServer(s.mcp, server.WithStateLess(true))
	mux.Handle(cfg.Path, auth.Middleware(cfg.Verifier, s.logger)(streamable))

	mux.HandleFunc(constants.HealthzPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": cfg.Version,
		})
	})

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		mux.Handle(cfg.MetricsPath, cfg.Metrics)
	}

	return mux
}

// ServeHTTP listens on cfg.Addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ServeHTTP(ctx context.Context, cfg HTTPConfig) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln, cfg)
}

func (s *Server) serve(ctx context.Context, ln net.Listener, cfg HTTPConfig) error {
	srv := &http.Server{
		Handler:           s.Handler(cfg),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("serving MCP over http",
		logger.Field{Key: "addr", Value: ln.Addr().String()},
		logger.Field{Key: "path", Value: cfg.Path},
		logger.Field{Key: "auth", Value: cfg.Verifier != nil})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("http server shutdown error", err)
		return err
	}
	return nil
}
