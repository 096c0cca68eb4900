package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronty/internal/app"
	"github.com/aatumaykin/cronty/internal/config"
	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/logger"
	"github.com/aatumaykin/cronty/internal/messages"
	"github.com/aatumaykin/cronty/internal/version"
)

var (
	serveConfigPath string
	serveTransport  string
	serveAddr       string
	serveLogLevel   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (main command)",
	Long: `Start the Cronty MCP server.
The stdio transport (default) talks JSON-RPC on stdin/stdout; the http
transport serves the streamable MCP endpoint, /healthz and /metrics and
requires a bearer token unless AUTH_DISABLED=true.`,
	Args: cobra.NoArgs,
	RunE: serveHandler,
}

func serveHandler(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(serveConfigPath, cmd.ErrOrStderr())
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), messages.FormatConfigLoadError(err))
		return errReported
	}
	applyServeFlags(cfg)

	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), messages.FormatValidationErrors(errs))
		return errReported
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info(constants.MsgServerStarting,
		logger.Field{Key: "version", Value: version.FormatStartupMessage()},
		logger.Field{Key: "git_commit", Value: version.GitCommit},
		logger.Field{Key: "transport", Value: cfg.Server.Transport},
		logger.Field{Key: "qstash_url", Value: cfg.QStash.URL},
		logger.Field{Key: "ntfy_url", Value: cfg.Ntfy.URL},
	)
	if cfg.Server.Transport == config.TransportHTTP && !cfg.AuthEnabled() {
		log.Warn(constants.MsgAuthDisabled)
	}
	if missing := cfg.MissingSettings(); len(missing) > 0 {
		log.Warn("Missing settings; the health tool will report them",
			logger.Field{Key: "missing", Value: strings.Join(missing, ",")})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, log, version.Version).Run(ctx); err != nil {
		log.Error("Server failed", err)
		return err
	}

	log.Info(constants.MsgServerStopped)
	return nil
}

// applyServeFlags overrides configuration with explicitly set flags.
func applyServeFlags(cfg *config.Config) {
	if serveTransport != "" {
		cfg.Server.Transport = strings.ToLower(serveTransport)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveLogLevel != "" {
		cfg.Logging.Level = serveLogLevel
	}
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to config file (default ./config.toml, else environment)")
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "Transport: stdio or http")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address for the http transport")
	serveCmd.Flags().StringVarP(&serveLogLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")
}
