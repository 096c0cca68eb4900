package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronty/internal/config"
	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/messages"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Validate and inspect Cronty configuration.`,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration",
	Long: `Validate the configuration file and check for errors.
Without an argument ./config.toml is used when present, otherwise the
environment (and ./.env) is validated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := loadConfig(path, cmd.ErrOrStderr())
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), messages.FormatConfigLoadError(err))
			return errReported
		}

		if errs := cfg.Validate(); len(errs) > 0 {
			fmt.Fprint(cmd.ErrOrStderr(), messages.FormatValidationErrors(errs))
			return errReported
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, constants.MsgConfigValid)
		fmt.Fprint(out, messages.FormatConfigSummary(cfg))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}

// loadConfig loads .env, then the TOML file at path. An empty path falls
// back to ./config.toml when it exists and to the environment otherwise.
func loadConfig(path string, notes io.Writer) (*config.Config, error) {
	if err := config.LoadEnvOptional(constants.DefaultEnvPath); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", constants.DefaultEnvPath, err)
	}

	if path == "" {
		if _, err := os.Stat(constants.DefaultConfigPath); err == nil {
			path = constants.DefaultConfigPath
		}
	}
	if path == "" {
		fmt.Fprintln(notes, constants.MsgConfigFromEnv)
		return config.FromEnv(), nil
	}

	return config.Load(path)
}
