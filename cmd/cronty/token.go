package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aatumaykin/cronty/internal/auth"
	"github.com/aatumaykin/cronty/internal/config"
	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/messages"
)

var (
	tokenEmail     string
	tokenExpiresIn string
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage access tokens",
	Long:  `Issue bearer tokens for the http transport.`,
}

// tokenIssueCmd signs a token with JWT_SECRET
var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a bearer token",
	Long: `Issue an HS512 JWT signed with JWT_SECRET (read from the environment or ./.env).
The token is printed to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		errOut := cmd.ErrOrStderr()

		if err := config.LoadEnvOptional(constants.DefaultEnvPath); err != nil {
			fmt.Fprintln(errOut, messages.FormatError(err))
			return errReported
		}

		secret := os.Getenv(config.EnvJWTSecret)
		if secret == "" {
			fmt.Fprintln(errOut, constants.MsgTokenSecretRequired)
			return errReported
		}

		ttl, err := auth.ParseDuration(tokenExpiresIn)
		if err != nil {
			fmt.Fprintln(errOut, messages.FormatError(err))
			return errReported
		}

		token, err := auth.Issue([]byte(secret), tokenEmail, ttl, time.Now())
		if err != nil {
			fmt.Fprintln(errOut, messages.FormatError(err))
			return errReported
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenIssueCmd.Flags().StringVar(&tokenEmail, "email", "", "Email stored as the token subject (required)")
	tokenIssueCmd.Flags().StringVar(&tokenExpiresIn, "expires-in", auth.DefaultExpiresIn, "Token lifetime, e.g. 30d, 12h, 1y")
	_ = tokenIssueCmd.MarkFlagRequired("email")

	tokenCmd.AddCommand(tokenIssueCmd)
}
