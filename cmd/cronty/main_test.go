package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/cronty/internal/auth"
	"github.com/aatumaykin/cronty/internal/config"
	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/tools"
)

// execute runs the root command in an empty working directory so no
// stray .env or config.toml is picked up.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeIn(t, t.TempDir(), args...)
}

func executeIn(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)

	tokenEmail = ""
	tokenExpiresIn = auth.DefaultExpiresIn
	serveConfigPath, serveTransport, serveAddr, serveLogLevel = "", "", "", ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCommandStructure(t *testing.T) {
	found := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Name()] = true
	}
	for _, expected := range []string{"version", "config", "serve", "token", "tools"} {
		assert.True(t, found[expected], "missing command %s", expected)
	}

	sub := map[string]bool{}
	for _, cmd := range configCmd.Commands() {
		sub["config "+cmd.Name()] = true
	}
	for _, cmd := range tokenCmd.Commands() {
		sub["token "+cmd.Name()] = true
	}
	assert.True(t, sub["config validate"])
	assert.True(t, sub["token issue"])
}

func TestServeFlags(t *testing.T) {
	for _, name := range []string{"config", "transport", "addr", "log-level"} {
		assert.NotNil(t, serveCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, auth.DefaultExpiresIn, tokenIssueCmd.Flags().Lookup("expires-in").DefValue)
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "cronty "))
	assert.Contains(t, stdout, "Go version:")
}

func TestToolsCmd(t *testing.T) {
	stdout, _, err := execute(t, "tools")
	require.NoError(t, err)

	var defs []tools.ToolDefinition
	require.NoError(t, json.Unmarshal([]byte(stdout), &defs))
	require.Len(t, defs, 9)

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	assert.Contains(t, names, constants.ToolSendPushNotification)
	assert.Contains(t, names, constants.ToolScheduleCron)
}

func TestTokenIssue(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	t.Setenv(config.EnvJWTSecret, secret)

	stdout, _, err := execute(t, "token", "issue", "--email", "ops@example.com", "--expires-in", "1h")
	require.NoError(t, err)

	verifier, err := auth.NewVerifier([]byte(secret))
	require.NoError(t, err)
	claims, err := verifier.Verify(strings.TrimSpace(stdout))
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", claims.Email())
	assert.Equal(t, auth.Issuer, claims.Issuer)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenIssue_MissingSecret(t *testing.T) {
	t.Setenv(config.EnvJWTSecret, "")

	stdout, stderr, err := execute(t, "token", "issue", "--email", "ops@example.com")
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, stdout)
	assert.Equal(t, constants.MsgTokenSecretRequired+"\n", stderr)
}

func TestTokenIssue_InvalidDuration(t *testing.T) {
	t.Setenv(config.EnvJWTSecret, "0123456789abcdef0123456789abcdef")

	_, stderr, err := execute(t, "token", "issue", "--email", "ops@example.com", "--expires-in", "2w")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Error: Invalid duration format: 2w")
}

func TestConfigValidate_File(t *testing.T) {
	path := writeConfig(t, `
[qstash]
token = "qstash-token-abcdefgh"

[ntfy]
topic = "home-alerts"
`)

	stdout, _, err := execute(t, "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, constants.MsgConfigValid)
	assert.Contains(t, stdout, "transport:     stdio")
	assert.Contains(t, stdout, "default topic: home-alerts")
	assert.NotContains(t, stdout, "qstash-token-abcdefgh")
}

func TestConfigValidate_Invalid(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "loud"
`)

	stdout, stderr, err := execute(t, "config", "validate", path)
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Configuration validation failed")
	assert.Contains(t, stderr, "qstash.token is required")
	assert.Contains(t, stderr, "invalid logging.level: loud")
}

func TestConfigValidate_MissingFile(t *testing.T) {
	_, stderr, err := execute(t, "config", "validate", filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Failed to load configuration")
}

func TestConfigValidate_FromEnv(t *testing.T) {
	t.Setenv(config.EnvQStashToken, "qstash-token-abcdefgh")
	t.Setenv(config.EnvNtfyTopic, "env-alerts")
	t.Setenv(config.EnvTransport, "")

	stdout, stderr, err := execute(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, stderr, constants.MsgConfigFromEnv)
	assert.Contains(t, stdout, "default topic: env-alerts")
}

func TestConfigValidate_DotEnv(t *testing.T) {
	t.Setenv(config.EnvTransport, "")
	// godotenv never overrides variables that are already set.
	for _, key := range []string{config.EnvQStashToken, config.EnvNtfyTopic} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("QSTASH_TOKEN=dotenv-token-abcdefgh\nNTFY_TOPIC=dotenv-alerts\n"), 0o600))

	stdout, stderr, err := executeIn(t, dir, "config", "validate")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "default topic: dotenv-alerts")
}

func TestServe_LoadError(t *testing.T) {
	_, stderr, err := execute(t, "serve", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Failed to load configuration")
}

func TestServe_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[qstash]
token = "qstash-token-abcdefgh"
`)

	_, stderr, err := execute(t, "serve", "--config", path, "--transport", "carrier-pigeon")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "invalid server.transport: carrier-pigeon")
}

func TestApplyServeFlags(t *testing.T) {
	t.Cleanup(func() { serveTransport, serveAddr, serveLogLevel = "", "", "" })

	cfg := &config.Config{
		Server:  config.ServerConfig{Transport: config.TransportStdio, Addr: config.DefaultAddr},
		Logging: config.LoggingConfig{Level: "info"},
	}

	serveTransport, serveAddr, serveLogLevel = "", "", ""
	applyServeFlags(cfg)
	assert.Equal(t, config.TransportStdio, cfg.Server.Transport)
	assert.Equal(t, config.DefaultAddr, cfg.Server.Addr)

	serveTransport, serveAddr, serveLogLevel = "HTTP", "0.0.0.0:9090", "debug"
	applyServeFlags(cfg)
	assert.Equal(t, config.TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}
