package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cronty.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validConfig() *Config {
	cfg := &Config{
		QStash: QStashConfig{Token: "qstash-token-value"},
		Ntfy:   NtfyConfig{Topic: "alerts"},
	}
	applyDefaults(cfg)
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, "/mcp", cfg.Server.Path)
	assert.Equal(t, "cronty-mcp", cfg.Auth.Issuer)
	assert.Equal(t, "https://qstash.upstash.io", cfg.QStash.URL)
	assert.Equal(t, "https://ntfy.sh", cfg.Ntfy.URL)
	assert.Equal(t, 30, cfg.QStash.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_QSTASH_TOKEN", "from-env-token")

	path := writeConfig(t, `
[server]
transport = "HTTP"
addr = "0.0.0.0:9000"

[auth]
jwt_secret = "${TEST_JWT_SECRET:a-default-secret-long-enough}"

[qstash]
token = "${TEST_QSTASH_TOKEN}"

[ntfy]
url = "https://push.example.org"
topic = "home-alerts"

[logging]
level = "debug"
format = "text"

[metrics]
enabled = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "a-default-secret-long-enough", cfg.Auth.JWTSecret)
	assert.Equal(t, "from-env-token", cfg.QStash.Token)
	assert.Equal(t, "https://push.example.org", cfg.Ntfy.URL)
	assert.Equal(t, "home-alerts", cfg.Ntfy.Topic)
	assert.True(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.AuthEnabled())
	assert.Empty(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = Load(writeConfig(t, "[server\ntransport ="))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid stdio", func(c *Config) {}, ""},
		{"unknown transport", func(c *Config) { c.Server.Transport = "grpc" }, "invalid server.transport"},
		{"missing qstash token", func(c *Config) { c.QStash.Token = "" }, "qstash.token is required"},
		{"bad qstash url", func(c *Config) { c.QStash.URL = "qstash.upstash.io" }, "qstash.url"},
		{"bad ntfy url", func(c *Config) { c.Ntfy.URL = "ftp://ntfy.sh" }, "ntfy.url"},
		{"bad topic", func(c *Config) { c.Ntfy.Topic = "Home_Alerts" }, "invalid ntfy.topic"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "invalid logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "invalid logging.format"},
		{"stdout with stdio", func(c *Config) { c.Logging.Output = "stdout" }, "cannot be stdout"},
		{"http without secret", func(c *Config) { c.Server.Transport = TransportHTTP }, "auth.jwt_secret is required"},
		{"http short secret", func(c *Config) {
			c.Server.Transport = TransportHTTP
			c.Auth.JWTSecret = "short"
		}, "too short"},
		{"http auth disabled", func(c *Config) {
			c.Server.Transport = TransportHTTP
			c.Auth.Disabled = true
			c.Logging.Output = "stdout"
		}, ""},
		{"metrics path", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Path = "metrics"
		}, "metrics.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			errs := cfg.Validate()

			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			var joined []string
			for _, err := range errs {
				joined = append(joined, err.Error())
			}
			assert.Contains(t, strings.Join(joined, "; "), tt.wantErr)
		})
	}
}

func TestShortSecretIsMasked(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Transport = TransportHTTP
	cfg.Auth.JWTSecret = "tiny-secret"

	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.NotContains(t, errs[0].Error(), "tiny-secret")

	var vErr *ValidationError
	require.ErrorAs(t, errs[0], &vErr)
	assert.Equal(t, "auth.jwt_secret", vErr.Field)
}

func TestMissingSettings(t *testing.T) {
	cfg := validConfig()
	assert.Empty(t, cfg.MissingSettings())

	cfg.QStash.Token = ""
	cfg.Ntfy.Topic = ""
	assert.Equal(t, []string{"QSTASH_TOKEN", "NTFY_TOPIC"}, cfg.MissingSettings())
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", maskSecret(""))
	assert.Equal(t, "***", maskSecret("short"))
	assert.Equal(t, "abcd****mnop", maskSecret("abcdefghmnop"))
}

func TestRedacted(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "super-secret-signing-key"

	red := cfg.Redacted()
	assert.NotEqual(t, cfg.Auth.JWTSecret, red.Auth.JWTSecret)
	assert.True(t, strings.HasPrefix(red.Auth.JWTSecret, "supe"))
	assert.Equal(t, "super-secret-signing-key", cfg.Auth.JWTSecret)
}
