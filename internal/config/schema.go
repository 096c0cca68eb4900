// Package config provides configuration loading and validation for cronty.
// It supports TOML configuration files with environment variable expansion,
// a pure environment mode, default values and validation.
//
// Configuration structure:
//   - [server]: transport (stdio, http) and listen address
//   - [auth]: bearer-token authentication for the http transport
//   - [qstash]: scheduler backend credentials and endpoint
//   - [ntfy]: notification server, default topic and optional token
//   - [logging]: logging level, format, and output
//   - [metrics]: Prometheus endpoint on the http transport
//
// Environment variables:
// Values can reference environment variables using ${VAR} or ${VAR:default}.
// For example: token = "${QSTASH_TOKEN}"
package config

// Transports supported by the server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config represents the main application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Auth    AuthConfig    `toml:"auth"`
	QStash  QStashConfig  `toml:"qstash"`
	Ntfy    NtfyConfig    `toml:"ntfy"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

// ServerConfig представляет конфигурацию MCP сервера
type ServerConfig struct {
	Transport string `toml:"transport"`
	Addr      string `toml:"addr"`
	// Path монтирования MCP endpoint для http транспорта
	Path string `toml:"path"`
}

// AuthConfig представляет конфигурацию JWT аутентификации
type AuthConfig struct {
	Disabled  bool   `toml:"disabled"`
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

// QStashConfig представляет конфигурацию планировщика
type QStashConfig struct {
	Token          string `toml:"token"`
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// NtfyConfig представляет конфигурацию сервера уведомлений
type NtfyConfig struct {
	URL            string `toml:"url"`
	Topic          string `toml:"topic"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// MetricsConfig представляет конфигурацию Prometheus метрик
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Path      string `toml:"path"`
	Namespace string `toml:"namespace"`
}

// AuthEnabled reports whether requests must carry a bearer token. Only the
// http transport authenticates.
func (c *Config) AuthEnabled() bool {
	return c.Server.Transport == TransportHTTP && !c.Auth.Disabled
}
