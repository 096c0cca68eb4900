package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvQStashToken  = "QSTASH_TOKEN"
	EnvQStashURL    = "QSTASH_URL"
	EnvNtfyURL      = "NTFY_URL"
	EnvNtfyTopic    = "NTFY_TOPIC"
	EnvNtfyToken    = "NTFY_TOKEN"
	EnvJWTSecret    = "JWT_SECRET"
	EnvAuthDisabled = "AUTH_DISABLED"
	EnvTransport    = "CRONTY_TRANSPORT"
	EnvAddr         = "CRONTY_ADDR"
	EnvLogLevel     = "LOG_LEVEL"
)

// LoadEnvOptional загружает переменные окружения из .env файла, если он существует.
// Уже установленные переменные не перезаписываются.
func LoadEnvOptional(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return godotenv.Load(path)
}

// FromEnv builds a configuration from environment variables alone.
func FromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Transport: strings.ToLower(os.Getenv(EnvTransport)),
			Addr:      os.Getenv(EnvAddr),
		},
		Auth: AuthConfig{
			Disabled:  parseBool(os.Getenv(EnvAuthDisabled)),
			JWTSecret: os.Getenv(EnvJWTSecret),
		},
		QStash: QStashConfig{
			Token: os.Getenv(EnvQStashToken),
			URL:   os.Getenv(EnvQStashURL),
		},
		Ntfy: NtfyConfig{
			URL:   os.Getenv(EnvNtfyURL),
			Topic: os.Getenv(EnvNtfyTopic),
			Token: os.Getenv(EnvNtfyToken),
		},
		Logging: LoggingConfig{
			Level: os.Getenv(EnvLogLevel),
		},
		Metrics: MetricsConfig{Enabled: true},
	}

	applyDefaults(cfg)
	return cfg
}

// parseBool accepts "true" in any case; everything else is false.
func parseBool(s string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(s)))
	return err == nil && v
}

// expandEnvVars расширяет переменные окружения в конфигурации
func expandEnvVars(c *Config) {
	for _, field := range []*string{
		&c.Auth.JWTSecret,
		&c.QStash.Token,
		&c.QStash.URL,
		&c.Ntfy.URL,
		&c.Ntfy.Topic,
		&c.Ntfy.Token,
		&c.Server.Addr,
	} {
		*field = expandEnv(*field)
	}
	c.Logging.Output = expandHome(c.Logging.Output)
}

// expandEnv расширяет переменную окружения формата ${VAR} или ${VAR:default}
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") || !strings.HasSuffix(s, "}") {
		return s
	}

	content := s[2 : len(s)-1]
	key, defaultVal, hasDefault := strings.Cut(content, ":")
	if val := os.Getenv(key); val != "" {
		return val
	}
	if hasDefault {
		return defaultVal
	}
	return ""
}

// expandHome расширяет ~ в пути
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home + path[1:]
	}
	return path
}
