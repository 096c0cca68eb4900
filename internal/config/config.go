package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandEnvVars(&cfg)
	applyDefaults(&cfg)
	cfg.Server.Transport = strings.ToLower(cfg.Server.Transport)

	return &cfg, nil
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() []error {
	var errs []error

	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		errs = append(errs, fmt.Errorf("invalid server.transport: %s (expected: stdio, http)", c.Server.Transport))
	}
	if c.Server.Transport == TransportHTTP {
		if c.Server.Addr == "" {
			errs = append(errs, fmt.Errorf("server.addr is required for the http transport"))
		}
		if !strings.HasPrefix(c.Server.Path, "/") {
			errs = append(errs, fmt.Errorf("server.path must start with '/' (got %q)", c.Server.Path))
		}
	}

	if c.AuthEnabled() {
		if c.Auth.JWTSecret == "" {
			errs = append(errs, fmt.Errorf("auth.jwt_secret is required when authentication is enabled (set JWT_SECRET or AUTH_DISABLED=true)"))
		} else if len(c.Auth.JWTSecret) < MinSecretLength {
			errs = append(errs, formatValidationError("auth.jwt_secret",
				fmt.Sprintf("is too short (minimum %d characters)", MinSecretLength), c.Auth.JWTSecret))
		}
	}

	if c.QStash.Token == "" {
		errs = append(errs, fmt.Errorf("qstash.token is required"))
	}
	if err := validateURL(c.QStash.URL, "qstash.url"); err != nil {
		errs = append(errs, err)
	}
	if c.QStash.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("qstash.timeout_seconds must be >= 0"))
	}

	if err := validateURL(c.Ntfy.URL, "ntfy.url"); err != nil {
		errs = append(errs, err)
	}
	if c.Ntfy.Topic != "" && !topicPattern.MatchString(c.Ntfy.Topic) {
		errs = append(errs, fmt.Errorf("invalid ntfy.topic: %s (expected lowercase alphanumeric with dashes)", c.Ntfy.Topic))
	}
	if c.Ntfy.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("ntfy.timeout_seconds must be >= 0"))
	}

	errs = append(errs, c.validateLogging()...)

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with '/' (got %q)", c.Metrics.Path))
	}

	return errs
}

func (c *Config) validateLogging() []error {
	var errs []error

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}

	// stdout несёт JSON-RPC поток в stdio режиме
	if c.Server.Transport == TransportStdio && strings.EqualFold(c.Logging.Output, "stdout") {
		errs = append(errs, fmt.Errorf("logging.output cannot be stdout with the stdio transport"))
	}

	return errs
}

// MissingSettings lists required environment settings that are empty.
// The health tool reports them.
func (c *Config) MissingSettings() []string {
	var missing []string
	if c.QStash.Token == "" {
		missing = append(missing, EnvQStashToken)
	}
	if c.Ntfy.Topic == "" {
		missing = append(missing, EnvNtfyTopic)
	}
	return missing
}

func validateURL(raw, fieldName string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL (got %q)", fieldName, raw)
	}
	return nil
}
