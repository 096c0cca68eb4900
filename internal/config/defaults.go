package config

// Default values applied to unset fields.
const (
	DefaultTransport      = TransportStdio
	DefaultAddr           = "127.0.0.1:8080"
	DefaultMCPPath        = "/mcp"
	DefaultIssuer         = "cronty-mcp"
	DefaultQStashURL      = "https://qstash.upstash.io"
	DefaultNtfyURL        = "https://ntfy.sh"
	DefaultTimeoutSeconds = 30
	DefaultMetricsPath    = "/metrics"
	DefaultNamespace      = "cronty"
)

// applyDefaults применяет значения по умолчанию
func applyDefaults(c *Config) {
	if c.Server.Transport == "" {
		c.Server.Transport = DefaultTransport
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.Path == "" {
		c.Server.Path = DefaultMCPPath
	}

	if c.Auth.Issuer == "" {
		c.Auth.Issuer = DefaultIssuer
	}

	if c.QStash.URL == "" {
		c.QStash.URL = DefaultQStashURL
	}
	if c.QStash.TimeoutSeconds == 0 {
		c.QStash.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if c.Ntfy.URL == "" {
		c.Ntfy.URL = DefaultNtfyURL
	}
	if c.Ntfy.TimeoutSeconds == 0 {
		c.Ntfy.TimeoutSeconds = DefaultTimeoutSeconds
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}
