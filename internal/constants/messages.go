package constants

// Config messages
const (
	// MsgConfigLoadError is the error message when configuration loading fails.
	MsgConfigLoadError = "❌ Failed to load configuration: %v\n"

	// MsgConfigValidationError is the message when configuration validation fails.
	MsgConfigValidationError = "❌ Configuration validation failed:\n"

	// MsgConfigValid is the message when configuration is successfully loaded and validated.
	MsgConfigValid = "✅ Configuration is valid"

	// MsgConfigValidatePrefix is the prefix for configuration validation errors.
	MsgConfigValidatePrefix = "  - %v\n"

	// MsgConfigFromEnv notes that no config file was used.
	MsgConfigFromEnv = "Using configuration from environment variables"
)

// Token messages
const (
	// MsgTokenSecretRequired is printed by `cronty token issue` without a secret.
	MsgTokenSecretRequired = "Error: JWT_SECRET environment variable is required"

	// MsgErrorFormat prefixes command failures.
	MsgErrorFormat = "Error: %v"
)

// Configuration summary, printed by `cronty config validate`
const (
	MsgSummaryHeader    = "Effective configuration:\n"
	MsgSummaryTransport = "  transport:     %s\n"
	MsgSummaryEndpoint  = "  endpoint:      %s%s\n"
	MsgSummaryAuth      = "  auth:          %s\n"
	MsgSummaryQStash    = "  qstash:        %s (token %s)\n"
	MsgSummaryNtfy      = "  ntfy:          %s\n"
	MsgSummaryTopic     = "  default topic: %s\n"
	MsgSummaryMetrics   = "  metrics:       %s\n"
)

// Server messages
const (
	// MsgServerStarting is logged when a transport starts serving.
	MsgServerStarting = "Starting MCP server"

	// MsgServerStopped is logged after a clean shutdown.
	MsgServerStopped = "MCP server stopped"

	// MsgAuthDisabled warns that the http transport accepts anonymous requests.
	MsgAuthDisabled = "Authentication is disabled; the http transport accepts unauthenticated requests"
)

// Tool suggestions
const (
	// MsgSuggestCronExamples points agents at the cron examples resource.
	MsgSuggestCronExamples = "Read the cron://examples resource for valid expressions"

	// MsgSuggestTimezones points agents at the timezone list resource.
	MsgSuggestTimezones = "Read the timezones://valid resource for IANA timezone names"

	// MsgSuggestDelay lists valid delay strings.
	MsgSuggestDelay = "Use a delay such as 30m, 2h30m or 1d"

	// MsgSuggestOneTimingMode explains the scheduling modes.
	MsgSuggestOneTimingMode = "Provide exactly one of: datetime, time+timezone (optionally date), or delay"

	// MsgSuggestListSchedules helps recover from unknown schedule ids.
	MsgSuggestListSchedules = "Call list_scheduled_notifications to see existing schedule ids"
)
