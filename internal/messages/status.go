package messages

import (
	"fmt"
	"strings"

	"github.com/aatumaykin/cronty/internal/config"
	"github.com/aatumaykin/cronty/internal/constants"
)

// FormatConfigSummary renders the effective configuration with secrets
// masked.
func FormatConfigSummary(cfg *config.Config) string {
	redacted := cfg.Redacted()
	builder := &strings.Builder{}

	builder.WriteString(constants.MsgSummaryHeader)
	builder.WriteString(fmt.Sprintf(constants.MsgSummaryTransport, redacted.Server.Transport))

	if redacted.Server.Transport == config.TransportHTTP {
		builder.WriteString(fmt.Sprintf(constants.MsgSummaryEndpoint, redacted.Server.Addr, redacted.Server.Path))
	}

	authState := "disabled"
	if cfg.AuthEnabled() {
		authState = "enabled (secret " + redacted.Auth.JWTSecret + ")"
	} else if redacted.Server.Transport == config.TransportStdio {
		authState = "not used on stdio"
	}
	builder.WriteString(fmt.Sprintf(constants.MsgSummaryAuth, authState))

	builder.WriteString(fmt.Sprintf(constants.MsgSummaryQStash, redacted.QStash.URL, orUnset(redacted.QStash.Token)))
	builder.WriteString(fmt.Sprintf(constants.MsgSummaryNtfy, redacted.Ntfy.URL))
	builder.WriteString(fmt.Sprintf(constants.MsgSummaryTopic, orUnset(redacted.Ntfy.Topic)))

	metricsState := "disabled"
	if redacted.Metrics.Enabled {
		metricsState = redacted.Metrics.Path
	}
	builder.WriteString(fmt.Sprintf(constants.MsgSummaryMetrics, metricsState))

	return builder.String()
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
