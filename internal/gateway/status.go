package gateway

import (
	"strings"
	"time"
)

// TimeResult is the current UTC time in agent-friendly pieces.
type TimeResult struct {
	UTC      string `json:"utc"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
}

// CurrentTime reports the service clock in UTC.
func (s *Service) CurrentTime() TimeResult {
	now := s.now().UTC()
	return TimeResult{
		UTC:      now.Format(time.RFC3339Nano),
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04"),
		Timezone: "UTC",
	}
}

// HealthResult is returned when every required setting is present.
type HealthResult struct {
	Status         string `json:"status"`
	CurrentTimeUTC string `json:"current_time_utc"`
	CurrentTimeMS  int64  `json:"current_time_ms"`
}

// Health checks configuration. It does not contact the backends.
func (s *Service) Health() (*HealthResult, error) {
	if len(s.cfg.MissingSettings) > 0 {
		return nil, &Error{
			Code:    CodeValidation,
			Message: "Missing or empty environment variables: " + strings.Join(s.cfg.MissingSettings, ", "),
		}
	}

	now := s.now().UTC()
	return &HealthResult{
		Status:         "healthy",
		CurrentTimeUTC: now.Format(time.RFC3339Nano),
		CurrentTimeMS:  now.UnixMilli(),
	}, nil
}
