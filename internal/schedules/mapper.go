package schedules

import (
	"net/url"
	"strings"

	"github.com/aatumaykin/cronty/internal/cron"
)

// DefaultHost is the public ntfy server.
const DefaultHost = "ntfy.sh"

// Mapper turns backend records into notification schedules.
type Mapper struct {
	host string
	// base is the path the server is mounted under, trimmed of slashes.
	base string
}

// NewMapper creates a mapper that recognises destinations on host.
// Host may be given as a bare hostname or as a base URL; a base URL path
// such as https://push.example.org/ntfy is expected before the topic.
func NewMapper(host string) *Mapper {
	host = strings.TrimSpace(host)
	if host == "" {
		return &Mapper{host: DefaultHost}
	}

	m := &Mapper{host: host}
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		m.host = u.Hostname()
		m.base = strings.Trim(u.Path, "/")
	}
	m.host = strings.ToLower(m.host)
	return m
}

// Host returns the notification host the mapper matches against.
func (m *Mapper) Host() string {
	return m.host
}

// Map converts records in backend order. Records whose destination is not
// a topic on the notification host are skipped, as are records for other
// topics when topic is non-empty. An empty result is valid.
func (m *Mapper) Map(records []Record, topic string) []Schedule {
	out := make([]Schedule, 0, len(records))

	for _, rec := range records {
		recTopic, ok := m.Topic(rec.Destination)
		if !ok {
			continue
		}
		if topic != "" && recTopic != topic {
			continue
		}

		expr, tz := cron.Decode(rec.Cron)
		out = append(out, Schedule{
			ScheduleID:        rec.ScheduleID,
			CronExpression:    expr,
			Timezone:          tz,
			NotificationTopic: recTopic,
			Label:             rec.Label,
			Paused:            rec.Paused,
			NextOccurrence:    FormatTimestamp(rec.NextScheduleTime),
			LastOccurrence:    FormatTimestamp(rec.LastScheduleTime),
			NotificationBody:  rec.Body,
		})
	}

	return out
}

// Topic extracts the topic from a destination URL such as
// https://ntfy.sh/my-topic. It reports false for foreign hosts, for paths
// outside the base path and for destinations without scheme, host or topic.
func (m *Mapper) Topic(destination string) (string, bool) {
	u, err := url.Parse(destination)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	if !strings.EqualFold(u.Hostname(), m.host) {
		return "", false
	}

	path := strings.TrimPrefix(u.Path, "/")
	if m.base != "" {
		rest, ok := strings.CutPrefix(path, m.base+"/")
		if !ok {
			return "", false
		}
		path = rest
	}

	topic, _, _ := strings.Cut(path, "/")
	if topic == "" {
		return "", false
	}
	return topic, true
}
