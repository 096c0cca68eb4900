// Package resources holds the static reference data served to agents:
// cron expression examples and common IANA timezones.
package resources

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/cronty/internal/constants"
	"github.com/aatumaykin/cronty/internal/cron"
)

// MIMEType is the content type of every resource body.
const MIMEType = "application/json"

//go:embed data/cron_examples.yaml
var cronExamplesYAML []byte

//go:embed data/timezones.yaml
var timezonesYAML []byte

// CronExample is one documented cron expression.
type CronExample struct {
	Expression  string `yaml:"expression" json:"expression"`
	Description string `yaml:"description" json:"description"`
}

// CronExamples is the body of cron://examples.
type CronExamples struct {
	Examples   []CronExample `yaml:"examples" json:"examples"`
	FormatHelp string        `yaml:"format_help" json:"format_help"`
}

// Timezone is an IANA zone with its region.
type Timezone struct {
	Zone   string `yaml:"zone" json:"zone"`
	Region string `yaml:"region" json:"region"`
}

// Timezones is the body of timezones://valid.
type Timezones struct {
	Timezones []Timezone `yaml:"timezones" json:"timezones"`
	Count     int        `yaml:"-" json:"count"`
}

// Resource is a static document addressed by URI.
type Resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	// Read returns the JSON body.
	Read func() (string, error)
}

var (
	loadOnce sync.Once
	loaded   struct {
		cron      CronExamples
		timezones Timezones
		err       error
	}
)

func load() error {
	loadOnce.Do(func() {
		loaded.cron, loaded.err = parseCronExamples(cronExamplesYAML)
		if loaded.err != nil {
			return
		}
		loaded.timezones, loaded.err = parseTimezones(timezonesYAML)
	})
	return loaded.err
}

// parseCronExamples decodes the dataset and checks that every expression has
// five fields and parses with the standard cron parser.
func parseCronExamples(data []byte) (CronExamples, error) {
	var out CronExamples
	if err := yaml.Unmarshal(data, &out); err != nil {
		return CronExamples{}, fmt.Errorf("failed to parse cron examples: %w", err)
	}
	if len(out.Examples) == 0 {
		return CronExamples{}, fmt.Errorf("cron examples dataset is empty")
	}
	for _, ex := range out.Examples {
		if err := cron.ValidateExpression(ex.Expression); err != nil {
			return CronExamples{}, err
		}
		if !cron.Parseable(ex.Expression) {
			return CronExamples{}, fmt.Errorf("cron example %q does not parse", ex.Expression)
		}
	}
	return out, nil
}

// parseTimezones decodes the dataset and checks that every zone loads.
func parseTimezones(data []byte) (Timezones, error) {
	var out Timezones
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Timezones{}, fmt.Errorf("failed to parse timezones: %w", err)
	}
	for _, tz := range out.Timezones {
		if _, err := time.LoadLocation(tz.Zone); err != nil {
			return Timezones{}, fmt.Errorf("timezone %q: %w", tz.Zone, err)
		}
	}
	out.Count = len(out.Timezones)
	return out, nil
}

// GetCronExamples returns the cron examples document.
func GetCronExamples() (CronExamples, error) {
	if err := load(); err != nil {
		return CronExamples{}, err
	}
	return loaded.cron, nil
}

// GetTimezones returns the timezone list document.
func GetTimezones() (Timezones, error) {
	if err := load(); err != nil {
		return Timezones{}, err
	}
	return loaded.timezones, nil
}

func readJSON[T any](get func() (T, error)) func() (string, error) {
	return func() (string, error) {
		v, err := get()
		if err != nil {
			return "", err
		}
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal resource: %w", err)
		}
		return string(data), nil
	}
}

// All returns the served resources.
func All() []Resource {
	return []Resource{
		{
			URI:         constants.ResourceCronExamples,
			Name:        "Cron examples",
			Description: "Common cron expression examples with descriptions",
			MIMEType:    MIMEType,
			Read:        readJSON(GetCronExamples),
		},
		{
			URI:         constants.ResourceTimezones,
			Name:        "Valid timezones",
			Description: "Common IANA timezones grouped by region",
			MIMEType:    MIMEType,
			Read:        readJSON(GetTimezones),
		},
	}
}
