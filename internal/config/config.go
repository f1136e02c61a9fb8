// Package config loads application configuration from a YAML file, overlaid
// on built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Observer is the default ground location used by the tracker, the server
// stream, and any CLI invocation that does not override it.
type Observer struct {
	Latitude  float64 `yaml:"latitude"`  // degrees, north positive
	Longitude float64 `yaml:"longitude"` // degrees, east positive
	Elevation float64 `yaml:"elevation"` // meters above sea level
	Timezone  float64 `yaml:"timezone"`  // hours offset from UT
}

// Atmosphere holds the optional physical inputs. Zero values are passed to
// the boundary adapter as-is, where the documented defaults are substituted.
type Atmosphere struct {
	Pressure    float64 `yaml:"pressure"`    // millibars
	Temperature float64 `yaml:"temperature"` // degrees Celsius
	Refraction  float64 `yaml:"refraction"`  // degrees at sunrise/sunset
}

// Surface holds the orientation of the receiving surface for incidence
// angle calculations.
type Surface struct {
	Slope       float64 `yaml:"slope"`        // degrees from horizontal
	AzmRotation float64 `yaml:"azm_rotation"` // degrees from south
}

// Server configures the HTTP/WebSocket surface.
type Server struct {
	Listen string `yaml:"listen"` // address for the HTTP server
}

// Duration wraps time.Duration so it can be written as "5s" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dur, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(dur)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the root configuration.
type Config struct {
	Observer   Observer   `yaml:"observer"`
	Atmosphere Atmosphere `yaml:"atmosphere"`
	Surface    Surface    `yaml:"surface"`
	Server     Server     `yaml:"server"`
	Refresh    Duration   `yaml:"refresh"` // tracker/stream recompute interval
}

// Default returns a complete configuration with sensible values.
func Default() Config {
	return Config{
		Server:  Server{Listen: ":8080"},
		Refresh: Duration(time.Second),
	}
}

// Load reads a YAML file and overlays it on the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Refresh <= 0 {
		cfg.Refresh = Duration(time.Second)
	}
	return cfg, nil
}
