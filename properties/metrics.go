package properties

import (
	"errors"
	"fmt"
	"strings"
)

// Metrics configures the Prometheus metrics endpoint.
type Metrics struct {
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path the handler is mounted on. Defaults to "/metrics".
	Path string `mapstructure:"path"`
	// Port is the port where metrics will be exposed.
	Port int `mapstructure:"port"`
}

// Validate checks the metrics endpoint settings.
func (m *Metrics) Validate() error {
	var errs []error
	if m.Port < 0 || m.Port > 65535 {
		errs = append(errs, fmt.Errorf("metrics.port: invalid port %d", m.Port))
	}
	if m.Path != "" && !strings.HasPrefix(m.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path: must start with \"/\", got %q", m.Path))
	}
	return errors.Join(errs...)
}
