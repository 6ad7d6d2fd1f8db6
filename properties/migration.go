package properties

import (
	"errors"
	"time"
)

// Migration configures the database schema migration runner.
type Migration struct {
	Enabled bool `mapstructure:"enabled"`
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `mapstructure:"database-url"`
	// Locations are directories scanned for migration scripts.
	Locations []string `mapstructure:"locations"`
	// Table is the schema-history table name. Defaults to "schema_history".
	Table string `mapstructure:"table"`
	// BaselineVersion skips scripts at or below this version.
	BaselineVersion string        `mapstructure:"baseline-version"`
	ConnectTimeout  time.Duration `mapstructure:"connect-timeout"`
}

// Validate checks the migration settings when enabled.
func (m *Migration) Validate() error {
	if !m.Enabled {
		return nil
	}
	var errs []error
	if m.DatabaseURL == "" {
		errs = append(errs, errors.New("migration.database-url: required when migration is enabled"))
	}
	if len(m.Locations) == 0 {
		errs = append(errs, errors.New("migration.locations: at least one location is required"))
	}
	if m.ConnectTimeout < 0 {
		errs = append(errs, errors.New("migration.connect-timeout: cannot be negative"))
	}
	return errors.Join(errs...)
}
