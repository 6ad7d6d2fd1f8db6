package properties

import (
	"fmt"
	"strings"
)

// SSL configures transport security. A connection either references a named
// bundle registered by the application or supplies explicit certificate
// material; setting both is a configuration error.
type SSL struct {
	Enabled bool `mapstructure:"enabled"`

	// Bundle names a pre-registered TLS bundle.
	Bundle string `mapstructure:"bundle"`

	// Explicit certificate material. Mutually exclusive with Bundle.
	CertFile string `mapstructure:"cert-file"`
	KeyFile  string `mapstructure:"key-file"`
	CAFile   string `mapstructure:"ca-file"`

	// InsecureSkipVerify disables server certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure-skip-verify"`
}

// HasExplicitMaterial reports whether any of the path-based options are set.
func (s *SSL) HasExplicitMaterial() bool {
	return s.CertFile != "" || s.KeyFile != "" || s.CAFile != ""
}

// Validate enforces the bundle/explicit-material exclusivity. The prefix is
// the dotted key path of this holder, used to name the conflicting keys.
func (s *SSL) Validate(prefix string) error {
	if s.Bundle != "" && s.HasExplicitMaterial() {
		return &MutuallyExclusiveError{Keys: []string{
			prefix + ".bundle",
			prefix + ".cert-file",
		}}
	}
	if s.CertFile != "" && s.KeyFile == "" {
		return fmt.Errorf("%s.key-file: required when %s.cert-file is set", prefix, prefix)
	}
	if s.KeyFile != "" && s.CertFile == "" {
		return fmt.Errorf("%s.cert-file: required when %s.key-file is set", prefix, prefix)
	}
	return nil
}

// MutuallyExclusiveError reports two or more configuration keys that cannot
// be set together.
type MutuallyExclusiveError struct {
	Keys []string
}

func (e *MutuallyExclusiveError) Error() string {
	return fmt.Sprintf("wireup: mutually exclusive configuration keys set: %s", strings.Join(e.Keys, ", "))
}
