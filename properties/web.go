package properties

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Web configures static web resource serving.
type Web struct {
	Enabled bool `mapstructure:"enabled"`
	// Resources maps URL path prefixes onto resource mounts.
	Resources []Resource `mapstructure:"resources"`
}

// Resource maps a URL path prefix onto a filesystem directory.
type Resource struct {
	// PathPrefix is the URL prefix, e.g. "/static".
	PathPrefix string `mapstructure:"path-prefix"`
	// Dir is the directory served under the prefix.
	Dir string `mapstructure:"dir"`
	// CachePeriod sets the Cache-Control max-age for served files.
	// Zero disables the header.
	CachePeriod time.Duration `mapstructure:"cache-period"`
	// IndexFile is served for directory requests. Defaults to "index.html".
	IndexFile string `mapstructure:"index-file"`
}

// Validate checks every configured resource mount.
func (w *Web) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(w.Resources))
	for i, res := range w.Resources {
		prefix := fmt.Sprintf("web.resources[%d]", i)
		if res.PathPrefix == "" || !strings.HasPrefix(res.PathPrefix, "/") {
			errs = append(errs, fmt.Errorf("%s.path-prefix: must start with \"/\", got %q", prefix, res.PathPrefix))
		}
		if res.Dir == "" {
			errs = append(errs, fmt.Errorf("%s.dir: required", prefix))
		}
		if res.CachePeriod < 0 {
			errs = append(errs, fmt.Errorf("%s.cache-period: cannot be negative", prefix))
		}
		if _, dup := seen[res.PathPrefix]; dup {
			errs = append(errs, fmt.Errorf("%s.path-prefix: duplicate prefix %q", prefix, res.PathPrefix))
		}
		seen[res.PathPrefix] = struct{}{}
	}
	return errors.Join(errs...)
}
