// Package web registers static resource mounts from the web properties onto
// a chi router. It only builds the handler; serving it is the caller's job.
package web

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/drblury/wireup/internal/logging"
	"github.com/drblury/wireup/properties"
)

// DefaultIndexFile is served for directory requests when no index file is
// configured.
const DefaultIndexFile = "index.html"

// NewResourceHandler builds an http.Handler serving every configured
// resource mount. Each mount maps a URL path prefix onto a directory with a
// Cache-Control max-age derived from the configured cache period.
func NewResourceHandler(props properties.Web, log logging.WiringLogger) (http.Handler, error) {
	if err := props.Validate(); err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	for _, res := range props.Resources {
		dir, err := filepath.Abs(res.Dir)
		if err != nil {
			return nil, fmt.Errorf("wireup: resolving web resource dir %q: %w", res.Dir, err)
		}
		if info, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("wireup: web resource dir %q: %w", res.Dir, err)
		} else if !info.IsDir() {
			return nil, fmt.Errorf("wireup: web resource dir %q is not a directory", res.Dir)
		}

		mount := res
		mount.Dir = dir
		if mount.IndexFile == "" {
			mount.IndexFile = DefaultIndexFile
		}

		router.Mount(mount.PathPrefix, resourceHandler(mount))

		log.Info("Registered web resources", logging.LogFields{
			"prefix":       mount.PathPrefix,
			"dir":          dir,
			"cache_period": mount.CachePeriod.String(),
		})
	}

	return router, nil
}

func resourceHandler(res properties.Resource) http.Handler {
	fileServer := http.FileServer(http.Dir(res.Dir))

	prefix := strings.TrimSuffix(res.PathPrefix, "/")
	if prefix != "" {
		fileServer = http.StripPrefix(prefix, fileServer)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if res.CachePeriod > 0 {
			w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int64(res.CachePeriod.Seconds())))
		}

		// http.FileServer already resolves index.html; only rewrite
		// directory requests for a custom index file.
		if res.IndexFile != DefaultIndexFile && (strings.HasSuffix(r.URL.Path, "/") || r.URL.Path == prefix) {
			r.URL.Path = strings.TrimSuffix(r.URL.Path, "/") + "/" + res.IndexFile
		}

		fileServer.ServeHTTP(w, r)
	})
}
