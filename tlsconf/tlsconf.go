// Package tlsconf turns SSL properties into ready *tls.Config values. A
// connection either references a named bundle registered by the application
// or supplies explicit certificate files; setting both fails construction.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	wireuperrors "github.com/drblury/wireup/internal/errors"
	"github.com/drblury/wireup/properties"
)

// Registry holds named TLS bundles. Applications register bundles before
// wiring runs; builds then resolve them by name.
type Registry struct {
	mu      sync.RWMutex
	bundles map[string]*tls.Config
}

// NewRegistry creates an empty bundle registry.
func NewRegistry() *Registry {
	return &Registry{bundles: make(map[string]*tls.Config)}
}

// Register stores a bundle under the given name, replacing any previous one.
func (r *Registry) Register(name string, conf *tls.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bundles[name] = conf
}

// Lookup returns the bundle registered under name.
func (r *Registry) Lookup(name string) (*tls.Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conf, ok := r.bundles[name]
	return conf, ok
}

// Names returns the registered bundle names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.bundles))
	for name := range r.bundles {
		names = append(names, name)
	}
	return names
}

// Build resolves the SSL properties into a *tls.Config. It returns nil when
// TLS is disabled. The prefix is the dotted key path of the holder, used in
// error messages. A nil registry is treated as empty.
func Build(props *properties.SSL, registry *Registry, prefix string) (*tls.Config, error) {
	if props == nil || !props.Enabled {
		return nil, nil
	}

	if err := props.Validate(prefix); err != nil {
		return nil, err
	}

	if props.Bundle != "" {
		if registry == nil {
			return nil, fmt.Errorf("%w: %q (%s.bundle)", wireuperrors.ErrBundleMissing, props.Bundle, prefix)
		}
		conf, ok := registry.Lookup(props.Bundle)
		if !ok {
			return nil, fmt.Errorf("%w: %q (%s.bundle, registered: %v)", wireuperrors.ErrBundleMissing, props.Bundle, prefix, registry.Names())
		}
		return conf.Clone(), nil
	}

	conf := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: props.InsecureSkipVerify,
	}

	if props.CertFile != "" {
		cert, err := tls.LoadX509KeyPair(props.CertFile, props.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("wireup: loading key pair from %s.cert-file %q: %w", prefix, props.CertFile, err)
		}
		conf.Certificates = []tls.Certificate{cert}
	}

	if props.CAFile != "" {
		pem, err := os.ReadFile(props.CAFile)
		if err != nil {
			return nil, fmt.Errorf("wireup: reading %s.ca-file %q: %w", prefix, props.CAFile, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("wireup: no certificates parsed from %s.ca-file %q", prefix, props.CAFile)
		}
		conf.RootCAs = pool
	}

	return conf, nil
}
