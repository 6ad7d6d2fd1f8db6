package wiring

import (
	"context"
	"fmt"

	"github.com/drblury/wireup/internal/logging"
	"github.com/drblury/wireup/metrics"
	"github.com/drblury/wireup/properties"
	"github.com/drblury/wireup/scheduler"
	"github.com/drblury/wireup/tlsconf"
	"github.com/drblury/wireup/transport"

	wireuperrors "github.com/drblury/wireup/internal/errors"
)

// Wiring carries everything a configurer may need: the bound properties, the
// target container, and the application-supplied collaborators.
type Wiring struct {
	Props     *properties.Properties
	Container *Container
	Log       logging.WiringLogger

	// Bundles resolves named TLS bundles. Optional.
	Bundles *tlsconf.Registry
	// Tasks maps batch job names to their implementations. Required when
	// batch jobs are configured.
	Tasks map[string]scheduler.Task
	// Transports overrides the transport registry. Nil means the default
	// registry with all compiled-in backends.
	Transports *transport.Registry
	// Observer records wiring metrics. Populated by the metrics configurer
	// when metrics are enabled; may be set up front instead.
	Observer *metrics.Observer
}

// Configurer wires one component when its condition holds.
type Configurer struct {
	// Name identifies the configurer in logs and metrics.
	Name string
	// Provides is the container name of the produced component.
	Provides string
	// Enabled decides from the properties whether the component applies.
	Enabled func(p *properties.Properties) bool
	// Wire constructs the component. Only called when Enabled returned true
	// and the container does not hold Provides yet.
	Wire func(ctx context.Context, w *Wiring) (any, error)
}

// Apply runs the configurers in order. A configurer is skipped when its
// condition is false or when the application already provided the component;
// the first construction failure aborts wiring.
func Apply(ctx context.Context, w *Wiring, configurers []Configurer) error {
	if w == nil || w.Props == nil {
		return wireuperrors.ErrPropertiesRequired
	}
	if w.Container == nil {
		return wireuperrors.ErrContainerRequired
	}
	if w.Log == nil {
		return wireuperrors.ErrLoggerRequired
	}

	for _, c := range configurers {
		log := w.Log.With(logging.LogFields{"configurer": c.Name, "component": c.Provides})

		if w.Container.Has(c.Provides) {
			w.observe(c.Name, "provided")
			log.Debug("Component already provided, skipping", nil)
			continue
		}

		if c.Enabled != nil && !c.Enabled(w.Props) {
			w.observe(c.Name, "skipped")
			log.Debug("Component disabled, skipping", nil)
			continue
		}

		component, err := c.Wire(ctx, w)
		if err != nil {
			w.observe(c.Name, "failed")
			return fmt.Errorf("wireup: wiring %q: %w", c.Provides, err)
		}

		if err := w.Container.Provide(c.Provides, component); err != nil {
			w.observe(c.Name, "failed")
			return err
		}

		w.observe(c.Name, "wired")
		log.Info("Wired component", nil)
	}

	if w.Observer != nil {
		w.Observer.SetWiredComponents(w.Container.Len())
	}

	return nil
}

func (w *Wiring) observe(configurer, outcome string) {
	if w.Observer != nil {
		w.Observer.ConfigurerRun(configurer, outcome)
	}
}
