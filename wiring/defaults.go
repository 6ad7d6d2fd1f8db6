package wiring

import (
	"context"
	"crypto/tls"

	"github.com/drblury/wireup/internal/logging"
	"github.com/drblury/wireup/metrics"
	"github.com/drblury/wireup/migrate"
	"github.com/drblury/wireup/properties"
	"github.com/drblury/wireup/scheduler"
	"github.com/drblury/wireup/tlsconf"
	"github.com/drblury/wireup/transport"
	"github.com/drblury/wireup/web"
)

// Container names of the components produced by the default configurers.
const (
	ComponentMetricsHandler  = "metrics.handler"
	ComponentTLSConfig       = "tls.config"
	ComponentTransport       = "messaging.transport"
	ComponentWebResources    = "web.resources"
	ComponentBatchScheduler  = "batch.scheduler"
	ComponentMigrationRunner = "migration.runner"
)

// Defaults returns the built-in configurers in wiring order. Metrics come
// first so later configurers are recorded; the TLS config comes before the
// transport that consumes it.
func Defaults() []Configurer {
	return []Configurer{
		{
			Name:     "metrics",
			Provides: ComponentMetricsHandler,
			Enabled:  func(p *properties.Properties) bool { return p.Metrics.Enabled },
			Wire: func(_ context.Context, w *Wiring) (any, error) {
				if w.Observer == nil {
					w.Observer = metrics.NewObserver()
				}
				return w.Observer.Handler(), nil
			},
		},
		{
			Name:     "tls",
			Provides: ComponentTLSConfig,
			Enabled:  func(p *properties.Properties) bool { return p.Messaging.TLS.Enabled },
			Wire: func(_ context.Context, w *Wiring) (any, error) {
				return tlsconf.Build(&w.Props.Messaging.TLS, w.Bundles, "messaging.tls")
			},
		},
		{
			Name:     "transport",
			Provides: ComponentTransport,
			Enabled:  func(p *properties.Properties) bool { return p.Messaging.System != "" },
			Wire: func(ctx context.Context, w *Wiring) (any, error) {
				var tlsConfig *tls.Config
				if raw, ok := w.Container.Lookup(ComponentTLSConfig); ok {
					tlsConfig, _ = raw.(*tls.Config)
				}

				registry := w.Transports
				if registry == nil {
					registry = transport.DefaultRegistry
				}

				return registry.Build(ctx, &w.Props.Messaging, tlsConfig, logging.NewWatermillAdapter(w.Log))
			},
		},
		{
			Name:     "web-resources",
			Provides: ComponentWebResources,
			Enabled:  func(p *properties.Properties) bool { return p.Web.Enabled },
			Wire: func(_ context.Context, w *Wiring) (any, error) {
				return web.NewResourceHandler(w.Props.Web, w.Log)
			},
		},
		{
			Name:     "scheduler",
			Provides: ComponentBatchScheduler,
			Enabled:  func(p *properties.Properties) bool { return p.Batch.Enabled },
			Wire: func(_ context.Context, w *Wiring) (any, error) {
				return scheduler.New(w.Props.Batch, w.Tasks, w.Log)
			},
		},
		{
			Name:     "migration",
			Provides: ComponentMigrationRunner,
			Enabled:  func(p *properties.Properties) bool { return p.Migration.Enabled },
			Wire: func(_ context.Context, w *Wiring) (any, error) {
				scanner, err := migrate.NewOSScanner(w.Props.Migration.Locations)
				if err != nil {
					return nil, err
				}
				return migrate.NewRunner(w.Props.Migration, scanner, w.Log), nil
			},
		},
	}
}
