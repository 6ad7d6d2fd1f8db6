// Package wireup wires external integrations from configuration. It binds
// dotted configuration keys onto typed property holders, validates them,
// maps the values onto client builders, and conditionally constructs the
// configured components: a messaging transport, static web resources, batch
// job scheduling, schema migrations, and a metrics endpoint.
//
// The usual flow is load, wire, use:
//
//	props, err := wireup.Load("wireup.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	w := &wireup.Wiring{
//		Props:     props,
//		Container: wireup.NewContainer(),
//		Log:       wireup.NewSlogLogger(slog.Default()),
//	}
//	if err := wireup.Apply(ctx, w, wireup.DefaultConfigurers()); err != nil {
//		log.Fatal(err)
//	}
//
// Components the application provides up front under the same container name
// win over the defaults; the matching configurer backs off. All wiring
// failures are fatal and reported with the offending configuration keys.
package wireup
