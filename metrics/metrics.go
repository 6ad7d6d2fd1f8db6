// Package metrics exposes wiring observability through Prometheus. The
// handler and collectors are only constructed when metrics are enabled.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Observer tracks wiring outcomes.
type Observer struct {
	registry *prometheus.Registry

	wiredComponents prometheus.Gauge
	configurerRuns  *prometheus.CounterVec
}

// NewObserver creates a Prometheus registry with the wiring collectors plus
// the standard Go runtime collectors.
func NewObserver() *Observer {
	registry := prometheus.NewRegistry()

	o := &Observer{
		registry: registry,
		wiredComponents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wireup",
			Name:      "wired_components",
			Help:      "Number of components currently held by the container.",
		}),
		configurerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wireup",
			Name:      "configurer_runs_total",
			Help:      "Configurer executions partitioned by outcome.",
		}, []string{"configurer", "outcome"}),
	}

	registry.MustRegister(
		o.wiredComponents,
		o.configurerRuns,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return o
}

// SetWiredComponents records the current container size.
func (o *Observer) SetWiredComponents(n int) {
	o.wiredComponents.Set(float64(n))
}

// ConfigurerRun records one configurer execution. Outcome is one of
// "wired", "skipped", "provided", or "failed".
func (o *Observer) ConfigurerRun(configurer, outcome string) {
	o.configurerRuns.WithLabelValues(configurer, outcome).Inc()
}

// Handler returns the HTTP handler serving the registry.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for additional collectors.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}
