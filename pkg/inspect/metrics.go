package inspect

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
)

// Metrics exposes generation statistics in the Prometheus text format.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal   *prometheus.CounterVec
	runDuration prometheus.Histogram
	routes      *prometheus.GaugeVec
	warnings    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "typedroutes",
			Name:      "generation_runs_total",
			Help:      "Total number of generation runs by outcome",
		}, []string{"result"}),

		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "typedroutes",
			Name:      "generation_duration_seconds",
			Help:      "Generation run duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),

		routes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "typedroutes",
			Name:      "routes",
			Help:      "Number of routes in the last successful run by kind",
		}, []string{"kind"}),

		warnings: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "typedroutes",
			Name:      "scan_warnings",
			Help:      "Number of scan warnings in the last successful run",
		}),

		lastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "typedroutes",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful generation run",
		}),
	}
}

// Observe records one generation run.
func (m *Metrics) Observe(res *generator.Result, err error) {
	switch {
	case err != nil:
		m.runsTotal.WithLabelValues("error").Inc()
		return
	case res.Degraded != nil:
		m.runsTotal.WithLabelValues("degraded").Inc()
	default:
		m.runsTotal.WithLabelValues("ok").Inc()
	}

	m.runDuration.Observe(res.Duration.Seconds())
	m.routes.WithLabelValues("static").Set(float64(len(res.Classification.Static)))
	m.routes.WithLabelValues("dynamic").Set(float64(len(res.Classification.Dynamic)))
	m.warnings.Set(float64(len(res.Warnings)))
	m.lastSuccess.SetToCurrentTime()
}

// Handler serves the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
