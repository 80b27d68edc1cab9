package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dashboard"

// Collector owns a private Prometheus registry with the dashboard layout metrics.
// It satisfies layout.Recorder.
type Collector struct {
	registry *prometheus.Registry

	LayoutLoads    *prometheus.CounterVec
	LayoutPersists *prometheus.CounterVec
	LookupMisses   prometheus.Counter
	Sessions       prometheus.Gauge
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		LayoutLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_load_total",
			Help:      "Layout preference loads by result",
		}, []string{"result"}),
		LayoutPersists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_persist_total",
			Help:      "Layout preference writes by result",
		}, []string{"result"}),
		LookupMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_lookup_miss_total",
			Help:      "Mutations addressed to widgets missing from the active layout",
		}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layout_sessions",
			Help:      "Active in-memory layout sessions",
		}),
	}
	reg.MustRegister(c.LayoutLoads, c.LayoutPersists, c.LookupMisses, c.Sessions)
	return c
}

func (c *Collector) ObserveLoad(result string)    { c.LayoutLoads.WithLabelValues(result).Inc() }
func (c *Collector) ObservePersist(result string) { c.LayoutPersists.WithLabelValues(result).Inc() }
func (c *Collector) ObserveLookupMiss()           { c.LookupMisses.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
