// Package metric provides Prometheus metrics for SnipSync.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace is the metric namespace for all SnipSync metrics.
const Namespace = "snipsync"

// Push result label values.
const (
	PushResultOK       = "ok"
	PushResultFailed   = "failed"
	PushResultDeferred = "deferred"
)

// Cache population source label values.
const (
	CacheSourceRemote = "remote"
	CacheSourceLocal  = "local"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Engine metrics
	SavesTotal    prometheus.Counter
	RestoresTotal prometheus.Counter
	DeletesTotal  prometheus.Counter
	ImportsTotal  prometheus.Counter
	SnippetsTotal prometheus.Gauge

	// Cache metrics
	CacheHits  prometheus.Counter
	CacheLoads *prometheus.CounterVec

	// Remote push metrics
	RemotePushes *prometheus.CounterVec

	// Change capture metrics
	DebounceFlushes prometheus.Counter
	RegionsWatched  prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		SavesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "saves_total",
			Help:      "Total snippet save operations",
		}),
		RestoresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "restores_total",
			Help:      "Total snippet version restore operations",
		}),
		DeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "deletes_total",
			Help:      "Total snippet delete operations",
		}),
		ImportsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "imports_total",
			Help:      "Total collection import-merge operations",
		}),
		SnippetsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "engine",
			Name:      "snippets",
			Help:      "Number of snippets in the cached collection",
		}),

		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Reads served from the populated in-memory cache",
		}),
		CacheLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "loads_total",
			Help:      "Cache populations by backing source",
		}, []string{"source"}),

		RemotePushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "remote",
			Name:      "pushes_total",
			Help:      "Remote push requests by result",
		}, []string{"result"}),

		DebounceFlushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "capture",
			Name:      "debounce_flushes_total",
			Help:      "Debounced region saves issued by change capture",
		}),
		RegionsWatched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "capture",
			Name:      "regions_watched",
			Help:      "Content regions currently watched",
		}),
	}

	r.registry.MustRegister(
		r.SavesTotal,
		r.RestoresTotal,
		r.DeletesTotal,
		r.ImportsTotal,
		r.SnippetsTotal,
		r.CacheHits,
		r.CacheLoads,
		r.RemotePushes,
		r.DebounceFlushes,
		r.RegionsWatched,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Prometheus returns the underlying registry for components that
// register their own metrics (e.g., the storage engine).
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
