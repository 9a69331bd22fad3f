// Package metrics exposes Prometheus collectors for a weft runtime.
//
// A Collector satisfies scheduler.Recorder:
//
//	reg := prometheus.NewRegistry()
//	rt := scheduler.New(scheduler.WithMetrics(metrics.New(metrics.WithRegistry(reg))))
//
// Metrics collected:
//   - weft_builds_total: builds by phase (mount, update) and status
//   - weft_build_duration_seconds: build+commit duration by phase
//   - weft_patch_ops_total: output mutations by kind
//   - weft_disposed_instances_total: hook instances that left the tree
//   - weft_flushes_total: update flushes
//   - weft_update_requests_total: state-driven update requests
//   - weft_coalesced_updates_total: requests absorbed by a shared rebuild
//   - weft_effect_runs_total: effect phases by status
//   - weft_mounted_roots: currently mounted containers
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/weft/pkg/reconcile"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "weft").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for build duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "weft",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector records runtime activity.
type Collector struct {
	builds        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	patchOps      *prometheus.CounterVec
	disposed      prometheus.Counter
	flushes       prometheus.Counter
	requests      prometheus.Counter
	coalesced     prometheus.Counter
	effects       *prometheus.CounterVec
	roots         prometheus.Gauge
}

// New registers the collectors and returns them. Registering twice against
// the same registry panics, as with promauto.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "builds_total",
			Help:        "Total number of render tree builds",
			ConstLabels: config.ConstLabels,
		}, []string{"phase", "status"}),

		buildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "build_duration_seconds",
			Help:        "Build and commit duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"phase"}),

		patchOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_ops_total",
			Help:        "Total number of output tree mutations",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		disposed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "disposed_instances_total",
			Help:        "Total number of hook instances removed from the tree",
			ConstLabels: config.ConstLabels,
		}),

		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of update flushes",
			ConstLabels: config.ConstLabels,
		}),

		requests: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "update_requests_total",
			Help:        "Total number of update requests from state setters",
			ConstLabels: config.ConstLabels,
		}),

		coalesced: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "coalesced_updates_total",
			Help:        "Update requests that shared a rebuild with another request",
			ConstLabels: config.ConstLabels,
		}),

		effects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of per-instance effect phases",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		roots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounted_roots",
			Help:        "Number of mounted containers",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Build records one build of phase ("mount" or "update").
func (c *Collector) Build(phase string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.builds.WithLabelValues(phase, status).Inc()
	c.buildDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// Commit records the mutations of one Sync or Teardown.
func (c *Collector) Commit(s reconcile.Stats) {
	add := func(op string, n int) {
		if n > 0 {
			c.patchOps.WithLabelValues(op).Add(float64(n))
		}
	}
	add("create", s.Created)
	add("remove", s.Removed)
	add("replace", s.Replaced)
	add("text", s.TextUpdates)
	add("prop", s.PropOps)
	if n := len(s.Disposed); n > 0 {
		c.disposed.Add(float64(n))
	}
}

// Flush records a flush that served requests update requests with
// rebuilds container rebuilds.
func (c *Collector) Flush(requests, rebuilds int) {
	c.flushes.Inc()
	c.requests.Add(float64(requests))
	if requests > rebuilds {
		c.coalesced.Add(float64(requests - rebuilds))
	}
}

// Effects records one instance's effect phase.
func (c *Collector) Effects(err error) {
	if err != nil {
		c.effects.WithLabelValues("error").Inc()
		return
	}
	c.effects.WithLabelValues("ok").Inc()
}

// Roots sets the number of mounted containers.
func (c *Collector) Roots(n int) {
	c.roots.Set(float64(n))
}
