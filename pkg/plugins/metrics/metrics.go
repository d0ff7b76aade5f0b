// Package metrics exposes engine lifecycle activity as Prometheus metrics.
//
// Register the plugin before constructing instances:
//
//	engine.RegisterPlugin(metrics.New())
//	http.Handle("/metrics", promhttp.Handler())
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ampkit-dev/ampkit/pkg/engine"
)

// Plugin counts builds, removals, mounts, unmounts, and destroys across
// every engine instance in the process.
type Plugin struct {
	nodesBuilt   prometheus.Counter
	nodesRemoved prometheus.Counter
	mounts       *prometheus.CounterVec
	unmounts     prometheus.Counter
	destroys     prometheus.Counter
}

// Option configures the plugin.
type Option func(*config)

type config struct {
	namespace   string
	registerer  prometheus.Registerer
	constLabels prometheus.Labels
}

// WithNamespace sets the metric namespace (default "ampkit").
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithRegistry sets the registry metrics are registered with. Defaults to
// the process-global prometheus.DefaultRegisterer.
func WithRegistry(r prometheus.Registerer) Option {
	return func(c *config) { c.registerer = r }
}

// WithConstLabels attaches constant labels to every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *config) { c.constLabels = labels }
}

// New creates the metrics plugin and registers its collectors.
func New(opts ...Option) *Plugin {
	cfg := config{
		namespace:  "ampkit",
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.registerer)

	return &Plugin{
		nodesBuilt: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "engine",
			Name:        "nodes_built_total",
			Help:        "Total number of nodes materialized by the builder.",
			ConstLabels: cfg.constLabels,
		}),
		nodesRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "engine",
			Name:        "nodes_removed_total",
			Help:        "Total number of nodes cleaned up by the removal controller.",
			ConstLabels: cfg.constLabels,
		}),
		mounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "engine",
			Name:        "mounts_total",
			Help:        "Total number of mounts, by insertion strategy.",
			ConstLabels: cfg.constLabels,
		}, []string{"strategy"}),
		unmounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "engine",
			Name:        "unmounts_total",
			Help:        "Total number of unmounts.",
			ConstLabels: cfg.constLabels,
		}),
		destroys: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Subsystem:   "engine",
			Name:        "instances_destroyed_total",
			Help:        "Total number of destroyed engine instances.",
			ConstLabels: cfg.constLabels,
		}),
	}
}

// BuildNode counts materialized nodes. It never substitutes.
func (p *Plugin) BuildNode(def *engine.NodeDef) *engine.NodeDef {
	p.nodesBuilt.Inc()
	return nil
}

// RemoveNode counts cleaned-up nodes. It never substitutes.
func (p *Plugin) RemoveNode(def *engine.NodeDef) *engine.NodeDef {
	p.nodesRemoved.Inc()
	return nil
}

// Mount counts mounts by strategy.
func (p *Plugin) Mount(roots []*engine.NodeDef, ctx *engine.MountContext) {
	p.mounts.WithLabelValues(string(ctx.Strategy)).Inc()
}

// Unmount counts unmounts.
func (p *Plugin) Unmount(roots []*engine.NodeDef, ctx *engine.MountContext) {
	p.unmounts.Inc()
}

// Destroy counts instance teardowns.
func (p *Plugin) Destroy() {
	p.destroys.Inc()
}
