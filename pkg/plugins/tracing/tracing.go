// Package tracing emits OpenTelemetry spans for engine mount and unmount.
//
// Register the plugin before constructing instances:
//
//	engine.RegisterPlugin(tracing.New())
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ampkit-dev/ampkit/pkg/engine"
)

const defaultTracerName = "github.com/ampkit-dev/ampkit"

// Plugin records a span per mount and unmount, carrying the root count and
// the insertion strategy as attributes.
type Plugin struct {
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

// Option configures the plugin.
type Option func(*config)

type config struct {
	tracerName     string
	tracerProvider trace.TracerProvider
	attrs          []attribute.KeyValue
}

// WithTracerName overrides the tracer instrumentation name.
func WithTracerName(name string) Option {
	return func(c *config) { c.tracerName = name }
}

// WithTracerProvider sets the provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracerProvider = tp }
}

// WithAttributes attaches extra attributes to every span.
func WithAttributes(attrs ...attribute.KeyValue) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// New creates the tracing plugin.
func New(opts ...Option) *Plugin {
	cfg := config{tracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	tp := cfg.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Plugin{tracer: tp.Tracer(cfg.tracerName), attrs: cfg.attrs}
}

// Mount records a span for the mount.
func (p *Plugin) Mount(roots []*engine.NodeDef, ctx *engine.MountContext) {
	attrs := append([]attribute.KeyValue{
		attribute.Int("engine.roots", len(roots)),
		attribute.String("engine.strategy", string(ctx.Strategy)),
	}, p.attrs...)
	_, span := p.tracer.Start(context.Background(), "engine.mount",
		trace.WithAttributes(attrs...))
	span.End()
}

// Unmount records a span for the unmount.
func (p *Plugin) Unmount(roots []*engine.NodeDef, ctx *engine.MountContext) {
	attrs := append([]attribute.KeyValue{
		attribute.Int("engine.roots", len(roots)),
	}, p.attrs...)
	_, span := p.tracer.Start(context.Background(), "engine.unmount",
		trace.WithAttributes(attrs...))
	span.End()
}
