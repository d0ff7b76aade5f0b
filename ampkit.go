// Package ampkit provides the public API for the AmpKit player engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/ampkit-dev/ampkit"
//
// Usage:
//
//	inst, err := ampkit.New(ampkit.El("div", nil,
//		&ampkit.NodeDef{Tag: "audio", Ref: "player"},
//	), ampkit.Config{})
package ampkit

import (
	"github.com/ampkit-dev/ampkit/pkg/dom"
	"github.com/ampkit-dev/ampkit/pkg/engine"
)

// Core construction types, re-exported from the engine package.
type (
	// NodeDef is a declarative node description.
	NodeDef = engine.NodeDef

	// Props holds passthrough properties.
	Props = engine.Props

	// Handler handles a substrate event.
	Handler = engine.Handler

	// Config configures an engine instance.
	Config = engine.Config

	// Engine owns one materialized tree.
	Engine = engine.Engine

	// MountOptions selects a mount target and insertion strategy.
	MountOptions = engine.MountOptions

	// Strategy selects where roots attach relative to the mount target.
	Strategy = engine.Strategy
)

// Insertion strategies.
const (
	StrategyAppend  = engine.StrategyAppend
	StrategyBefore  = engine.StrategyBefore
	StrategyReplace = engine.StrategyReplace
	StrategyTop     = engine.StrategyTop
)

// New materializes a definition into a live tree. See engine.New.
func New(def any, cfg Config) (*Engine, error) {
	return engine.New(def, cfg)
}

// El creates an element definition.
func El(tag string, props Props, children ...any) *NodeDef {
	return engine.El(tag, props, children...)
}

// Text creates a literal text definition.
func Text(s string) *NodeDef {
	return engine.Text(s)
}

// RegisterPlugin adds a plugin to the process-wide pipeline.
func RegisterPlugin(p any, opts ...engine.PluginOption) {
	engine.RegisterPlugin(p, opts...)
}

// WithPriority sets a plugin registration's priority.
var WithPriority = engine.WithPriority

// NewDocument creates a fresh in-memory substrate document.
func NewDocument() *dom.Document {
	return dom.NewDocument()
}
