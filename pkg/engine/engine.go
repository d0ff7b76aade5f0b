package engine

import (
	"log/slog"

	"github.com/ampkit-dev/ampkit/pkg/dom"
)

// Config configures an engine instance.
type Config struct {
	// Document is the substrate the tree is built in. Defaults to a fresh
	// in-memory document.
	Document *dom.Document

	// Logger receives deprecation warnings. Defaults to slog.Default().
	Logger *slog.Logger

	// Mount, when non-nil, mounts the tree immediately after construction.
	Mount *MountOptions
}

// Engine owns one materialized tree: its reference and event registries,
// its mount context, and the snapshot of the plugin pipeline taken at
// construction. Instances are single-threaded.
type Engine struct {
	doc    *dom.Document
	logger *slog.Logger

	roots     []*NodeDef
	arrayRoot bool

	refs   map[string]*NodeDef               // reference name -> materialized node
	byNode map[dom.Node]*NodeDef             // substrate node -> materialized node
	events map[*dom.Element]map[string][]Handler

	mount   MountContext
	plugins []any

	destroyed bool
}

// reservedRefNames are the instance-reserved alias names. Reference names
// are exposed as instance-level aliases, so the engine's own operation
// names are off limits.
var reservedRefNames = map[string]bool{
	"root": true, "roots": true, "ref": true, "refs": true,
	"mount": true, "unmount": true, "destroy": true,
	"addNode": true, "removeNode": true, "replaceNode": true,
	"addEvent": true, "removeEvent": true,
	"engine": true, "document": true, "target": true, "plugins": true,
}

// New materializes the definition (a *NodeDef, a string, or an ordered
// slice of either) into a live tree and returns the owning instance. When
// cfg.Mount is set the tree is mounted before returning.
//
// Construction takes the one-time-sorted snapshot of the process-wide
// plugin pipeline; plugins registered afterwards do not affect this
// instance.
func New(def any, cfg Config) (*Engine, error) {
	doc := cfg.Document
	if doc == nil {
		doc = dom.NewDocument()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		doc:     doc,
		logger:  logger,
		refs:    make(map[string]*NodeDef),
		byNode:  make(map[dom.Node]*NodeDef),
		events:  make(map[*dom.Element]map[string][]Handler),
		plugins: snapshotPlugins(),
	}

	roots, err := e.build(def, nil)
	if err != nil {
		return nil, err
	}
	e.roots = roots
	e.arrayRoot = isArrayInput(def)

	if cfg.Mount != nil {
		if err := e.Mount(cfg.Mount); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Document returns the substrate document the instance builds into.
func (e *Engine) Document() *dom.Document { return e.doc }

// Root returns the materialized root, or the first root for an array root.
func (e *Engine) Root() *NodeDef {
	if len(e.roots) == 0 {
		return nil
	}
	return e.roots[0]
}

// Roots returns the ordered materialized root list.
func (e *Engine) Roots() []*NodeDef { return e.roots }

// ArrayRoot reports whether the instance was constructed from an array
// definition.
func (e *Engine) ArrayRoot() bool { return e.arrayRoot }

// Ref returns the substrate node registered under the reference name, or
// nil. This is the instance-level alias the definition's Ref field creates.
func (e *Engine) Ref(name string) dom.Node {
	d, ok := e.refs[name]
	if !ok {
		return nil
	}
	return d.Node
}

// RefDef returns the materialized node registered under the reference name,
// or nil.
func (e *Engine) RefDef(name string) *NodeDef { return e.refs[name] }

// Destroy tears the instance down: every plugin's Destroy hook runs, the
// whole tree is cleaned up, the roots are unmounted, the mount context's
// external references are released, and the instance becomes unusable.
// Calling Destroy twice is undefined; the second call reports ErrDestroyed.
func (e *Engine) Destroy() error {
	if e.destroyed {
		return ErrDestroyed
	}
	for _, p := range e.plugins {
		if h, ok := p.(DestroyHook); ok {
			h.Destroy()
		}
	}
	for _, root := range e.roots {
		if _, err := e.removeOne(root); err != nil {
			return err
		}
	}
	if err := e.Unmount(); err != nil {
		return err
	}
	for _, root := range e.roots {
		dom.Detach(root.Node)
	}

	e.mount = MountContext{}
	e.roots = nil
	e.refs = nil
	e.byNode = nil
	e.events = nil
	e.plugins = nil
	e.destroyed = true
	return nil
}

// isArrayInput reports whether the constructor input was an array form.
func isArrayInput(def any) bool {
	switch def.(type) {
	case []*NodeDef, []any, []string:
		return true
	default:
		return false
	}
}

// runBuildHooks threads a definition through every BuildNode hook in
// pipeline order, substituting when a hook returns a replacement.
func (e *Engine) runBuildHooks(d *NodeDef) *NodeDef {
	for _, p := range e.plugins {
		if h, ok := p.(BuildHook); ok {
			if sub := h.BuildNode(d); sub != nil {
				d = sub
			}
		}
	}
	return d
}

// runRemoveHooks is the removal-side counterpart of runBuildHooks.
func (e *Engine) runRemoveHooks(d *NodeDef) *NodeDef {
	for _, p := range e.plugins {
		if h, ok := p.(RemoveHook); ok {
			if sub := h.RemoveNode(d); sub != nil {
				d = sub
			}
		}
	}
	return d
}
