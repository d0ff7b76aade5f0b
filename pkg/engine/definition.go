package engine

import (
	"log/slog"

	"github.com/ampkit-dev/ampkit/pkg/dom"
)

// Kind is the definition type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // an element definition (the default)
	KindText                // a literal text definition
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Props holds passthrough properties. The resolver decides per key whether a
// value is an event binding, a dotted property path, a direct property, or a
// fallback attribute.
type Props map[string]any

// Handler is re-exported so callers declaring event bindings do not need to
// import the substrate package.
type Handler = dom.Handler

// Prefixes recognized inside a Props map. Keys carrying either prefix are
// never fed to the property resolver.
const (
	// ReservedPrefix marks the engine-owned keys. Their canonical form is
	// the NodeDef struct fields; prefixed map entries are migrated there.
	ReservedPrefix = "amp-"

	// ExtensionPrefix marks keys owned by plugins; the engine carries them
	// untouched.
	ExtensionPrefix = "x-"
)

// NodeDef is a caller-authored node description. The builder shallow-clones
// it and materializes the clone, so the caller's literal is never mutated;
// the clone doubles as the materialized node, carrying the created substrate
// node, its resolved ordered child list, and a non-owning back-reference to
// its structural parent.
type NodeDef struct {
	Kind Kind   // element (default) or literal text
	Tag  string // element tag; empty means the generic container tag
	Text string // text content for KindText
	Ref  string // instance-unique reference name, optional

	// Events maps event names to a Handler, a []Handler, or a bare
	// func(*dom.Event). Entries register independently of the generic
	// Props key scan.
	Events map[string]any

	// Nodes is the ordered child input: a *NodeDef, a string (coerced to a
	// text definition), or a slice of either. The builder replaces it with
	// the resolved Children list.
	Nodes any

	// Props carries everything else.
	Props Props

	// Build-time fields, populated by the engine.

	// Node is the created substrate node.
	Node dom.Node

	// Children is the resolved ordered child list.
	Children []*NodeDef

	// parent is the structural parent. Non-owning: used for index lookup
	// and namespace resolution only, never for lifetime.
	parent *NodeDef
}

// Parent returns the structural parent, or nil for a root.
func (d *NodeDef) Parent() *NodeDef { return d.parent }

// Element returns the created substrate node as an element, or nil when the
// definition is unbuilt or materialized a text node.
func (d *NodeDef) Element() *dom.Element {
	el, _ := d.Node.(*dom.Element)
	return el
}

// clone returns a shallow copy of the definition with its own Props map, so
// legacy-key migration and build-time mutation never touch the caller's
// literal.
func (d *NodeDef) clone() *NodeDef {
	c := *d
	if d.Props != nil {
		c.Props = make(Props, len(d.Props))
		for k, v := range d.Props {
			c.Props[k] = v
		}
	}
	c.parent = nil
	c.Node = nil
	c.Children = nil
	return &c
}

// legacyKeys are the deprecated unprefixed aliases still accepted inside a
// Props map.
var legacyKeys = [...]string{"ref", "tag", "nodes", "text", "events"}

// migrateKeys moves reserved-prefixed and legacy Props entries onto the
// struct fields. A legacy key migrates only when the field is still unset
// and logs a non-fatal deprecation warning; a key that loses the race stays
// in Props and falls through to the resolver like any other property.
func (d *NodeDef) migrateKeys(logger *slog.Logger) {
	if d.Props == nil {
		return
	}
	for _, key := range legacyKeys {
		if v, ok := d.Props[ReservedPrefix+key]; ok && v != nil {
			if d.adoptKey(key, v) {
				delete(d.Props, ReservedPrefix+key)
			}
		}
		v, ok := d.Props[key]
		if !ok || v == nil {
			continue
		}
		if d.adoptKey(key, v) {
			delete(d.Props, key)
			logger.Warn("deprecated unprefixed definition key, use the NodeDef field",
				"key", key, "field", ReservedPrefix+key)
		}
	}
}

// adoptKey assigns one reserved key onto its field if the field is unset.
func (d *NodeDef) adoptKey(key string, v any) bool {
	switch key {
	case "ref":
		s, ok := v.(string)
		if ok && d.Ref == "" {
			d.Ref = s
			return true
		}
	case "tag":
		s, ok := v.(string)
		if ok && d.Tag == "" {
			d.Tag = s
			return true
		}
	case "text":
		s, ok := v.(string)
		if ok && d.Kind == KindElement && d.Tag == "" && d.Text == "" {
			d.Kind = KindText
			d.Text = s
			return true
		}
	case "nodes":
		if d.Nodes == nil {
			d.Nodes = v
			return true
		}
	case "events":
		if d.Events != nil {
			return false
		}
		switch m := v.(type) {
		case map[string]any:
			d.Events = m
			return true
		case map[string]Handler:
			d.Events = make(map[string]any, len(m))
			for name, h := range m {
				d.Events[name] = h
			}
			return true
		}
	}
	return false
}

// Text creates a literal text definition.
func Text(s string) *NodeDef {
	return &NodeDef{Kind: KindText, Text: s}
}

// El creates an element definition with the given tag, properties, and
// child inputs. Pass nil props when none are needed.
func El(tag string, props Props, children ...any) *NodeDef {
	d := &NodeDef{Tag: tag, Props: props}
	switch len(children) {
	case 0:
	case 1:
		d.Nodes = children[0]
	default:
		d.Nodes = children
	}
	return d
}
