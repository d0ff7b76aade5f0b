package engine

import (
	"fmt"
	"strings"

	"github.com/ampkit-dev/ampkit/pkg/dom"
)

// Tags with special namespace behavior.
const (
	// genericTag is the container tag used for untagged element
	// definitions.
	genericTag = "div"

	// graphicsRootTag starts a vector-graphics subtree.
	graphicsRootTag = "svg"

	// foreignBoundaryTag ends namespace inheritance: children of this tag
	// return to the default document namespace.
	foreignBoundaryTag = "foreignObject"
)

// AddNode materializes a definition (a *NodeDef, a string, or an ordered
// slice of either) under the given structural parent and returns the
// materialized nodes in order. A non-array input yields one node.
//
// Array results are appended to the parent's resolved child list when a
// parent is supplied; attaching the created substrate nodes to the parent's
// substrate node stays with the caller, mirroring the replace path that
// reuses this operation.
func (e *Engine) AddNode(def any, parent *NodeDef) ([]*NodeDef, error) {
	if e.destroyed {
		return nil, opErr("addNode", "", ErrDestroyed)
	}
	built, err := e.build(def, parent)
	if err != nil {
		return nil, err
	}
	if parent != nil && isArrayInput(def) {
		parent.Children = append(parent.Children, built...)
	}
	return built, nil
}

// build dispatches over the accepted definition shapes. Arrays recurse
// element-wise with the same structural parent; nested arrays are rejected.
func (e *Engine) build(def any, parent *NodeDef) ([]*NodeDef, error) {
	switch v := def.(type) {
	case nil:
		return nil, opErr("addNode", "", ErrNilDefinition)
	case string:
		d, err := e.buildOne(Text(v), parent)
		if err != nil {
			return nil, err
		}
		return []*NodeDef{d}, nil
	case *NodeDef:
		if v == nil {
			return nil, opErr("addNode", "", ErrNilDefinition)
		}
		d, err := e.buildOne(v.clone(), parent)
		if err != nil {
			return nil, err
		}
		return []*NodeDef{d}, nil
	case []*NodeDef:
		out := make([]*NodeDef, 0, len(v))
		for _, item := range v {
			built, err := e.build(item, parent)
			if err != nil {
				return nil, err
			}
			out = append(out, built...)
		}
		return out, nil
	case []string:
		out := make([]*NodeDef, 0, len(v))
		for _, item := range v {
			built, err := e.build(item, parent)
			if err != nil {
				return nil, err
			}
			out = append(out, built...)
		}
		return out, nil
	case []any:
		out := make([]*NodeDef, 0, len(v))
		for _, item := range v {
			if isArrayInput(item) {
				return nil, opErr("addNode", "", ErrBadDefinition)
			}
			built, err := e.build(item, parent)
			if err != nil {
				return nil, err
			}
			out = append(out, built...)
		}
		return out, nil
	default:
		return nil, opErr("addNode", fmt.Sprintf("%T", def), ErrBadDefinition)
	}
}

// buildOne materializes a single already-cloned definition: legacy-key
// migration, the plugin pass, defensive node creation, the property
// resolver, the explicit event map, reference registration, and recursive
// children.
func (e *Engine) buildOne(d *NodeDef, parent *NodeDef) (*NodeDef, error) {
	d.parent = parent
	d.migrateKeys(e.logger)

	d = e.runBuildHooks(d)
	d.parent = parent

	// A hook may have created the node itself; create one defensively
	// otherwise, using the same namespace rule.
	if d.Node == nil {
		d.Node = e.createNode(d, parent)
	}

	el := d.Element()
	if el != nil {
		if err := e.resolveProps(d, el); err != nil {
			return nil, err
		}
		for name, v := range d.Events {
			handlers, err := normalizeHandlers(v)
			if err != nil {
				return nil, opErr("addNode", name, err)
			}
			e.attachHandlers(el, name, handlers)
		}
	}

	if d.Ref != "" {
		if reservedRefNames[d.Ref] {
			return nil, opErr("addNode", d.Ref, ErrReservedRef)
		}
		if _, exists := e.refs[d.Ref]; exists {
			return nil, opErr("addNode", d.Ref, ErrDuplicateRef)
		}
		e.refs[d.Ref] = d
		e.byNode[d.Node] = d
	}

	if el != nil && d.Nodes != nil {
		children, err := e.build(d.Nodes, d)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if err := el.AppendChild(child.Node); err != nil {
				return nil, err
			}
		}
		d.Children = children
		d.Nodes = nil
	}

	return d, nil
}

// createNode creates the substrate node for a definition. Text definitions
// become namespace-less text nodes; element definitions follow the
// namespace rule: the graphics-root tag (case-insensitive) starts the
// vector-graphics namespace, and children inherit it unless their immediate
// parent is the foreign-content boundary tag.
func (e *Engine) createNode(d *NodeDef, parent *NodeDef) dom.Node {
	if d.Kind == KindText {
		return e.doc.CreateText(d.Text)
	}
	tag := d.Tag
	if tag == "" {
		tag = genericTag
	}
	return e.doc.CreateElementNS(e.namespaceFor(tag, parent), tag)
}

// namespaceFor resolves the namespace an element of the given tag is
// created in under the given structural parent.
func (e *Engine) namespaceFor(tag string, parent *NodeDef) string {
	if strings.EqualFold(tag, graphicsRootTag) {
		return dom.NamespaceSVG
	}
	if parent != nil {
		if pel := parent.Element(); pel != nil &&
			pel.Namespace() == dom.NamespaceSVG &&
			!strings.EqualFold(pel.TagName(), foreignBoundaryTag) {
			return dom.NamespaceSVG
		}
	}
	return dom.NamespaceHTML
}
