package engine

import (
	"github.com/ampkit-dev/ampkit/pkg/dom"
)

// RemoveNode performs bookkeeping cleanup for a definition (or ordered
// slice): plugin RemoveNode hooks run first per node and may substitute the
// definition, then every registered event is detached and cleared, the
// reference alias and registry entry are dropped, and children are cleaned
// recursively. A nil def cleans up from the root. Detaching the substrate
// nodes from the host tree stays with the caller, normally composed with
// Unmount or a direct structural removal.
//
// The possibly substituted definitions are returned in order.
func (e *Engine) RemoveNode(def any) ([]*NodeDef, error) {
	if e.destroyed {
		return nil, opErr("removeNode", "", ErrDestroyed)
	}
	if def == nil {
		out := make([]*NodeDef, 0, len(e.roots))
		for _, root := range e.roots {
			d, err := e.removeOne(root)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	}
	return e.removeAny(def)
}

// removeAny recurses over the accepted definition shapes element-wise.
func (e *Engine) removeAny(def any) ([]*NodeDef, error) {
	switch v := def.(type) {
	case *NodeDef:
		if v == nil {
			return nil, opErr("removeNode", "", ErrNilDefinition)
		}
		d, err := e.removeOne(v)
		if err != nil {
			return nil, err
		}
		return []*NodeDef{d}, nil
	case []*NodeDef:
		out := make([]*NodeDef, 0, len(v))
		for _, item := range v {
			d, err := e.removeOne(item)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	default:
		return nil, opErr("removeNode", "", ErrBadDefinition)
	}
}

// removeOne cleans up a single definition and recurses into its resolved
// children.
func (e *Engine) removeOne(d *NodeDef) (*NodeDef, error) {
	if d == nil {
		return nil, opErr("removeNode", "", ErrNilDefinition)
	}
	d = e.runRemoveHooks(d)

	if el := d.Element(); el != nil {
		e.detachHandlers(el, "", nil)
	}
	d.Events = nil

	if d.Ref != "" {
		if e.refs[d.Ref] == d {
			delete(e.refs, d.Ref)
		}
		if d.Node != nil && e.byNode[d.Node] == d {
			delete(e.byNode, d.Node)
		}
	}

	for _, child := range d.Children {
		if _, err := e.removeOne(child); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ReplaceNode swaps the node registered under refName for a newly built
// definition: the old subtree's bookkeeping is cleaned up, the replacement
// is built with the same structural parent, the substrate nodes are swapped
// at the same document position, and the parent's child-list slot is
// overwritten, preserving sibling order.
func (e *Engine) ReplaceNode(refName string, def *NodeDef) (*NodeDef, error) {
	if e.destroyed {
		return nil, opErr("replaceNode", "", ErrDestroyed)
	}
	old, ok := e.refs[refName]
	if !ok {
		return nil, opErr("replaceNode", refName, ErrUnresolvedRef)
	}
	if def == nil {
		return nil, opErr("replaceNode", refName, ErrNilDefinition)
	}
	parent := old.parent
	if parent == nil || parent.Element() == nil {
		return nil, opErr("replaceNode", refName, ErrNoParent)
	}

	if _, err := e.removeOne(old); err != nil {
		return nil, err
	}

	idx := -1
	for i, child := range parent.Children {
		if child == old {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, opErr("replaceNode", refName, ErrInvalidTarget)
	}

	built, err := e.buildOne(def.clone(), parent)
	if err != nil {
		return nil, err
	}

	pel := parent.Element()
	if old.Node != nil && old.Node.ParentNode() == dom.Node(pel) {
		if err := pel.ReplaceChild(built.Node, old.Node); err != nil {
			return nil, err
		}
	} else if err := pel.AppendChild(built.Node); err != nil {
		return nil, err
	}
	parent.Children[idx] = built
	return built, nil
}
