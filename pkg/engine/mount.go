package engine

import (
	"github.com/ampkit-dev/ampkit/pkg/dom"
)

// Strategy selects where roots attach relative to the mount target.
type Strategy string

const (
	// StrategyAppend appends to the target (the default). On a re-mount it
	// inserts before the remembered next-sibling when that sibling is
	// still attached to the same parent.
	StrategyAppend Strategy = "append"

	// StrategyBefore inserts immediately before the target.
	StrategyBefore Strategy = "before"

	// StrategyReplace inserts at the target's position and removes the
	// target, guarded against the target already being detached.
	StrategyReplace Strategy = "replace"

	// StrategyTop inserts as the first child of the target.
	StrategyTop Strategy = "top"
)

// MountOptions selects a mount target and insertion strategy.
type MountOptions struct {
	Target   dom.Node
	Strategy Strategy // defaults to StrategyAppend
}

// MountContext is the per-instance mount state: the target, the strategy,
// the resolved structural parent, the remembered next-sibling for exact
// re-mounting, and the mounted flag.
type MountContext struct {
	Target   dom.Node
	Strategy Strategy

	parent      *dom.Element
	nextSibling dom.Node
	mounted     bool
	restoring   bool
}

// Mounted reports whether the instance is currently mounted.
func (c *MountContext) Mounted() bool { return c.mounted }

// Parent returns the resolved structural parent the roots attach under.
func (c *MountContext) Parent() *dom.Element { return c.parent }

// NextSibling returns the remembered restoration sibling, if any.
func (c *MountContext) NextSibling() dom.Node { return c.nextSibling }

// Mounted reports whether the instance is currently mounted.
func (e *Engine) Mounted() bool { return e.mount.mounted }

// MountCtx returns the instance's mount context.
func (e *Engine) MountCtx() *MountContext { return &e.mount }

// Mount attaches the roots to the host document. A no-op when already
// mounted. Passing options replaces the mount context (target plus
// strategy); an argumentless call after an unmount restores the roots to
// the captured parent and position. Only the subset of roots not already
// attached is inserted, in definition order and contiguously, through one
// batched fragment insertion. After the structural insertion every
// plugin's Mount hook runs and the state becomes mounted.
func (e *Engine) Mount(opts *MountOptions) error {
	if e.destroyed {
		return opErr("mount", "", ErrDestroyed)
	}
	if e.mount.mounted {
		return nil
	}
	if opts != nil {
		if err := e.mount.configure(opts); err != nil {
			return err
		}
	}
	parent := e.mount.parent
	if parent == nil {
		return opErr("mount", "", ErrNoParent)
	}

	pending := e.detachedRoots()
	if len(pending) > 0 {
		anchor, removeTarget := e.mount.anchor()
		frag := e.doc.CreateFragment()
		for _, root := range pending {
			if err := frag.AppendChild(root.Node); err != nil {
				return err
			}
		}
		if err := parent.InsertBefore(frag, anchor); err != nil {
			return err
		}
		if removeTarget != nil {
			dom.Detach(removeTarget)
		}
	}
	e.mount.restoring = false

	for _, p := range e.plugins {
		if h, ok := p.(MountHook); ok {
			h.Mount(e.roots, &e.mount)
		}
	}
	e.mount.mounted = true
	return nil
}

// Unmount detaches the roots from the host document, remembering their
// exact position for a later argumentless Mount. A no-op when not mounted.
// Plugin Unmount hooks run first, while the roots are still attached.
func (e *Engine) Unmount() error {
	if e.destroyed {
		return opErr("unmount", "", ErrDestroyed)
	}
	if !e.mount.mounted {
		return nil
	}
	for _, p := range e.plugins {
		if h, ok := p.(UnmountHook); ok {
			h.Unmount(e.roots, &e.mount)
		}
	}

	attached := e.attachedRoots()
	if len(attached) > 0 {
		last := attached[len(attached)-1]
		if pel, ok := last.Node.ParentNode().(*dom.Element); ok {
			e.mount.parent = pel
		}
		e.mount.nextSibling = last.Node.NextSibling()
		e.mount.restoring = true
		for _, root := range attached {
			dom.Detach(root.Node)
		}
	}
	e.mount.mounted = false
	return nil
}

// configure replaces the mount context from explicit options and resolves
// the structural parent: the target itself for append/top, otherwise the
// target's parent.
func (c *MountContext) configure(opts *MountOptions) error {
	if opts.Target == nil {
		return opErr("mount", "", ErrInvalidTarget)
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = StrategyAppend
	}
	c.Target = opts.Target
	c.Strategy = strategy
	c.nextSibling = nil
	c.restoring = false

	switch strategy {
	case StrategyAppend, StrategyTop:
		el, ok := opts.Target.(*dom.Element)
		if !ok {
			return opErr("mount", "", ErrInvalidTarget)
		}
		c.parent = el
	default:
		el, ok := opts.Target.ParentNode().(*dom.Element)
		if !ok {
			return opErr("mount", "", ErrNoParent)
		}
		c.parent = el
	}
	return nil
}

// anchor resolves the insertion anchor for the current strategy and
// returns the node to remove afterwards for the replace strategy. A nil
// anchor appends.
func (c *MountContext) anchor() (anchor, removeTarget dom.Node) {
	if c.restoring {
		// Exact restoration: before the remembered sibling when it is
		// still attached to the same parent, else append.
		if c.nextSibling != nil && c.nextSibling.ParentNode() == dom.Node(c.parent) {
			return c.nextSibling, nil
		}
		return nil, nil
	}
	switch c.Strategy {
	case StrategyTop:
		return c.parent.FirstChild(), nil
	case StrategyBefore:
		return c.Target, nil
	case StrategyReplace:
		if c.Target.ParentNode() != nil {
			return c.Target, c.Target
		}
		return nil, nil
	default:
		return nil, nil
	}
}

// detachedRoots returns the subset of roots not attached to the host tree.
func (e *Engine) detachedRoots() []*NodeDef {
	var out []*NodeDef
	for _, root := range e.roots {
		if root.Node != nil && root.Node.ParentNode() == nil {
			out = append(out, root)
		}
	}
	return out
}

// attachedRoots returns the subset of roots currently attached.
func (e *Engine) attachedRoots() []*NodeDef {
	var out []*NodeDef
	for _, root := range e.roots {
		if root.Node != nil && root.Node.ParentNode() != nil {
			out = append(out, root)
		}
	}
	return out
}
