package engine

import (
	"errors"
	"testing"

	"github.com/ampkit-dev/ampkit/pkg/dom"
)

func TestRemoveNodeCleansBookkeeping(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag: "div",
		Ref: "outer",
		Props: Props{
			"click": func(*dom.Event) {},
		},
		Nodes: &NodeDef{Tag: "span", Ref: "inner"},
	})
	outer := e.RefDef("outer")
	el := outer.Element()

	removed, err := e.RemoveNode(outer)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0] != outer {
		t.Fatalf("removed = %v", removed)
	}
	if e.RefDef("outer") != nil || e.RefDef("inner") != nil {
		t.Error("references should be dropped recursively")
	}
	if e.RegisteredEvents(nil) != 0 {
		t.Error("event registry should be empty")
	}
	if el.ListenerCount("") != 0 {
		t.Error("substrate listeners should be detached")
	}
}

func TestRemoveNodeNilCleansAllRoots(t *testing.T) {
	e := newEngine(t, []*NodeDef{
		{Tag: "a", Ref: "ra"},
		{Tag: "b", Ref: "rb"},
	})
	removed, err := e.RemoveNode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 {
		t.Fatalf("removed = %d, want 2", len(removed))
	}
	if e.RefDef("ra") != nil || e.RefDef("rb") != nil {
		t.Error("all references should be dropped")
	}
}

func TestRemoveNodeBadShape(t *testing.T) {
	e := newEngine(t, &NodeDef{Tag: "div"})
	if _, err := e.RemoveNode("nope"); !errors.Is(err, ErrBadDefinition) {
		t.Errorf("err = %v, want ErrBadDefinition", err)
	}
}

func TestRemoveNodeLeavesSubstrateAttachment(t *testing.T) {
	_, host, e := hostAndEngine(t, &NodeDef{Tag: "div", Ref: "d"})
	if err := e.Mount(&MountOptions{Target: host}); err != nil {
		t.Fatal(err)
	}
	d := e.RefDef("d")
	if _, err := e.RemoveNode(d); err != nil {
		t.Fatal(err)
	}
	// Bookkeeping cleanup only; structural detachment stays with the caller.
	if d.Node.ParentNode() == nil {
		t.Error("substrate node should still be attached")
	}
}

func TestReplaceNodePreservesSiblingOrder(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag: "ul",
		Nodes: []*NodeDef{
			{Tag: "li", Ref: "a", Nodes: "A"},
			{Tag: "li", Ref: "b", Nodes: "B"},
			{Tag: "li", Ref: "c", Nodes: "C"},
		},
	})
	ul := e.Root()

	built, err := e.ReplaceNode("b", &NodeDef{Tag: "li", Ref: "d", Nodes: "D"})
	if err != nil {
		t.Fatal(err)
	}

	// Resolved child list.
	if len(ul.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(ul.Children))
	}
	if ul.Children[1] != built {
		t.Error("replacement should occupy the old slot")
	}

	// Substrate order.
	nodes := ul.Element().Children()
	if len(nodes) != 3 {
		t.Fatalf("substrate children = %d, want 3", len(nodes))
	}
	mid := nodes[1].(*dom.Element)
	if txt := mid.Children()[0].(*dom.Text); txt.Data() != "D" {
		t.Errorf("middle text = %q, want D", txt.Data())
	}

	// Registry state.
	if e.RefDef("b") != nil {
		t.Error("old reference should be gone")
	}
	if e.RefDef("d") != built {
		t.Error("new reference should resolve to the replacement")
	}
}

func TestReplaceNodeErrors(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag:   "div",
		Ref:   "root-el",
		Nodes: &NodeDef{Tag: "span", Ref: "child"},
	})

	t.Run("unresolved ref", func(t *testing.T) {
		_, err := e.ReplaceNode("ghost", &NodeDef{Tag: "span"})
		if !errors.Is(err, ErrUnresolvedRef) {
			t.Errorf("err = %v, want ErrUnresolvedRef", err)
		}
	})
	t.Run("nil replacement", func(t *testing.T) {
		_, err := e.ReplaceNode("child", nil)
		if !errors.Is(err, ErrNilDefinition) {
			t.Errorf("err = %v, want ErrNilDefinition", err)
		}
	})
	t.Run("root has no parent", func(t *testing.T) {
		_, err := e.ReplaceNode("root-el", &NodeDef{Tag: "div"})
		if !errors.Is(err, ErrNoParent) {
			t.Errorf("err = %v, want ErrNoParent", err)
		}
	})
}

func TestReplaceNodeClonesDefinition(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag:   "div",
		Nodes: &NodeDef{Tag: "span", Ref: "old"},
	})
	repl := &NodeDef{Tag: "em", Ref: "new"}
	built, err := e.ReplaceNode("old", repl)
	if err != nil {
		t.Fatal(err)
	}
	if built == repl {
		t.Error("replacement should be built from a clone")
	}
	if repl.Node != nil {
		t.Error("caller literal should stay unbuilt")
	}
}
