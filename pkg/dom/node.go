package dom

import "errors"

// Namespace URIs understood by the substrate.
const (
	// NamespaceHTML is the default document namespace.
	NamespaceHTML = "http://www.w3.org/1999/xhtml"

	// NamespaceSVG is the vector-graphics namespace.
	NamespaceSVG = "http://www.w3.org/2000/svg"
)

// Structural operation errors.
var (
	// ErrNotChild is returned when a reference node does not belong to the
	// node it was addressed through.
	ErrNotChild = errors.New("dom: node is not a child of this parent")

	// ErrNilNode is returned when a structural operation receives nil.
	ErrNilNode = errors.New("dom: nil node")
)

// NodeType discriminates the concrete node kinds.
type NodeType uint8

const (
	ElementNode  NodeType = iota + 1 // <div>, <svg>, ...
	TextNode                         // literal text
	FragmentNode                     // grouping container, spliced on insert
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Node is a member of the document tree.
//
// The unexported setParent method restricts implementations to this package;
// the engine only ever holds nodes created through a Document.
type Node interface {
	NodeType() NodeType

	// ParentNode returns the structural parent, or nil when detached.
	ParentNode() Node

	// NextSibling returns the node immediately following this one under the
	// same parent, or nil.
	NextSibling() Node

	setParent(Node)
}

// nodeBase carries the parent back-reference shared by all node kinds.
type nodeBase struct {
	parent Node
}

func (n *nodeBase) ParentNode() Node { return n.parent }
func (n *nodeBase) setParent(p Node) { n.parent = p }

// childList implements ordered child ownership for elements and fragments.
// owner is the node the list belongs to, so inserted children can point back
// at the right parent.
type childList struct {
	owner    Node
	children []Node
}

// Children returns the ordered child slice. The slice is owned by the list;
// callers must not mutate it.
func (l *childList) Children() []Node { return l.children }

// FirstChild returns the first child, or nil.
func (l *childList) FirstChild() Node {
	if len(l.children) == 0 {
		return nil
	}
	return l.children[0]
}

// IndexOf returns the position of n in the child list, or -1.
func (l *childList) IndexOf(n Node) int {
	for i, c := range l.children {
		if c == n {
			return i
		}
	}
	return -1
}

// AppendChild attaches n as the last child, detaching it from its current
// parent first. Fragments are spliced.
func (l *childList) AppendChild(n Node) error {
	return l.insertAt(n, len(l.children))
}

// InsertBefore attaches n immediately before ref. A nil ref appends.
func (l *childList) InsertBefore(n, ref Node) error {
	if ref == nil {
		return l.AppendChild(n)
	}
	idx := l.IndexOf(ref)
	if idx < 0 {
		return ErrNotChild
	}
	return l.insertAt(n, idx)
}

// RemoveChild detaches n from the list.
func (l *childList) RemoveChild(n Node) error {
	if n == nil {
		return ErrNilNode
	}
	idx := l.IndexOf(n)
	if idx < 0 {
		return ErrNotChild
	}
	l.children = append(l.children[:idx], l.children[idx+1:]...)
	n.setParent(nil)
	return nil
}

// ReplaceChild swaps old for n at the same position.
func (l *childList) ReplaceChild(n, old Node) error {
	if n == nil || old == nil {
		return ErrNilNode
	}
	idx := l.IndexOf(old)
	if idx < 0 {
		return ErrNotChild
	}
	old.setParent(nil)
	l.children = append(l.children[:idx], l.children[idx+1:]...)
	return l.insertAt(n, idx)
}

// insertAt places n (or a fragment's children) at position idx.
func (l *childList) insertAt(n Node, idx int) error {
	if n == nil {
		return ErrNilNode
	}
	if frag, ok := n.(*Fragment); ok {
		moved := frag.children
		frag.children = nil
		for i, c := range moved {
			c.setParent(nil)
			if err := l.insertAt(c, idx+i); err != nil {
				return err
			}
		}
		return nil
	}
	// Moving an attached node detaches it first. When the node moves within
	// the same list the index must account for its removal.
	if p := n.ParentNode(); p != nil {
		if own := listOf(p); own != nil {
			if own == l {
				if old := l.IndexOf(n); old >= 0 && old < idx {
					idx--
				}
			}
			if err := own.RemoveChild(n); err != nil {
				return err
			}
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(l.children) {
		idx = len(l.children)
	}
	l.children = append(l.children, nil)
	copy(l.children[idx+1:], l.children[idx:])
	l.children[idx] = n
	n.setParent(l.owner)
	return nil
}

// listOf returns the child list of a parent node, or nil for leaves.
func listOf(n Node) *childList {
	switch p := n.(type) {
	case *Element:
		return &p.childList
	case *Fragment:
		return &p.childList
	default:
		return nil
	}
}

// siblingAfter returns the node following n under its parent.
func siblingAfter(n Node) Node {
	p := n.ParentNode()
	if p == nil {
		return nil
	}
	l := listOf(p)
	if l == nil {
		return nil
	}
	idx := l.IndexOf(n)
	if idx < 0 || idx+1 >= len(l.children) {
		return nil
	}
	return l.children[idx+1]
}

// Detach removes n from its parent, if any. Detaching an already detached
// node is a no-op.
func Detach(n Node) {
	if n == nil {
		return
	}
	p := n.ParentNode()
	if p == nil {
		return
	}
	if l := listOf(p); l != nil {
		_ = l.RemoveChild(n)
	}
}

// Text is a literal text node. Text nodes carry no namespace.
type Text struct {
	nodeBase
	data string
}

// NodeType implements Node.
func (t *Text) NodeType() NodeType { return TextNode }

// NextSibling implements Node.
func (t *Text) NextSibling() Node { return siblingAfter(t) }

// Data returns the text content.
func (t *Text) Data() string { return t.data }

// SetData replaces the text content.
func (t *Text) SetData(s string) { t.data = s }

// Fragment groups nodes without a wrapper. Inserting a fragment into the
// tree moves its children and leaves the fragment empty.
type Fragment struct {
	nodeBase
	childList
}

// NodeType implements Node.
func (f *Fragment) NodeType() NodeType { return FragmentNode }

// NextSibling implements Node. Fragments are never attached, so this is
// always nil.
func (f *Fragment) NextSibling() Node { return nil }

// Document creates nodes. All nodes of one tree should come from the same
// Document, mirroring how a host page owns its DOM.
type Document struct{}

// NewDocument creates an empty document.
func NewDocument() *Document { return &Document{} }

// CreateElement creates an element in the default HTML namespace.
func (d *Document) CreateElement(tag string) *Element {
	return d.CreateElementNS(NamespaceHTML, tag)
}

// CreateElementNS creates an element in the given namespace.
func (d *Document) CreateElementNS(ns, tag string) *Element {
	e := &Element{
		doc:       d,
		tag:       tag,
		namespace: ns,
		attrs:     make(map[string]string),
	}
	e.childList.owner = e
	e.props = defaultProperties(tag)
	return e
}

// CreateText creates a text node with the given content.
func (d *Document) CreateText(data string) *Text {
	return &Text{data: data}
}

// CreateFragment creates an empty document fragment.
func (d *Document) CreateFragment() *Fragment {
	f := &Fragment{}
	f.childList.owner = f
	return f
}
