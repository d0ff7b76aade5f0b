package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ampkit-dev/ampkit/pkg/dom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables pretty-printed output with indentation. Development
	// only; it increases output size.
	Pretty bool

	// Indent is the string per indentation level in pretty mode. Defaults
	// to two spaces.
	Indent string
}

// Renderer serializes substrate trees to HTML.
type Renderer struct {
	config Config
}

// New creates a Renderer with the given configuration.
func New(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a tree to an HTML string.
func (r *Renderer) RenderToString(n dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, n dom.Node) error {
	return r.renderNode(w, n, dom.NamespaceHTML, 0)
}

// voidTags render as self-closing tags without children.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// renderNode dispatches on the node kind. parentNS tracks the enclosing
// namespace so an xmlns attribute is emitted exactly where the namespace
// changes.
func (r *Renderer) renderNode(w io.Writer, n dom.Node, parentNS string, depth int) error {
	switch node := n.(type) {
	case nil:
		return nil
	case *dom.Text:
		return r.writeIndented(w, escapeText(node.Data()), depth)
	case *dom.Element:
		return r.renderElement(w, node, parentNS, depth)
	case *dom.Fragment:
		for _, child := range node.Children() {
			if err := r.renderNode(w, child, parentNS, depth); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("render: unknown node kind %v", n.NodeType())
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, el *dom.Element, parentNS string, depth int) error {
	tag := strings.ToLower(el.TagName())

	var open strings.Builder
	open.WriteByte('<')
	open.WriteString(tag)

	attrs := el.Attributes()
	keys := make([]string, 0, len(attrs)+1)
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if el.Namespace() != parentNS && el.Namespace() != "" {
		fmt.Fprintf(&open, ` xmlns="%s"`, escapeAttr(el.Namespace()))
	}
	for _, k := range keys {
		fmt.Fprintf(&open, ` %s="%s"`, k, escapeAttr(attrs[k]))
	}
	open.WriteByte('>')

	if voidTags[tag] {
		return r.writeIndented(w, open.String(), depth)
	}

	children := el.Children()
	if len(children) == 0 {
		return r.writeIndented(w, open.String()+"</"+tag+">", depth)
	}

	if err := r.writeIndented(w, open.String(), depth); err != nil {
		return err
	}
	for _, child := range children {
		if err := r.renderNode(w, child, el.Namespace(), depth+1); err != nil {
			return err
		}
	}
	return r.writeIndented(w, "</"+tag+">", depth)
}

// writeIndented writes one chunk, with indentation and a newline in pretty
// mode.
func (r *Renderer) writeIndented(w io.Writer, s string, depth int) error {
	if r.config.Pretty {
		if _, err := io.WriteString(w, strings.Repeat(r.config.Indent, depth)); err != nil {
			return err
		}
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
