package dom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReadOnlyProperty is returned when assigning to a read-only property,
// e.g. duration on a media element.
var ErrReadOnlyProperty = errors.New("dom: property is read-only")

// ErrUnknownProperty is returned when assigning to a property the element
// does not have.
var ErrUnknownProperty = errors.New("dom: unknown property")

// Element is an element node: a tag, a namespace, attributes, properties,
// event listeners, and an ordered child list.
type Element struct {
	nodeBase
	childList

	doc       *Document
	tag       string
	namespace string
	attrs     map[string]string
	props     map[string]any
	listeners map[string][]listener
}

// NodeType implements Node.
func (e *Element) NodeType() NodeType { return ElementNode }

// NextSibling implements Node.
func (e *Element) NextSibling() Node { return siblingAfter(e) }

// TagName returns the tag the element was created with.
func (e *Element) TagName() string { return e.tag }

// Namespace returns the element's namespace URI.
func (e *Element) Namespace() string { return e.namespace }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// SetAttribute sets an attribute. Non-string values are formatted with
// fmt.Sprint, matching how a host serializes attribute assignments.
func (e *Element) SetAttribute(name string, value any) {
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	e.attrs[name] = s
}

// Attribute returns an attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// RemoveAttribute deletes an attribute. Removing an absent attribute is a
// no-op.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// Attributes returns the attribute map. The map is owned by the element;
// callers must not mutate it.
func (e *Element) Attributes() map[string]string { return e.attrs }

// HasProperty reports whether name is a native property of this element.
func (e *Element) HasProperty(name string) bool {
	_, ok := e.props[name]
	return ok
}

// Property returns a native property value and whether it exists.
func (e *Element) Property(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

// SetProperty assigns a native property. Assignment to a read-only property
// fails with ErrReadOnlyProperty; assignment to a property the element does
// not have fails with ErrUnknownProperty.
func (e *Element) SetProperty(name string, value any) error {
	if _, ok := e.props[name]; !ok {
		return ErrUnknownProperty
	}
	if readOnlyProperties[name] {
		return ErrReadOnlyProperty
	}
	e.props[name] = value
	return nil
}

// defaultProperties builds the property table an element of the given tag
// starts with. The table decides which keys count as "existing native
// properties" for direct assignment; everything else becomes an attribute.
func defaultProperties(tag string) map[string]any {
	props := map[string]any{
		"id":        "",
		"className": "",
		"title":     "",
		"lang":      "",
		"dir":       "",
		"hidden":    false,
		"tabIndex":  0,
		"tagName":   strings.ToUpper(tag),
		// Host objects reachable through dotted property paths.
		"style":   map[string]any{},
		"dataset": map[string]any{},
	}

	switch strings.ToLower(tag) {
	case "audio", "video":
		for k, v := range mediaProperties() {
			props[k] = v
		}
	case "input", "textarea", "select":
		props["value"] = ""
		props["checked"] = false
		props["disabled"] = false
		props["type"] = ""
	case "a":
		props["href"] = ""
		props["target"] = ""
	case "img", "source", "track":
		props["src"] = ""
	case "button":
		props["disabled"] = false
		props["type"] = ""
	}

	return props
}

// mediaProperties returns the property extension shared by the two media
// tags.
func mediaProperties() map[string]any {
	return map[string]any{
		"src":          "",
		"currentSrc":   "",
		"currentTime":  0.0,
		"duration":     0.0,
		"volume":       1.0,
		"muted":        false,
		"paused":       true,
		"ended":        false,
		"autoplay":     false,
		"loop":         false,
		"controls":     false,
		"preload":      "",
		"playbackRate": 1.0,
		"networkState": 0,
		"readyState":   0,
	}
}

// readOnlyProperties are properties the host exposes but rejects writes to.
// Assigning one falls back to an attribute at the engine level.
var readOnlyProperties = map[string]bool{
	"tagName":      true,
	"currentSrc":   true,
	"duration":     true,
	"paused":       true,
	"ended":        true,
	"networkState": true,
	"readyState":   true,
}
