package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ampkit-dev/ampkit/pkg/dom"
)

// resolveProps runs the ordered strategy chain over every passthrough key:
//
//  1. a supported event name for the element's effective tag registers an
//     event handler,
//  2. a key containing a path separator assigns through the dotted property
//     path (a missing intermediate segment is fatal),
//  3. a key naming an existing native property assigns it directly, falling
//     back to an attribute when the property rejects writes,
//  4. anything else becomes an attribute.
//
// Keys carrying the reserved or extension prefix and nil values are
// skipped. A key that both contains a separator and literally names a
// native property resolves as a path: path-with-dot wins.
func (e *Engine) resolveProps(d *NodeDef, el *dom.Element) error {
	if len(d.Props) == 0 {
		return nil
	}
	supported := supportedEvents(e.doc, el.TagName())
	for key, val := range d.Props {
		if val == nil ||
			strings.HasPrefix(key, ReservedPrefix) ||
			strings.HasPrefix(key, ExtensionPrefix) {
			continue
		}
		switch {
		case supported[key]:
			handlers, err := normalizeHandlers(val)
			if err != nil {
				return opErr("addNode", key, err)
			}
			e.attachHandlers(el, key, handlers)
		case strings.Contains(key, "."):
			if err := setPropertyPath(el, key, val); err != nil {
				return err
			}
		case el.HasProperty(key):
			if err := el.SetProperty(key, val); err != nil {
				// Read-only platform property: fall back to a generic
				// attribute set.
				el.SetAttribute(key, val)
			}
		default:
			el.SetAttribute(key, val)
		}
	}
	return nil
}

// setPropertyPath resolves a dotted path on the element and assigns the
// final segment. Every intermediate segment must already exist; the final
// segment is created by the assignment.
func setPropertyPath(el *dom.Element, path string, val any) error {
	segs := strings.Split(path, ".")
	obj, ok := el.Property(segs[0])
	if !ok {
		return opErr("addNode", path, fmt.Errorf("%w (segment %q)", ErrPropertyPath, segs[0]))
	}
	for _, seg := range segs[1 : len(segs)-1] {
		m, isMap := obj.(map[string]any)
		if !isMap {
			return opErr("addNode", path, fmt.Errorf("%w (segment %q)", ErrPropertyPath, seg))
		}
		obj, ok = m[seg]
		if !ok {
			return opErr("addNode", path, fmt.Errorf("%w (segment %q)", ErrPropertyPath, seg))
		}
	}
	m, isMap := obj.(map[string]any)
	if !isMap {
		return opErr("addNode", path, fmt.Errorf("%w (segment %q)", ErrPropertyPath, segs[len(segs)-2]))
	}
	m[segs[len(segs)-1]] = val
	return nil
}

// normalizeHandlers coerces an event binding value into a handler list.
// Anything that is not callable is fatal.
func normalizeHandlers(v any) ([]Handler, error) {
	switch h := v.(type) {
	case Handler:
		if h == nil {
			return nil, ErrNotCallable
		}
		return []Handler{h}, nil
	case func(*dom.Event):
		if h == nil {
			return nil, ErrNotCallable
		}
		return []Handler{h}, nil
	case []Handler:
		out := make([]Handler, 0, len(h))
		for _, fn := range h {
			if fn == nil {
				return nil, ErrNotCallable
			}
			out = append(out, fn)
		}
		return out, nil
	case []any:
		out := make([]Handler, 0, len(h))
		for _, item := range h {
			fns, err := normalizeHandlers(item)
			if err != nil {
				return nil, err
			}
			out = append(out, fns...)
		}
		return out, nil
	default:
		return nil, ErrNotCallable
	}
}

// Supported-event sets are process-wide caches: the generic set is
// precomputed, the extended media sets are computed once per tag by
// introspecting a live element of that tag.
var (
	genericEventsOnce sync.Once
	genericEvents     map[string]bool

	mediaEventsMu sync.Mutex
	mediaEvents   = map[string]map[string]bool{}
)

// supportedEvents returns the event set for the effective tag.
func supportedEvents(doc *dom.Document, tag string) map[string]bool {
	lower := strings.ToLower(tag)
	if lower == "audio" || lower == "video" {
		mediaEventsMu.Lock()
		defer mediaEventsMu.Unlock()
		set, ok := mediaEvents[lower]
		if !ok {
			set = doc.CreateElement(lower).SupportedEvents()
			mediaEvents[lower] = set
		}
		return set
	}
	genericEventsOnce.Do(func() {
		genericEvents = dom.NewDocument().CreateElement(genericTag).SupportedEvents()
	})
	return genericEvents
}
