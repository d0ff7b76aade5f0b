package engine

import (
	"github.com/ampkit-dev/ampkit/pkg/dom"
)

// AddEvent attaches one or more handlers to a target and records them in
// the event registry. The target is a substrate element, a materialized
// node, or a reference name; an unresolved name and a nil handler are both
// fatal.
func (e *Engine) AddEvent(target any, eventType string, handlers ...Handler) error {
	if e.destroyed {
		return opErr("addEvent", "", ErrDestroyed)
	}
	el, err := e.resolveTarget("addEvent", target)
	if err != nil {
		return err
	}
	for _, h := range handlers {
		if h == nil {
			return opErr("addEvent", eventType, ErrNotCallable)
		}
	}
	e.attachHandlers(el, eventType, handlers)
	return nil
}

// RemoveEvent detaches handlers from a target and deletes their registry
// records. With a non-empty eventType and a non-nil handler exactly that
// handler goes; with only an eventType every handler for that name goes;
// with neither every handler on the node goes. Detachment from the
// substrate node always happens together with the bookkeeping removal.
//
// Handler identity is the function's code pointer, matching the substrate's
// RemoveEventListener.
func (e *Engine) RemoveEvent(target any, eventType string, handler Handler) error {
	if e.destroyed {
		return opErr("removeEvent", "", ErrDestroyed)
	}
	el, err := e.resolveTarget("removeEvent", target)
	if err != nil {
		return err
	}
	e.detachHandlers(el, eventType, handler)
	return nil
}

// resolveTarget turns a node-or-reference-name target into a substrate
// element.
func (e *Engine) resolveTarget(op string, target any) (*dom.Element, error) {
	switch t := target.(type) {
	case *dom.Element:
		if t == nil {
			return nil, opErr(op, "", ErrInvalidTarget)
		}
		return t, nil
	case *NodeDef:
		if t == nil || t.Element() == nil {
			return nil, opErr(op, "", ErrInvalidTarget)
		}
		return t.Element(), nil
	case string:
		d, ok := e.refs[t]
		if !ok {
			return nil, opErr(op, t, ErrUnresolvedRef)
		}
		el := d.Element()
		if el == nil {
			return nil, opErr(op, t, ErrInvalidTarget)
		}
		return el, nil
	default:
		return nil, opErr(op, "", ErrInvalidTarget)
	}
}

// attachHandlers subscribes each handler on the substrate node and appends
// it to the per-node, per-event registry list, creating entries lazily.
func (e *Engine) attachHandlers(el *dom.Element, eventType string, handlers []Handler) {
	if len(handlers) == 0 {
		return
	}
	entry := e.events[el]
	if entry == nil {
		entry = make(map[string][]Handler)
		e.events[el] = entry
	}
	for _, h := range handlers {
		el.AddEventListener(eventType, h)
		entry[eventType] = append(entry[eventType], h)
	}
}

// detachHandlers is the narrowing removal behind RemoveEvent. The per-node
// entry is deleted once its mapping becomes empty, so the registry never
// carries dangling bookkeeping.
func (e *Engine) detachHandlers(el *dom.Element, eventType string, handler Handler) {
	entry := e.events[el]
	if entry == nil {
		return
	}
	switch {
	case eventType != "" && handler != nil:
		id := dom.HandlerID(handler)
		list := entry[eventType]
		for i, h := range list {
			if dom.HandlerID(h) == id {
				el.RemoveEventListener(eventType, h)
				entry[eventType] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(entry[eventType]) == 0 {
			delete(entry, eventType)
		}
	case eventType != "":
		for _, h := range entry[eventType] {
			el.RemoveEventListener(eventType, h)
		}
		delete(entry, eventType)
	default:
		for name, list := range entry {
			for _, h := range list {
				el.RemoveEventListener(name, h)
			}
			delete(entry, name)
		}
	}
	if len(entry) == 0 {
		delete(e.events, el)
	}
}

// RegisteredEvents returns the number of registry records for the element,
// or across every element when el is nil. Exposed for tests and plugins
// that audit cleanup.
func (e *Engine) RegisteredEvents(el *dom.Element) int {
	count := func(entry map[string][]Handler) int {
		n := 0
		for _, list := range entry {
			n += len(list)
		}
		return n
	}
	if el != nil {
		return count(e.events[el])
	}
	n := 0
	for _, entry := range e.events {
		n += count(entry)
	}
	return n
}
