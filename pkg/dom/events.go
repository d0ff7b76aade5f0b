package dom

import (
	"reflect"
	"strings"
)

// Event is delivered to handlers on dispatch.
type Event struct {
	Type   string
	Target *Element
	Data   any
}

// Handler is an event handler closure.
type Handler func(*Event)

// listener pairs a handler with its identity for later removal. Go funcs
// are not comparable, so identity is the code entry pointer.
type listener struct {
	fn Handler
	id uintptr
}

// HandlerID returns the identity used to match handlers in
// RemoveEventListener. Exposed so registries layered on top of the substrate
// can use the same notion of identity.
func HandlerID(h Handler) uintptr {
	if h == nil {
		return 0
	}
	return reflect.ValueOf(h).Pointer()
}

// AddEventListener subscribes h to events of the given type. The same
// handler may be subscribed more than once and will then run once per
// subscription.
func (e *Element) AddEventListener(eventType string, h Handler) {
	if h == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener{fn: h, id: HandlerID(h)})
}

// RemoveEventListener unsubscribes the first subscription matching h.
// Unknown handlers are ignored.
func (e *Element) RemoveEventListener(eventType string, h Handler) {
	ls := e.listeners[eventType]
	if len(ls) == 0 {
		return
	}
	id := HandlerID(h)
	for i, l := range ls {
		if l.id == id {
			e.listeners[eventType] = append(ls[:i], ls[i+1:]...)
			if len(e.listeners[eventType]) == 0 {
				delete(e.listeners, eventType)
			}
			return
		}
	}
}

// ListenerCount returns the number of live subscriptions for the event
// type, or the total across all types when eventType is empty.
func (e *Element) ListenerCount(eventType string) int {
	if eventType != "" {
		return len(e.listeners[eventType])
	}
	n := 0
	for _, ls := range e.listeners {
		n += len(ls)
	}
	return n
}

// Dispatch synchronously invokes every handler subscribed to the event
// type, in subscription order, and returns how many ran. There is no
// bubbling; callers dispatch on the element they target.
func (e *Element) Dispatch(eventType string, data any) int {
	ls := e.listeners[eventType]
	if len(ls) == 0 {
		return 0
	}
	ev := &Event{Type: eventType, Target: e, Data: data}
	// Copy so handlers can unsubscribe themselves mid-dispatch.
	run := make([]listener, len(ls))
	copy(run, ls)
	for _, l := range run {
		l.fn(ev)
	}
	return len(run)
}

// SupportedEvents returns the event types an element of this tag supports.
// The two media tags extend the generic set with the media events.
func (e *Element) SupportedEvents() map[string]bool {
	switch strings.ToLower(e.tag) {
	case "audio", "video":
		return mediaEventSet
	default:
		return genericEventSet
	}
}

// genericEventSet is the precomputed event set shared by every non-media
// tag.
var genericEventSet = eventSet(
	// Mouse
	"click", "dblclick", "mousedown", "mouseup", "mousemove",
	"mouseenter", "mouseleave", "mouseover", "mouseout", "contextmenu", "wheel",
	// Keyboard
	"keydown", "keyup", "keypress",
	// Focus and forms
	"focus", "blur", "focusin", "focusout",
	"input", "change", "submit", "reset", "select", "invalid",
	// Pointer and touch
	"pointerdown", "pointerup", "pointermove", "pointerenter",
	"pointerleave", "pointercancel",
	"touchstart", "touchmove", "touchend", "touchcancel",
	// Drag
	"dragstart", "drag", "dragend", "dragenter", "dragover", "dragleave", "drop",
	// Misc
	"scroll", "scrollend", "load", "error", "abort",
	"animationstart", "animationend", "animationiteration",
	"transitionstart", "transitionend", "transitioncancel",
	"copy", "cut", "paste", "toggle",
)

// mediaEventSet extends the generic set for audio and video elements.
var mediaEventSet = extendSet(genericEventSet,
	"play", "pause", "playing", "ended",
	"timeupdate", "durationchange", "ratechange", "volumechange",
	"seeking", "seeked", "waiting", "stalled", "suspend", "emptied",
	"progress", "loadstart", "loadeddata", "loadedmetadata",
	"canplay", "canplaythrough",
)

func eventSet(names ...string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

func extendSet(base map[string]bool, names ...string) map[string]bool {
	s := make(map[string]bool, len(base)+len(names))
	for n := range base {
		s[n] = true
	}
	for _, n := range names {
		s[n] = true
	}
	return s
}
