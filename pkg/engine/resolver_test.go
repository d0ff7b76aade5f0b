package engine

import (
	"errors"
	"testing"

	"github.com/ampkit-dev/ampkit/pkg/dom"
)

func TestResolveEventKey(t *testing.T) {
	ran := 0
	e := newEngine(t, &NodeDef{
		Tag:   "button",
		Ref:   "b",
		Props: Props{"click": func(*dom.Event) { ran++ }},
	})
	el := e.RefDef("b").Element()
	el.Dispatch("click", nil)
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if _, ok := el.Attribute("click"); ok {
		t.Error("event key must not leak into attributes")
	}
}

func TestResolveMediaEventKey(t *testing.T) {
	// timeupdate is only an event on media tags; on a div it is an attribute.
	ran := 0
	e := newEngine(t, []*NodeDef{
		{Tag: "audio", Ref: "a", Props: Props{"timeupdate": func(*dom.Event) { ran++ }}},
		{Tag: "div", Ref: "d", Props: Props{"timeupdate": "x"}},
	})
	e.RefDef("a").Element().Dispatch("timeupdate", nil)
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if v, ok := e.RefDef("d").Element().Attribute("timeupdate"); !ok || v != "x" {
		t.Errorf("div timeupdate attribute = %q, %v", v, ok)
	}
}

func TestResolveNativeProperty(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag:   "audio",
		Ref:   "a",
		Props: Props{"volume": 0.25},
	})
	v, _ := e.RefDef("a").Element().Property("volume")
	if v != 0.25 {
		t.Errorf("volume = %v, want 0.25", v)
	}
}

func TestReadOnlyPropertyFallsBackToAttribute(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag:   "audio",
		Ref:   "a",
		Props: Props{"duration": 120},
	})
	el := e.RefDef("a").Element()
	if v, _ := el.Property("duration"); v != 0.0 {
		t.Errorf("property mutated: %v", v)
	}
	if v, ok := el.Attribute("duration"); !ok || v != "120" {
		t.Errorf("attribute = %q, %v; want fallback write", v, ok)
	}
}

func TestResolveAttributeFallback(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag:   "div",
		Ref:   "d",
		Props: Props{"aria-label": "play", "data-idx": 3},
	})
	el := e.RefDef("d").Element()
	if v, _ := el.Attribute("aria-label"); v != "play" {
		t.Errorf("aria-label = %q", v)
	}
	if v, _ := el.Attribute("data-idx"); v != "3" {
		t.Errorf("data-idx = %q", v)
	}
}

func TestResolvePropertyPath(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag: "div",
		Ref: "d",
		Props: Props{
			"style.color":   "red",
			"dataset.track": "t1",
		},
	})
	el := e.RefDef("d").Element()
	style, _ := el.Property("style")
	if style.(map[string]any)["color"] != "red" {
		t.Error("style.color not assigned")
	}
	ds, _ := el.Property("dataset")
	if ds.(map[string]any)["track"] != "t1" {
		t.Error("dataset.track not assigned")
	}
}

func TestPropertyPathMissingSegmentFatal(t *testing.T) {
	_, err := New(&NodeDef{
		Tag:   "div",
		Props: Props{"nosuch.deep": 1},
	}, quietConfig())
	if !errors.Is(err, ErrPropertyPath) {
		t.Errorf("err = %v, want ErrPropertyPath", err)
	}

	var oe *OpError
	if !errors.As(err, &oe) {
		t.Fatalf("err %v should be an OpError", err)
	}
	if oe.Op != "addNode" {
		t.Errorf("op = %q", oe.Op)
	}
}

func TestPathWithDotWinsOverProperty(t *testing.T) {
	// A key that both names an existing host object and contains a separator
	// resolves as a path.
	e := newEngine(t, &NodeDef{
		Tag:   "div",
		Ref:   "d",
		Props: Props{"style.display": "none"},
	})
	el := e.RefDef("d").Element()
	style, _ := el.Property("style")
	if style.(map[string]any)["display"] != "none" {
		t.Error("path assignment should win")
	}
	if _, ok := el.Attribute("style.display"); ok {
		t.Error("path key must not become an attribute")
	}
}

func TestSkippedKeys(t *testing.T) {
	e := newEngine(t, &NodeDef{
		Tag: "div",
		Ref: "d",
		Props: Props{
			"x-plugin": "opaque",
			"nilled":   nil,
		},
	})
	el := e.RefDef("d").Element()
	if _, ok := el.Attribute("x-plugin"); ok {
		t.Error("extension-prefixed key must be carried, not resolved")
	}
	if _, ok := el.Attribute("nilled"); ok {
		t.Error("nil value must be skipped")
	}
	if v, ok := e.RefDef("d").Props["x-plugin"]; !ok || v != "opaque" {
		t.Error("extension key should stay in the materialized Props")
	}
}

func TestNormalizeHandlers(t *testing.T) {
	h := Handler(func(*dom.Event) {})

	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{"single", h, 1, false},
		{"bare func", func(*dom.Event) {}, 1, false},
		{"slice", []Handler{h, h}, 2, false},
		{"mixed any slice", []any{h, func(*dom.Event) {}}, 2, false},
		{"nil handler", Handler(nil), 0, true},
		{"string", "nope", 0, true},
		{"nil in slice", []any{h, nil}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeHandlers(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrNotCallable) {
					t.Errorf("err = %v, want ErrNotCallable", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestNonCallableEventValueFatal(t *testing.T) {
	_, err := New(&NodeDef{
		Tag:   "button",
		Props: Props{"click": "not a func"},
	}, quietConfig())
	if !errors.Is(err, ErrNotCallable) {
		t.Errorf("err = %v, want ErrNotCallable", err)
	}
}
