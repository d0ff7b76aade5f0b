package remote

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ampkit-dev/ampkit/pkg/dom"
	"github.com/ampkit-dev/ampkit/pkg/engine"
)

// recorderSink captures every batch in order.
type recorderSink struct {
	batches [][]Patch
}

func (r *recorderSink) Send(patches []Patch) {
	r.batches = append(r.batches, patches)
}

func mountedEngine(t *testing.T, def any) (*engine.Engine, *recorderSink) {
	t.Helper()
	t.Cleanup(engine.ResetPlugins)
	engine.ResetPlugins()

	sink := &recorderSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine.RegisterPlugin(NewPlugin(sink, logger))

	doc := dom.NewDocument()
	host := doc.CreateElement("body")
	e, err := engine.New(def, engine.Config{
		Document: doc,
		Logger:   logger,
		Mount:    &engine.MountOptions{Target: host},
	})
	if err != nil {
		t.Fatal(err)
	}
	return e, sink
}

func TestPluginEmitsInsertOnMount(t *testing.T) {
	_, sink := mountedEngine(t, &engine.NodeDef{
		Tag:   "div",
		Ref:   "player",
		Props: engine.Props{"class": "shell"},
		Nodes: "hi",
	})

	if len(sink.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(sink.batches))
	}
	batch := sink.batches[0]
	if len(batch) != 1 {
		t.Fatalf("patches = %d, want 1", len(batch))
	}
	p := batch[0]
	if p.Op != OpInsert || p.ID != "player" || p.ParentID != "host" {
		t.Errorf("patch = %+v", p)
	}
	if p.HTML != `<div class="shell">hi</div>` {
		t.Errorf("html = %q", p.HTML)
	}
}

func TestPluginEmitsOneInsertPerRoot(t *testing.T) {
	_, sink := mountedEngine(t, []*engine.NodeDef{
		{Tag: "header", Ref: "top"},
		{Tag: "footer"},
	})

	batch := sink.batches[0]
	if len(batch) != 2 {
		t.Fatalf("patches = %d, want 2", len(batch))
	}
	if batch[0].ID != "top" {
		t.Errorf("first id = %q, want the reference name", batch[0].ID)
	}
	if batch[1].ID == "" || batch[1].ID == "top" {
		t.Errorf("second id = %q, want a generated one", batch[1].ID)
	}
}

func TestPluginEmitsRemoveOnUnmount(t *testing.T) {
	e, sink := mountedEngine(t, &engine.NodeDef{Tag: "div", Ref: "player"})
	if err := e.Unmount(); err != nil {
		t.Fatal(err)
	}

	if len(sink.batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(sink.batches))
	}
	p := sink.batches[1][0]
	if p.Op != OpRemove || p.ID != "player" {
		t.Errorf("patch = %+v", p)
	}
}

func TestPluginStableIDAcrossRemount(t *testing.T) {
	e, sink := mountedEngine(t, &engine.NodeDef{Tag: "div"})
	id := sink.batches[0][0].ID

	if err := e.Unmount(); err != nil {
		t.Fatal(err)
	}
	if err := e.Mount(nil); err != nil {
		t.Fatal(err)
	}

	if got := sink.batches[2][0].ID; got != id {
		t.Errorf("re-mount id = %q, want %q", got, id)
	}
}
