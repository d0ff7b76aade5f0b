package remote

import (
	"fmt"
	"log/slog"

	"github.com/ampkit-dev/ampkit/pkg/engine"
	"github.com/ampkit-dev/ampkit/pkg/render"
)

// Plugin mirrors engine lifecycle points into patches. Register it with
// engine.RegisterPlugin before constructing the instance it should observe.
//
// Identifiers are stable per materialized node: the definition's reference
// name when present, a generated one otherwise.
type Plugin struct {
	sink     Sink
	renderer *render.Renderer
	logger   *slog.Logger

	ids  map[*engine.NodeDef]string
	next int
}

// NewPlugin creates a Plugin that sends patches to sink.
func NewPlugin(sink Sink, logger *slog.Logger) *Plugin {
	if logger == nil {
		logger = slog.Default()
	}
	return &Plugin{
		sink:     sink,
		renderer: render.New(render.Config{}),
		logger:   logger,
		ids:      make(map[*engine.NodeDef]string),
	}
}

// Mount implements the engine's mount hook: every root is serialized and
// inserted into the shell's host container.
func (p *Plugin) Mount(roots []*engine.NodeDef, ctx *engine.MountContext) {
	patches := make([]Patch, 0, len(roots))
	for _, root := range roots {
		html, err := p.renderer.RenderToString(root.Node)
		if err != nil {
			p.logger.Error("root serialization failed", "error", err)
			continue
		}
		patches = append(patches, Patch{
			Op:       OpInsert,
			ID:       p.idFor(root),
			ParentID: "host",
			HTML:     html,
		})
	}
	p.sink.Send(patches)
}

// Unmount implements the engine's unmount hook.
func (p *Plugin) Unmount(roots []*engine.NodeDef, ctx *engine.MountContext) {
	patches := make([]Patch, 0, len(roots))
	for _, root := range roots {
		patches = append(patches, Patch{Op: OpRemove, ID: p.idFor(root)})
	}
	p.sink.Send(patches)
}

// RemoveNode implements the engine's removal hook. Only nodes the plugin
// has already identified produce a patch; cleanup of children the shell
// removed together with their subtree root needs no mirroring.
func (p *Plugin) RemoveNode(def *engine.NodeDef) *engine.NodeDef {
	if id, ok := p.ids[def]; ok {
		p.sink.Send([]Patch{{Op: OpRemove, ID: id}})
		delete(p.ids, def)
	}
	return nil
}

// Destroy implements the engine's destroy hook.
func (p *Plugin) Destroy() {
	patches := make([]Patch, 0, len(p.ids))
	for _, id := range p.ids {
		patches = append(patches, Patch{Op: OpRemove, ID: id})
	}
	p.ids = make(map[*engine.NodeDef]string)
	p.sink.Send(patches)
}

// idFor returns the stable identifier for a materialized node.
func (p *Plugin) idFor(d *engine.NodeDef) string {
	if id, ok := p.ids[d]; ok {
		return id
	}
	id := d.Ref
	if id == "" {
		p.next++
		id = fmt.Sprintf("n%d", p.next)
	}
	p.ids[d] = id
	return id
}
