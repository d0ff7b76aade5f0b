package engine

import (
	"sort"
	"sync"
)

// Plugin hook interfaces. A plugin implements any subset; the engine
// dispatches each lifecycle point to the plugins that declare it, in
// descending priority order with stable tie-breaking by registration order.
type (
	// BuildHook runs for every definition the builder materializes. A
	// non-nil return substitutes the definition and is threaded into the
	// next hook and ultimately into the builder.
	BuildHook interface {
		BuildNode(def *NodeDef) *NodeDef
	}

	// RemoveHook runs for every definition the removal controller cleans
	// up, with the same substitution semantics as BuildHook.
	RemoveHook interface {
		RemoveNode(def *NodeDef) *NodeDef
	}

	// MountHook runs after the roots were structurally inserted.
	MountHook interface {
		Mount(roots []*NodeDef, ctx *MountContext)
	}

	// UnmountHook runs before the roots are detached, while they are still
	// part of the host tree.
	UnmountHook interface {
		Unmount(roots []*NodeDef, ctx *MountContext)
	}

	// DestroyHook runs at the start of instance teardown.
	DestroyHook interface {
		Destroy()
	}
)

// PluginOption configures a plugin registration.
type PluginOption func(*pluginConfig)

type pluginConfig struct {
	priority int
}

// WithPriority sets the plugin's priority (default 0). Higher priorities
// run first.
func WithPriority(priority int) PluginOption {
	return func(c *pluginConfig) { c.priority = priority }
}

// registration pairs a plugin with its priority and registration sequence.
type registration struct {
	plugin   any
	priority int
	seq      int
}

// registry is the process-wide plugin list. It is written during program
// initialization and sorted exactly once, lazily, before the first engine
// instance is constructed. The mutex only guards registration itself.
var registry struct {
	mu     sync.Mutex
	regs   []registration
	seq    int
	sorted bool
}

// RegisterPlugin adds a plugin to the process-wide pipeline. Registering
// the same plugin value twice updates its priority instead of duplicating
// it. Plugins must be comparable (pointer receivers in practice).
func RegisterPlugin(p any, opts ...PluginOption) {
	if p == nil {
		return
	}
	cfg := pluginConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i := range registry.regs {
		if registry.regs[i].plugin == p {
			registry.regs[i].priority = cfg.priority
			return
		}
	}
	registry.regs = append(registry.regs, registration{
		plugin:   p,
		priority: cfg.priority,
		seq:      registry.seq,
	})
	registry.seq++
}

// ResetPlugins clears the process-wide pipeline, including the one-shot
// sort guard. Intended for test suites.
func ResetPlugins() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.regs = nil
	registry.seq = 0
	registry.sorted = false
}

// snapshotPlugins returns the pipeline in dispatch order, performing the
// guarded one-time sort on first use.
func snapshotPlugins() []any {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if !registry.sorted {
		sort.SliceStable(registry.regs, func(i, j int) bool {
			if registry.regs[i].priority != registry.regs[j].priority {
				return registry.regs[i].priority > registry.regs[j].priority
			}
			return registry.regs[i].seq < registry.regs[j].seq
		})
		registry.sorted = true
	}
	out := make([]any, len(registry.regs))
	for i, r := range registry.regs {
		out[i] = r.plugin
	}
	return out
}
