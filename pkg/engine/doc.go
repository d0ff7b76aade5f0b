// Package engine implements AmpKit's declarative UI-tree construction and
// lifecycle engine.
//
// Callers describe a widget as a NodeDef (or an ordered slice of them); the
// engine materializes the description into live substrate nodes, tracks
// every reference name and event handler it created, relocates the tree in a
// host document with exact restoration, supports structural replacement and
// removal with guaranteed cleanup, and runs a priority-ordered plugin
// pipeline at every lifecycle point.
//
// # Construction
//
//	eng, err := engine.New(&engine.NodeDef{
//	    Ref: "btn",
//	    Tag: "button",
//	    Props: engine.Props{"click": engine.Handler(onClick)},
//	    Nodes: "Hi",
//	}, engine.Config{})
//
// The engine is single-threaded and synchronous: every operation runs to
// completion or returns an error, and a failed call leaves partially applied
// state for the caller to reason about. Re-entering the same instance's
// builder from inside one of its own plugin hooks is unsupported.
package engine
