// Package dom provides the host rendering substrate for AmpKit.
//
// It implements an in-memory document tree with the small set of primitives
// the engine consumes: element and text creation with optional namespace,
// document fragments, the structural operations (insert-before, append,
// replace, remove), attribute access, property existence checks and
// assignment, and event subscription with synchronous dispatch.
//
// The tree deliberately mirrors browser DOM semantics where the engine
// depends on them: moving an attached node detaches it first, inserting a
// fragment splices its children, and properties are distinct from attributes
// (some properties, like duration on a media element, are read-only and
// reject assignment).
package dom
