// Package remote mirrors engine lifecycle mutations to attached player
// shells.
//
// A Plugin registered with the engine observes mount, unmount, removal, and
// destroy, turns each into Patch operations, and hands them to a Sink. The
// Hub sink broadcasts patches as JSON over WebSocket to every connected
// shell, so an embedding page can keep its copy of the player tree current
// without polling.
package remote
