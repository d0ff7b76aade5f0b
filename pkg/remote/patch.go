package remote

import "encoding/json"

// Op is the type of patch operation.
type Op uint8

const (
	OpInsert  Op = iota + 1 // insert serialized subtree
	OpRemove                // remove node
	OpReplace               // replace node with serialized subtree
	OpSetText               // update text content
	OpSetAttr               // set attribute
)

// String returns the wire name of the Op.
func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpReplace:
		return "replace"
	case OpSetText:
		return "set-text"
	case OpSetAttr:
		return "set-attr"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the Op by its wire name.
func (op Op) MarshalJSON() ([]byte, error) {
	return json.Marshal(op.String())
}

// Patch is a single mutation applied to a shell's copy of the tree.
type Patch struct {
	Op       Op     `json:"op"`
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`
	BeforeID string `json:"beforeId,omitempty"`
	HTML     string `json:"html,omitempty"`
	Key      string `json:"key,omitempty"`
	Value    string `json:"value,omitempty"`
}

// Sink receives patch batches. Hub is the WebSocket implementation; tests
// use an in-memory recorder.
type Sink interface {
	Send(patches []Patch)
}
