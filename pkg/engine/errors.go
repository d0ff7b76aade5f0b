package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the authoring-error taxonomy. All are fatal to the
// call that produced them and never retried internally; they indicate a bad
// declarative input, not a transient condition.
var (
	// ErrInvalidTarget is returned when a mount target is missing or an
	// operation is addressed at something that is not a usable node.
	ErrInvalidTarget = errors.New("engine: invalid target")

	// ErrNoParent is returned when a mount strategy needs the target's
	// parent and the target has none.
	ErrNoParent = errors.New("engine: target has no usable parent")

	// ErrPropertyPath is returned when a dotted property path names a
	// missing intermediate segment.
	ErrPropertyPath = errors.New("engine: missing segment in property path")

	// ErrUnresolvedRef is returned when a reference name is not registered
	// on this instance.
	ErrUnresolvedRef = errors.New("engine: unresolved reference name")

	// ErrDuplicateRef is returned when a definition reuses a reference name
	// already registered on this instance.
	ErrDuplicateRef = errors.New("engine: duplicate reference name")

	// ErrReservedRef is returned when a definition uses an instance-reserved
	// reference name.
	ErrReservedRef = errors.New("engine: reserved reference name")

	// ErrNotCallable is returned when an event binding carries something
	// that is not a callable handler.
	ErrNotCallable = errors.New("engine: event handler is not callable")

	// ErrNilDefinition is returned when a build or removal receives nil.
	ErrNilDefinition = errors.New("engine: nil definition")

	// ErrBadDefinition is returned for definition inputs of an unsupported
	// shape, e.g. a nested array.
	ErrBadDefinition = errors.New("engine: unsupported definition shape")

	// ErrDestroyed is returned by every operation on a destroyed instance.
	ErrDestroyed = errors.New("engine: instance destroyed")
)

// OpError wraps a sentinel with the operation and, where relevant, the
// reference name or property key involved.
type OpError struct {
	Op  string // operation that failed, e.g. "addEvent"
	Key string // reference name or property key, may be empty
	Err error  // underlying sentinel
}

// Error returns the error message with operation context.
func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("engine: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("engine: %s: %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *OpError) Unwrap() error { return e.Err }

// opErr builds an OpError.
func opErr(op, key string, err error) error {
	return &OpError{Op: op, Key: key, Err: err}
}
