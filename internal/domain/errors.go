package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContainment is returned when an attach would create a cycle
	// or put a node into a sequence that does not accept its kind.
	ErrInvalidContainment = errors.New("invalid containment")

	// ErrStaleSibling is returned when the requested insertion point is no
	// longer a member of the target sequence.
	ErrStaleSibling = errors.New("sibling not in container")

	// ErrMutationFailure wraps a failure raised while a mutation was in flight.
	ErrMutationFailure = errors.New("mutation failure")

	ErrNotFound = errors.New("not found")
)

// ContainmentError describes a rejected attach.
type ContainmentError struct {
	Node      *Node
	Container Container
	Reason    string
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf("attach %s to %s: %s", e.Node.Label(), e.Container, e.Reason)
}

func (e *ContainmentError) Unwrap() error {
	return ErrInvalidContainment
}
