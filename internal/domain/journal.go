package domain

import "fmt"

// journal collects inverse operations for the mutations performed inside
// Tree.Atomically.
type journal struct {
	undo []func()
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

func (t *Tree) record(undo func()) {
	if t.journal != nil {
		t.journal.undo = append(t.journal.undo, undo)
	}
}

// Atomically runs fn so that its attach/detach calls either all take effect
// or none do. When fn returns an error or panics, every mutation it made is
// undone in reverse order; a panic is reported as ErrMutationFailure.
// Nested calls join the outermost one.
func (t *Tree) Atomically(fn func() error) (err error) {
	if t.journal != nil {
		return fn()
	}
	j := &journal{}
	t.journal = j
	defer func() {
		t.journal = nil
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrMutationFailure, p)
		}
		if err != nil {
			j.rollback()
		}
	}()
	return fn()
}
