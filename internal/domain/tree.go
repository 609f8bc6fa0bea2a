package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Tree is the in-memory organization chart: a root holding groups (one of
// them flagged top-level) plus a deletion sink. It is owned by a single
// session and is not safe for concurrent use.
type Tree struct {
	root  *Node
	sink  *Node
	index map[string]*Node

	journal *journal
}

// NewTree returns a tree with an empty top-level group and an empty sink.
func NewTree() *Tree {
	t := &Tree{
		root:  &Node{ID: NewID(), Kind: KindRoot},
		sink:  &Node{ID: NewID(), Kind: KindSink, Name: "Deleted"},
		index: make(map[string]*Node),
	}
	t.index[t.root.ID] = t.root
	t.index[t.sink.ID] = t.sink

	top := NewGroup("", "")
	top.TopLevel = true
	t.insertAt(top, ContainerOf(t.root, SlotGroups), 0)
	return t
}

func (t *Tree) Root() *Node { return t.root }
func (t *Tree) Sink() *Node { return t.sink }

// TopLevel returns the group holding ministries that belong to no named group.
func (t *Tree) TopLevel() *Node {
	for _, g := range t.root.Groups {
		if g.TopLevel {
			return g
		}
	}
	return nil
}

// Lookup finds an attached node by ID.
func (t *Tree) Lookup(id string) (*Node, bool) {
	n, ok := t.index[id]
	return n, ok
}

// AddGroup appends a new group under parent: the root's groups when parent
// is the root, otherwise the parent group's subgroups.
func (t *Tree) AddGroup(parent *Node, name, description string) (*Node, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("group name is required")
	}
	g := NewGroup(name, description)
	slot := SlotSubgroups
	if parent == t.root {
		slot = SlotGroups
	}
	if err := t.Attach(g, ContainerOf(parent, slot), nil); err != nil {
		return nil, err
	}
	return g, nil
}

// AddMinistry appends a new ministry to group.
func (t *Tree) AddMinistry(group *Node, name, description string) (*Node, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("ministry name is required")
	}
	m := NewMinistry(name, description)
	if err := t.Attach(m, ContainerOf(group, SlotMinistries), nil); err != nil {
		return nil, err
	}
	return m, nil
}

// AddTag appends a tag to a ministry or a group header.
func (t *Tree) AddTag(owner *Node, text string) (*Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("tag text is required")
	}
	tag := NewTag(text)
	if err := t.Attach(tag, ContainerOf(owner, SlotTags), nil); err != nil {
		return nil, err
	}
	return tag, nil
}

// Contains reports whether ancestor is node itself or one of its ancestors.
func (t *Tree) Contains(ancestor, node *Node) bool {
	if ancestor == nil {
		return false
	}
	for n := node; n != nil; n = n.parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Attach inserts node into c immediately before the sibling before, or at
// the end when before is nil, detaching it from its current position first.
// On error the tree is left unchanged.
func (t *Tree) Attach(node *Node, c Container, before *Node) error {
	if node == nil {
		return fmt.Errorf("attach: node: %w", ErrNotFound)
	}
	if err := t.checkAttach(node, c); err != nil {
		return err
	}
	if before != nil {
		if before.parent != c.Owner || before.slot != c.Slot {
			return fmt.Errorf("attach %s before %s: %w", node.Label(), before.Label(), ErrStaleSibling)
		}
		if before == node {
			return nil
		}
	}

	prev, prevIdx, wasAttached := t.remove(node)
	idx := len(c.Nodes())
	if before != nil {
		idx = c.IndexOf(before)
	}
	t.insertAt(node, c, idx)

	t.record(func() {
		t.remove(node)
		if wasAttached {
			t.insertAt(node, prev, prevIdx)
		}
	})
	return nil
}

// Detach removes node from its parent's sequence, preserving the order of
// the remaining siblings. Detaching an unattached node is a no-op.
func (t *Tree) Detach(node *Node) error {
	if node == nil || node.parent == nil {
		return nil
	}
	if node.TopLevel {
		c, _ := node.Container()
		return &ContainmentError{Node: node, Container: c, Reason: "the top-level group cannot be detached"}
	}
	prev, prevIdx, _ := t.remove(node)
	t.record(func() {
		t.insertAt(node, prev, prevIdx)
	})
	return nil
}

func (t *Tree) checkAttach(node *Node, c Container) error {
	reject := func(reason string) error {
		return &ContainmentError{Node: node, Container: c, Reason: reason}
	}
	switch {
	case c.Owner == nil:
		return fmt.Errorf("attach %s: container owner: %w", node.Label(), ErrNotFound)
	case !c.Valid():
		return reject("owner has no such sequence")
	case !c.Slot.Accepts(node.Kind):
		return reject(fmt.Sprintf("%s does not accept %s", c.Slot, node.Kind))
	case c.Owner.TopLevel && c.Slot != SlotMinistries:
		return reject("the top-level group only holds ministries")
	case node.TopLevel && (c.Owner != t.root || node.parent != t.root):
		return reject("the top-level group cannot leave the root")
	case t.Contains(node, c.Owner):
		return reject("node would contain itself")
	}
	return nil
}

// remove unlinks node from its sequence and returns where it was.
func (t *Tree) remove(node *Node) (Container, int, bool) {
	c, ok := node.Container()
	if !ok {
		return Container{}, -1, false
	}
	seq := c.Owner.sequence(c.Slot)
	idx := c.IndexOf(node)
	if idx >= 0 {
		*seq = append((*seq)[:idx:idx], (*seq)[idx+1:]...)
	}
	node.parent = nil
	node.slot = SlotNone
	t.unindex(node)
	return c, idx, true
}

func (t *Tree) insertAt(node *Node, c Container, idx int) {
	seq := c.Owner.sequence(c.Slot)
	if idx < 0 || idx > len(*seq) {
		idx = len(*seq)
	}
	next := make([]*Node, 0, len(*seq)+1)
	next = append(next, (*seq)[:idx]...)
	next = append(next, node)
	next = append(next, (*seq)[idx:]...)
	*seq = next
	node.parent = c.Owner
	node.slot = c.Slot
	if t.attached(c.Owner) {
		t.reindex(node)
	}
}

// attached reports whether n hangs off the root or the sink.
func (t *Tree) attached(n *Node) bool {
	for x := n; x != nil; x = x.parent {
		if x == t.root || x == t.sink {
			return true
		}
	}
	return false
}

func (t *Tree) reindex(n *Node) {
	walkNode(n, 0, func(x *Node, _ int) bool {
		t.index[x.ID] = x
		return true
	})
}

func (t *Tree) unindex(n *Node) {
	walkNode(n, 0, func(x *Node, _ int) bool {
		delete(t.index, x.ID)
		return true
	})
}

// Walk visits the root's subtree depth-first in document order, then the
// sink's. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	walkNode(t.root, 0, fn)
	walkNode(t.sink, 0, fn)
}

func walkNode(n *Node, depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, s := range ownedSlots[n.Kind] {
		for _, ch := range n.Children(s) {
			walkNode(ch, depth+1, fn)
		}
	}
}
