package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Node is the universal element of the organization tree. Which child
// sequences are in use depends on Kind.
type Node struct {
	ID          string
	Kind        Kind
	Name        string
	Description string
	TopLevel    bool
	DeletedAt   *time.Time // deletion records only

	Groups     []*Node // root
	Tags       []*Node // group header, ministry
	Ministries []*Node // group
	Subgroups  []*Node // group
	Records    []*Node // sink
	Content    []*Node // deletion record, at most one entry

	parent *Node
	slot   Slot
}

// NewID returns a fresh node identifier.
func NewID() string {
	return uuid.New().String()
}

func NewGroup(name, description string) *Node {
	return &Node{ID: NewID(), Kind: KindGroup, Name: name, Description: description}
}

func NewMinistry(name, description string) *Node {
	return &Node{ID: NewID(), Kind: KindMinistry, Name: name, Description: description}
}

func NewTag(text string) *Node {
	return &Node{ID: NewID(), Kind: KindTag, Name: text}
}

// NewDeletionRecord returns an empty record stamped with the deletion time.
func NewDeletionRecord(at time.Time) *Node {
	return &Node{ID: NewID(), Kind: KindDeletionRecord, DeletedAt: &at}
}

// CopyTag returns a detached tag with the same text and a new ID. Tags are
// duplicated rather than moved when dragged between owners.
func CopyTag(tag *Node) *Node {
	return NewTag(tag.Name)
}

// Parent returns the node owning the sequence n sits in, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Slot returns the sequence of the parent n sits in.
func (n *Node) Slot() Slot { return n.slot }

// Container returns the sequence n currently belongs to.
func (n *Node) Container() (Container, bool) {
	if n.parent == nil {
		return Container{}, false
	}
	return Container{Owner: n.parent, Slot: n.slot}, true
}

// Children returns the live sequence for s, or nil when n does not own s.
// Callers must not modify the returned slice.
func (n *Node) Children(s Slot) []*Node {
	if p := n.sequence(s); p != nil {
		return *p
	}
	return nil
}

func (n *Node) sequence(s Slot) *[]*Node {
	if !n.Kind.Owns(s) {
		return nil
	}
	switch s {
	case SlotGroups:
		return &n.Groups
	case SlotTags:
		return &n.Tags
	case SlotMinistries:
		return &n.Ministries
	case SlotSubgroups:
		return &n.Subgroups
	case SlotRecords:
		return &n.Records
	case SlotContent:
		return &n.Content
	}
	return nil
}

// Label is a short human-readable description used in logs and errors.
func (n *Node) Label() string {
	if n == nil {
		return "<nil>"
	}
	if n.Name == "" {
		return string(n.Kind)
	}
	return fmt.Sprintf("%s %q", n.Kind, n.Name)
}

// Container is one ordered child sequence of an owner node.
type Container struct {
	Owner *Node
	Slot  Slot
}

// ContainerOf is shorthand for Container{Owner: owner, Slot: slot}.
func ContainerOf(owner *Node, slot Slot) Container {
	return Container{Owner: owner, Slot: slot}
}

// Valid reports whether the owner carries the slot.
func (c Container) Valid() bool {
	return c.Owner != nil && c.Owner.Kind.Owns(c.Slot)
}

// Nodes returns the current members in order.
func (c Container) Nodes() []*Node {
	if c.Owner == nil {
		return nil
	}
	return c.Owner.Children(c.Slot)
}

// IndexOf returns the position of n in the sequence, or -1.
func (c Container) IndexOf(n *Node) int {
	for i, x := range c.Nodes() {
		if x == n {
			return i
		}
	}
	return -1
}

func (c Container) String() string {
	return fmt.Sprintf("%s.%s", c.Owner.Label(), c.Slot)
}
