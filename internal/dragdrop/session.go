package dragdrop

import (
	"errors"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// ErrUnclassifiedDragSource is logged when a drag starts on something that
// is neither a group header, a ministry nor a tag.
var ErrUnclassifiedDragSource = errors.New("unclassified drag source")

// DragKind is decided once when a drag starts and never changes.
type DragKind string

const (
	DragGroup    DragKind = "group"
	DragMinistry DragKind = "ministry"
	DragTag      DragKind = "tag"
)

// Effect is the operation hint shown by the pointer surface.
type Effect string

const (
	EffectNone Effect = ""
	EffectMove Effect = "move"
	EffectCopy Effect = "copy"
)

// Part identifies which region of a node the pointer is over.
type Part string

const (
	PartBody   Part = "body"
	PartHeader Part = "header"
	PartTags   Part = "tags"
	// PartList is the ministries list region of a group.
	PartList Part = "list"
)

// ValidParts is the canonical set of accepted part strings.
var ValidParts = map[string]bool{
	"body": true, "header": true, "tags": true, "list": true,
}

// Hit is what a pointer event landed on.
type Hit struct {
	NodeID string
	Part   Part
}

// Outcome reports what a drop did to the tree.
type Outcome string

const (
	OutcomeNoop       Outcome = "noop"
	OutcomeMoved      Outcome = "moved"
	OutcomeDeleted    Outcome = "deleted"
	OutcomeTagAdded   Outcome = "tag_added"
	OutcomeTagRemoved Outcome = "tag_removed"
)

// Changed reports whether the outcome mutated the tree.
func (o Outcome) Changed() bool {
	return o != OutcomeNoop && o != ""
}

// Session is the state of one gesture, from DragStart to DragEnd.
type Session struct {
	Kind   DragKind
	Source *domain.Node
	// Payload is the node that will be inserted on drop: the source itself
	// for groups and ministries, a detached copy for tags.
	Payload *domain.Node
	Effect  Effect

	// Container is the last legal drop container the pointer was over.
	Container *domain.Node
	Outcome   Outcome
}
