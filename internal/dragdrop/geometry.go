package dragdrop

import (
	"math"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// Point is a pointer position in screen coordinates (y grows downward).
type Point struct {
	X, Y float64
}

// Box is the rendered extent of one sibling along the vertical axis.
type Box struct {
	NodeID string
	Top    float64
	Height float64
}

func (b Box) mid() float64 { return b.Top + b.Height/2 }

// Layout supplies sibling geometry for a container while a drag is in flight.
type Layout interface {
	Boxes(c domain.Container) []Box
}

// LayoutFunc adapts a plain function to Layout.
type LayoutFunc func(c domain.Container) []Box

func (f LayoutFunc) Boxes(c domain.Container) []Box { return f(c) }

// ResolveSortTarget picks the sibling the dragged node should be inserted
// before: among boxes whose midpoint lies below y, the one nearest to y.
// The dragged node's own box is skipped. ok is false when no box qualifies,
// meaning insert at the end. Ties resolve to the first box seen.
func ResolveSortTarget(boxes []Box, draggedID string, y float64) (id string, ok bool) {
	best := math.Inf(-1)
	for _, b := range boxes {
		if b.NodeID == draggedID {
			continue
		}
		offset := y - b.mid()
		if best < offset && offset < 0 {
			best = offset
			id, ok = b.NodeID, true
		}
	}
	return id, ok
}

// RowLayout lays containers out as uniform rows, the way the board renders
// them: each member occupies RowHeight units starting at the row index the
// Rows function returns for it.
type RowLayout struct {
	RowHeight float64
	Rows      func(nodeID string) (row int, ok bool)
}

func (l RowLayout) Boxes(c domain.Container) []Box {
	h := l.RowHeight
	if h <= 0 {
		h = 1
	}
	nodes := c.Nodes()
	boxes := make([]Box, 0, len(nodes))
	for _, n := range nodes {
		row, ok := l.Rows(n.ID)
		if !ok {
			continue
		}
		boxes = append(boxes, Box{NodeID: n.ID, Top: float64(row) * h, Height: h})
	}
	return boxes
}
