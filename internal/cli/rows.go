package cli

import (
	"github.com/alexanderramin/orgchart/internal/cli/formatter"
	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/alexanderramin/orgchart/internal/dragdrop"
	"github.com/charmbracelet/lipgloss"
)

const (
	// gutterWidth is the marker column in front of every board row.
	gutterWidth = 2
	indentWidth = 2
)

// boardRow is one line of the board. Tags are drawn inline as chips after
// the owner's label.
type boardRow struct {
	node  *domain.Node
	depth int
	chips []tagChip
}

// tagChip is the column span [start, end) of one rendered tag.
type tagChip struct {
	tag        *domain.Node
	start, end int
}

// chartRows lays the chart out one node per row in display order: root
// groups with their ministries and subgroups, then the deletion sink and
// the nodes it holds.
func chartRows(t *domain.Tree) []boardRow {
	var rows []boardRow
	for _, g := range t.Root().Groups {
		rows = appendRows(rows, g, 0)
	}
	rows = appendRows(rows, t.Sink(), 0)
	for _, rec := range t.Sink().Records {
		for _, n := range rec.Content {
			rows = appendRows(rows, n, 1)
		}
	}
	return rows
}

func appendRows(rows []boardRow, n *domain.Node, depth int) []boardRow {
	row := boardRow{node: n, depth: depth}
	col := gutterWidth + depth*indentWidth + lipgloss.Width(plainLabel(n))
	for _, tag := range n.Tags {
		col++ // space
		w := lipgloss.Width(tag.Name) + 2
		row.chips = append(row.chips, tagChip{tag: tag, start: col, end: col + w})
		col += w
	}
	rows = append(rows, row)
	if n.Kind != domain.KindGroup {
		return rows
	}
	for _, m := range n.Ministries {
		rows = appendRows(rows, m, depth+1)
	}
	for _, sub := range n.Subgroups {
		rows = appendRows(rows, sub, depth+1)
	}
	return rows
}

// plainLabel is a row's label without styling: glyph and name.
func plainLabel(n *domain.Node) string {
	name := n.Name
	if n.TopLevel {
		name = formatter.TopLevelTitle
	}
	return formatter.KindGlyph(n.Kind) + " " + name
}

// hit maps a column on the row to the node part under it.
func (r boardRow) hit(x int) dragdrop.Hit {
	for _, c := range r.chips {
		if x >= c.start && x < c.end {
			return dragdrop.Hit{NodeID: c.tag.ID, Part: dragdrop.PartBody}
		}
	}
	if r.node.Kind == domain.KindGroup {
		return dragdrop.Hit{NodeID: r.node.ID, Part: dragdrop.PartHeader}
	}
	return dragdrop.Hit{NodeID: r.node.ID, Part: dragdrop.PartBody}
}

// rowIndex maps node IDs to their row, chips included.
type rowIndex map[string]int

func indexRows(rows []boardRow) rowIndex {
	idx := make(rowIndex, len(rows))
	for i, r := range rows {
		idx[r.node.ID] = i
		for _, c := range r.chips {
			idx[c.tag.ID] = i
		}
	}
	return idx
}

func (idx rowIndex) row(id string) (int, bool) {
	i, ok := idx[id]
	return i, ok
}

// layout exposes the rows as unit-height boxes for sort-target resolution.
func (idx rowIndex) layout() dragdrop.Layout {
	return dragdrop.RowLayout{RowHeight: 1, Rows: idx.row}
}

// pointAt is the pointer position used for row i: the upper part of the
// row, so hovering a ministry inserts before it.
func pointAt(x, i int) dragdrop.Point {
	return dragdrop.Point{X: float64(x), Y: float64(i) + 0.25}
}
