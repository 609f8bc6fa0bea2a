package cli

import (
	"fmt"

	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/alexanderramin/orgchart/internal/dragdrop"
)

// gesture is a scripted pointer drag: press on source, move over, release
// on drop. It is replayed through the same engine the board drives.
type gesture struct {
	source dragdrop.Hit
	over   dragdrop.Hit
	drop   dragdrop.Hit
	// appendAtEnd moves the pointer below every row before releasing.
	appendAtEnd bool
}

// replay runs g against a fresh engine over tree and returns the outcome.
// The drag always ends, whatever the outcome.
func (a *App) replay(tree *domain.Tree, g gesture) (dragdrop.Outcome, error) {
	rows := indexRows(chartRows(tree))
	e := a.newEngine(tree, rows.layout())
	defer e.DragEnd()

	if !e.DragStart(g.source) {
		n, _ := tree.Lookup(g.source.NodeID)
		return dragdrop.OutcomeNoop, fmt.Errorf("cannot drag %s: %w", n.Label(), dragdrop.ErrUnclassifiedDragSource)
	}

	e.DragEnter(g.over)
	y, ok := rows.row(g.over.NodeID)
	if g.appendAtEnd || !ok {
		y = len(rows)
	}
	e.DragOver(g.over, pointAt(0, y))

	if g.over != g.drop {
		e.DragLeave(g.over)
		e.DragEnter(g.drop)
	}
	return e.Drop(g.drop), nil
}

// partFor picks the part a scripted gesture grabs or targets on n when the
// user did not name one.
func partFor(n *domain.Node) dragdrop.Part {
	if n.Kind == domain.KindGroup {
		return dragdrop.PartHeader
	}
	return dragdrop.PartBody
}
