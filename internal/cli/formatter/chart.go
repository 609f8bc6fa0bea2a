package formatter

import (
	"strings"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// TopLevelTitle is how the unnamed top-level group is displayed.
const TopLevelTitle = "(top level)"

// ChartItems flattens a tree into display items: root groups in order,
// each followed by its ministries and subgroups, then the deletion sink.
// Tags are shown as the detail badge of their owner.
func ChartItems(t *domain.Tree) []TreeItem {
	var items []TreeItem
	groups := t.Root().Groups
	for i, g := range groups {
		items = appendNode(items, g, 0, i == len(groups)-1 && len(t.Sink().Records) == 0, false)
	}
	if records := t.Sink().Records; len(records) > 0 {
		items = append(items, TreeItem{
			Title:  StyleRed.Render(t.Sink().Name),
			IsLast: true,
			Detail: pluralize(len(records), "record"),
		})
		for i, rec := range records {
			for _, n := range rec.Content {
				items = appendNode(items, n, 1, i == len(records)-1, true)
			}
		}
	}
	return items
}

func appendNode(items []TreeItem, n *domain.Node, level int, last, muted bool) []TreeItem {
	items = append(items, TreeItem{
		Title:  NodeTitle(n),
		Level:  level,
		IsLast: last,
		Detail: TagList(n),
		Muted:  muted,
	})
	if n.Kind != domain.KindGroup {
		return items
	}
	children := append(append([]*domain.Node{}, n.Ministries...), n.Subgroups...)
	for i, ch := range children {
		items = appendNode(items, ch, level+1, i == len(children)-1, muted)
	}
	return items
}

// NodeTitle renders a glyph and the node's name in its kind style.
func NodeTitle(n *domain.Node) string {
	name := n.Name
	if n.TopLevel {
		name = TopLevelTitle
	}
	title := KindGlyph(n.Kind) + " " + KindStyle(n.Kind).Render(name)
	if n.Description != "" {
		title += "  " + Dim(n.Description)
	}
	return title
}

// TagList joins a node's tag texts, or returns "" when it has none.
func TagList(n *domain.Node) string {
	if len(n.Tags) == 0 {
		return ""
	}
	texts := make([]string, len(n.Tags))
	for i, t := range n.Tags {
		texts[i] = t.Name
	}
	return strings.Join(texts, " · ")
}
