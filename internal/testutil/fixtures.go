package testutil

import (
	"fmt"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// Chart is a tree built for tests, with nodes addressable by name. Tags are
// registered as "Owner:text".
type Chart struct {
	Tree  *domain.Tree
	nodes map[string]*domain.Node
}

// ChartOption adds nodes under parent. At the top of NewChart parent is the
// root; ministries and tags given there go to the top-level group.
type ChartOption func(c *Chart, parent *domain.Node)

// NewChart builds a tree from options applied in order.
func NewChart(opts ...ChartOption) *Chart {
	c := &Chart{Tree: domain.NewTree(), nodes: make(map[string]*domain.Node)}
	c.nodes["@top"] = c.Tree.TopLevel()
	c.nodes["@deleted"] = c.Tree.Sink()
	for _, opt := range opts {
		opt(c, c.Tree.Root())
	}
	return c
}

// Node returns the node registered under name, panicking when absent.
func (c *Chart) Node(name string) *domain.Node {
	n, ok := c.nodes[name]
	if !ok {
		panic(fmt.Sprintf("testutil: no node named %q", name))
	}
	return n
}

// ID is shorthand for c.Node(name).ID.
func (c *Chart) ID(name string) string {
	return c.Node(name).ID
}

func (c *Chart) holder(parent *domain.Node) *domain.Node {
	if parent == c.Tree.Root() {
		return c.Tree.TopLevel()
	}
	return parent
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("testutil: building chart: %v", err))
	}
	return v
}

// WithGroup adds a group, then applies opts inside it.
func WithGroup(name string, opts ...ChartOption) ChartOption {
	return func(c *Chart, parent *domain.Node) {
		g := must(c.Tree.AddGroup(parent, name, ""))
		c.nodes[name] = g
		for _, opt := range opts {
			opt(c, g)
		}
	}
}

// WithMinistries adds untagged ministries in order.
func WithMinistries(names ...string) ChartOption {
	return func(c *Chart, parent *domain.Node) {
		owner := c.holder(parent)
		for _, name := range names {
			c.nodes[name] = must(c.Tree.AddMinistry(owner, name, ""))
		}
	}
}

// WithMinistry adds one ministry carrying the given tags.
func WithMinistry(name string, tags ...string) ChartOption {
	return func(c *Chart, parent *domain.Node) {
		m := must(c.Tree.AddMinistry(c.holder(parent), name, ""))
		c.nodes[name] = m
		for _, text := range tags {
			c.nodes[name+":"+text] = must(c.Tree.AddTag(m, text))
		}
	}
}

// WithTags adds header tags to the enclosing group.
func WithTags(tags ...string) ChartOption {
	return func(c *Chart, parent *domain.Node) {
		for _, text := range tags {
			c.nodes[parent.Name+":"+text] = must(c.Tree.AddTag(parent, text))
		}
	}
}

// WithDescription sets the enclosing node's description.
func WithDescription(d string) ChartOption {
	return func(_ *Chart, parent *domain.Node) {
		parent.Description = d
	}
}
