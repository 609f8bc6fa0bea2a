package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// Reference forms accepted on the command line.
const (
	refTopLevel = "@top"
	refDeleted  = "@deleted"
)

var (
	errRefNotFound  = errors.New("no such node")
	errRefAmbiguous = errors.New("ambiguous reference")
)

// resolveRef resolves a node reference which can be:
//   - @top or @deleted
//   - a node ID
//   - Owner:tag, a tag by text on the owner named by the left side
//   - Group/Sub/Ministry, a path from a root group
//   - a bare group or ministry name, when unique
func resolveRef(t *domain.Tree, ref string) (*domain.Node, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, fmt.Errorf("node reference is required")
	case ref == refTopLevel:
		return t.TopLevel(), nil
	case ref == refDeleted:
		return t.Sink(), nil
	}
	if n, ok := t.Lookup(ref); ok {
		return n, nil
	}
	if owner, text, ok := strings.Cut(ref, ":"); ok {
		return resolveTag(t, owner, text)
	}
	if strings.Contains(ref, "/") {
		return resolvePath(t, strings.Split(ref, "/"))
	}
	return resolveName(t, ref)
}

func resolveTag(t *domain.Tree, ownerRef, text string) (*domain.Node, error) {
	owner, err := resolveRef(t, ownerRef)
	if err != nil {
		return nil, err
	}
	for _, tag := range owner.Tags {
		if tag.Name == text {
			return tag, nil
		}
	}
	return nil, fmt.Errorf("%w: tag %q on %s", errRefNotFound, text, owner.Label())
}

func resolvePath(t *domain.Tree, segments []string) (*domain.Node, error) {
	var cur *domain.Node
	for i, seg := range segments {
		var candidates []*domain.Node
		switch {
		case i == 0 && seg == refTopLevel:
			cur = t.TopLevel()
			continue
		case i == 0:
			candidates = t.Root().Groups
		default:
			candidates = append(append([]*domain.Node{}, cur.Subgroups...), cur.Ministries...)
		}
		next, err := pickByName(candidates, seg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.Join(segments[:i+1], "/"), err)
		}
		cur = next
	}
	return cur, nil
}

// resolveName searches every group and ministry, deleted ones included,
// so a deleted node can be dragged back out by name.
func resolveName(t *domain.Tree, name string) (*domain.Node, error) {
	var all []*domain.Node
	t.Walk(func(n *domain.Node, _ int) bool {
		if (n.Kind == domain.KindGroup && !n.TopLevel) || n.Kind == domain.KindMinistry {
			all = append(all, n)
		}
		return true
	})
	n, err := pickByName(all, name)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	return n, nil
}

// pickByName prefers exact matches and falls back to case-insensitive ones.
func pickByName(nodes []*domain.Node, name string) (*domain.Node, error) {
	match := func(eq func(a, b string) bool) []*domain.Node {
		var out []*domain.Node
		for _, n := range nodes {
			if n.Name != "" && eq(n.Name, name) {
				out = append(out, n)
			}
		}
		return out
	}

	matches := match(func(a, b string) bool { return a == b })
	if len(matches) == 0 {
		matches = match(strings.EqualFold)
	}

	switch len(matches) {
	case 0:
		return nil, errRefNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w (%d matches, use a Group/Name path)", errRefAmbiguous, len(matches))
	}
}
