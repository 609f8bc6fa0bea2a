package document

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// Build rehydrates a live tree from a document, the inverse of Serialize.
// The returned tree has an empty deletion sink.
func Build(doc Document) (*domain.Tree, error) {
	if errs := Validate(&doc); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
	}

	t := domain.NewTree()
	if err := addMinistries(t, t.TopLevel(), doc.Ministries); err != nil {
		return nil, err
	}
	for _, g := range doc.Groups {
		if err := addGroup(t, t.Root(), g); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func addGroup(t *domain.Tree, parent *domain.Node, g Group) error {
	n, err := t.AddGroup(parent, g.Name, g.Description)
	if err != nil {
		return fmt.Errorf("group %q: %w", g.Name, err)
	}
	if err := addTags(t, n, g.Tags); err != nil {
		return err
	}
	if err := addMinistries(t, n, g.Ministries); err != nil {
		return err
	}
	for _, sub := range g.Groups {
		if err := addGroup(t, n, sub); err != nil {
			return err
		}
	}
	return nil
}

func addMinistries(t *domain.Tree, group *domain.Node, ms []Ministry) error {
	for _, m := range ms {
		n, err := t.AddMinistry(group, m.Name, m.Description)
		if err != nil {
			return fmt.Errorf("ministry %q: %w", m.Name, err)
		}
		if err := addTags(t, n, m.Tags); err != nil {
			return err
		}
	}
	return nil
}

func addTags(t *domain.Tree, owner *domain.Node, tags []string) error {
	for _, text := range tags {
		if _, err := t.AddTag(owner, text); err != nil {
			return fmt.Errorf("tag %q on %s: %w", text, owner.Label(), err)
		}
	}
	return nil
}
