package dragdrop

import (
	"errors"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// resolveDrop applies s to target inside one atomic mutation. Any failure
// rolls the tree back and is reported as a no-op.
func (e *Engine) resolveDrop(s *Session, target *domain.Node) Outcome {
	var outcome Outcome
	err := e.tree.Atomically(func() error {
		var err error
		outcome, err = e.apply(s, target)
		return err
	})
	if err != nil {
		e.logger.Warn("drop_failed",
			"kind", string(s.Kind),
			"source", s.Source.Label(),
			"target", target.Label(),
			"error", err,
		)
		return OutcomeNoop
	}
	return outcome
}

func (e *Engine) apply(s *Session, target *domain.Node) (Outcome, error) {
	if target == e.tree.Sink() {
		if s.Kind == DragTag {
			return OutcomeNoop, nil
		}
		return OutcomeDeleted, e.sendToSink(s.Source)
	}

	switch s.Kind {
	case DragMinistry:
		c, before := domain.ContainerOf(target, domain.SlotMinistries), e.sortTarget()
		if staysPut(s.Payload, c, before) {
			return OutcomeNoop, nil
		}
		return OutcomeMoved, e.move(s.Payload, c, before)
	case DragGroup:
		c := domain.ContainerOf(target, domain.SlotSubgroups)
		if target.TopLevel {
			c = domain.ContainerOf(e.tree.Root(), domain.SlotGroups)
		}
		if staysPut(s.Payload, c, nil) {
			return OutcomeNoop, nil
		}
		return OutcomeMoved, e.move(s.Payload, c, nil)
	case DragTag:
		outcome, err := e.toggleTag(s.Payload, domain.ContainerOf(target, domain.SlotTags))
		if outcome == OutcomeTagAdded {
			s.Payload = domain.CopyTag(s.Payload)
		}
		return outcome, err
	}
	return OutcomeNoop, nil
}

// staysPut reports whether node already sits in c at the place the drop
// would put it: anywhere in c when there is no sibling to insert before,
// otherwise directly in front of before.
func staysPut(node *domain.Node, c domain.Container, before *domain.Node) bool {
	cur, ok := node.Container()
	if !ok || cur != c {
		return false
	}
	if before == nil {
		return true
	}
	nodes := c.Nodes()
	i := c.IndexOf(node)
	return i >= 0 && i+1 < len(nodes) && nodes[i+1] == before
}

func (e *Engine) sortTarget() *domain.Node {
	if id := e.signals.sortTarget; id != "" {
		if n, ok := e.tree.Lookup(id); ok {
			return n
		}
	}
	return nil
}

// move attaches node before the given sibling, falling back to the end of
// c when the sibling has left c. A node restored from the sink takes its
// emptied deletion record with it.
func (e *Engine) move(node *domain.Node, c domain.Container, before *domain.Node) error {
	var record *domain.Node
	if p := node.Parent(); p != nil && p.Kind == domain.KindDeletionRecord {
		record = p
	}

	err := e.tree.Attach(node, c, before)
	if errors.Is(err, domain.ErrStaleSibling) {
		e.logger.Debug("sort_target_stale", "node", node.Label(), "container", c.String())
		err = e.tree.Attach(node, c, nil)
	}
	if err != nil {
		return err
	}
	if record != nil && len(record.Content) == 0 {
		return e.tree.Detach(record)
	}
	return nil
}

func (e *Engine) sendToSink(node *domain.Node) error {
	record := domain.NewDeletionRecord(e.now())
	if err := e.tree.Attach(record, domain.ContainerOf(e.tree.Sink(), domain.SlotRecords), nil); err != nil {
		return err
	}
	return e.tree.Attach(node, domain.ContainerOf(record, domain.SlotContent), nil)
}

// toggleTag removes every tag in c whose text matches tag, or appends tag
// when none does.
func (e *Engine) toggleTag(tag *domain.Node, c domain.Container) (Outcome, error) {
	var matches []*domain.Node
	for _, t := range c.Nodes() {
		if t.Name == tag.Name {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		if err := e.tree.Attach(tag, c, nil); err != nil {
			return OutcomeNoop, err
		}
		return OutcomeTagAdded, nil
	}
	for _, t := range matches {
		if err := e.tree.Detach(t); err != nil {
			return OutcomeNoop, err
		}
	}
	return OutcomeTagRemoved, nil
}
