package dragdrop

// Signals are the presentation flags the pointer surface renders: which
// containers are highlighted as valid, which sibling is the sort target, and
// whether a drag is in flight.
type Signals struct {
	valid      map[string]bool
	sortTarget string
	dragging   bool
}

// Valid reports whether the node is currently highlighted as a drop target.
func (s *Signals) Valid(id string) bool { return s.valid[id] }

// ValidIDs returns the highlighted node IDs in no particular order.
func (s *Signals) ValidIDs() []string {
	ids := make([]string, 0, len(s.valid))
	for id := range s.valid {
		ids = append(ids, id)
	}
	return ids
}

// SortTarget returns the sibling the dragged ministry would be inserted
// before, or "" for none.
func (s *Signals) SortTarget() string { return s.sortTarget }

// Dragging reports whether a drag session is active.
func (s *Signals) Dragging() bool { return s.dragging }

func (s *Signals) markValid(id string) {
	if s.valid == nil {
		s.valid = make(map[string]bool)
	}
	s.valid[id] = true
}

func (s *Signals) clearValid(id string) { delete(s.valid, id) }

func (s *Signals) clearAllValid() { s.valid = nil }

func (s *Signals) reset() {
	s.valid = nil
	s.sortTarget = ""
	s.dragging = false
}
