package dragdrop

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// DefaultOverLogInterval bounds how often drag_over state is logged; the
// event fires continuously while the pointer moves.
const DefaultOverLogInterval = 2 * time.Second

// Engine is the drag-and-drop state machine for one tree. It is idle until
// DragStart classifies a source, and returns to idle on DragEnd. Engine is
// not safe for concurrent use; the pointer surface owns it on one goroutine.
type Engine struct {
	tree   *domain.Tree
	layout Layout
	logger *slog.Logger
	now    func() time.Time

	overLogInterval time.Duration
	lastOverLog     time.Time

	session *Session
	signals Signals
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for transitions and failed drops.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock overrides time.Now, used for deletion stamps and log throttling.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithOverLogInterval changes the drag_over log throttle.
func WithOverLogInterval(d time.Duration) Option {
	return func(e *Engine) { e.overLogInterval = d }
}

// NewEngine creates an idle engine over tree. layout may be nil, in which
// case ministries are always appended at the end of their new list.
func NewEngine(tree *domain.Tree, layout Layout, opts ...Option) *Engine {
	e := &Engine{
		tree:            tree,
		layout:          layout,
		logger:          slog.New(slog.DiscardHandler),
		now:             time.Now,
		overLogInterval: DefaultOverLogInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Tree() *domain.Tree { return e.tree }

// Session returns the active session, or nil when idle.
func (e *Engine) Session() *Session { return e.session }

func (e *Engine) Signals() *Signals { return &e.signals }

// Effect returns the operation hint of the active drag.
func (e *Engine) Effect() Effect {
	if e.session == nil {
		return EffectNone
	}
	return e.session.Effect
}

// DragStart classifies the hit as a drag source. A start while another drag
// is active ends that drag first. It returns false and stays idle when the
// hit is not draggable.
func (e *Engine) DragStart(hit Hit) bool {
	if e.session != nil {
		e.DragEnd()
	}
	s, err := e.classify(hit)
	if err != nil {
		e.logger.Warn("drag_start", "node", hit.NodeID, "part", string(hit.Part), "error", err)
		return false
	}
	e.session = s
	e.signals.dragging = true
	e.logger.Debug("drag_start", "kind", string(s.Kind), "source", s.Source.Label(), "effect", string(s.Effect))
	return true
}

func (e *Engine) classify(hit Hit) (*Session, error) {
	n, ok := e.tree.Lookup(hit.NodeID)
	if !ok {
		return nil, fmt.Errorf("node %q: %w", hit.NodeID, ErrUnclassifiedDragSource)
	}
	switch {
	case n.Kind == domain.KindGroup && hit.Part == PartHeader && !n.TopLevel:
		return &Session{Kind: DragGroup, Source: n, Payload: n, Effect: EffectMove}, nil
	case n.Kind == domain.KindMinistry:
		return &Session{Kind: DragMinistry, Source: n, Payload: n, Effect: EffectMove}, nil
	case n.Kind == domain.KindTag && n.Slot() == domain.SlotTags:
		return &Session{Kind: DragTag, Source: n, Payload: domain.CopyTag(n), Effect: EffectCopy}, nil
	}
	return nil, fmt.Errorf("%s (%s): %w", n.Label(), hit.Part, ErrUnclassifiedDragSource)
}

// DragEnter reports whether the hit is a legal drop container for the
// active drag, highlighting it when it is.
func (e *Engine) DragEnter(hit Hit) bool {
	if e.session == nil {
		return false
	}
	c := e.legalContainer(hit)
	if c == nil {
		return false
	}
	e.accept(c)
	return true
}

// DragOver re-validates the container under the pointer and, for ministry
// drags over a ministries list, updates the sort target from the layout.
func (e *Engine) DragOver(hit Hit, p Point) bool {
	if e.session == nil {
		return false
	}
	c := e.legalContainer(hit)
	if c == nil {
		return false
	}
	e.accept(c)
	if e.session.Kind == DragMinistry {
		e.updateSortTarget(hit, p)
	}
	e.logOver(p)
	return true
}

// DragLeave clears the highlight of whatever the pointer left, and the sort
// target when it left a whole ministries list.
func (e *Engine) DragLeave(hit Hit) {
	if e.session == nil {
		return
	}
	e.signals.clearValid(hit.NodeID)
	if c := e.dropContainer(hit); c != nil {
		e.signals.clearValid(c.ID)
	}
	if hit.Part == PartList {
		e.signals.sortTarget = ""
	}
}

// Drop applies the active drag to the container under hit. Invalid or
// failed drops leave the tree unchanged and report OutcomeNoop.
func (e *Engine) Drop(hit Hit) Outcome {
	s := e.session
	if s == nil {
		return OutcomeNoop
	}
	outcome := OutcomeNoop
	if c := e.legalContainer(hit); c != nil && c != s.Source {
		outcome = e.resolveDrop(s, c)
	}
	s.Outcome = outcome
	if outcome.Changed() {
		e.signals.clearAllValid()
	}
	e.logger.Debug("drop", "kind", string(s.Kind), "source", s.Source.Label(), "outcome", string(outcome))
	return outcome
}

// DragEnd returns the engine to idle. It is safe to call at any time.
func (e *Engine) DragEnd() {
	if e.session != nil {
		e.logger.Debug("drag_end", "kind", string(e.session.Kind), "outcome", string(e.session.Outcome))
	}
	e.session = nil
	e.signals.reset()
}

func (e *Engine) accept(c *domain.Node) {
	e.session.Container = c
	if e.highlights(c) {
		e.signals.markValid(c.ID)
	}
}

func (e *Engine) legalContainer(hit Hit) *domain.Node {
	c := e.dropContainer(hit)
	if c == nil || !e.legal(c) {
		return nil
	}
	return c
}

// dropContainer finds the nearest node that could receive the active drag.
func (e *Engine) dropContainer(hit Hit) *domain.Node {
	n, ok := e.tree.Lookup(hit.NodeID)
	if !ok || e.session == nil {
		return nil
	}
	sink := e.tree.Sink()
	inSink := e.tree.Contains(sink, n)

	if e.session.Kind == DragTag {
		if inSink {
			return nil
		}
		switch n.Kind {
		case domain.KindMinistry:
			return n
		case domain.KindTag:
			p := n.Parent()
			if p != nil && n.Slot() == domain.SlotTags && !p.TopLevel {
				return p
			}
		case domain.KindGroup:
			if !n.TopLevel && (hit.Part == PartHeader || hit.Part == PartTags) {
				return n
			}
		}
		return nil
	}

	if inSink {
		return sink
	}
	for x := n; x != nil; x = x.Parent() {
		if x.Kind == domain.KindGroup {
			return x
		}
	}
	return nil
}

func (e *Engine) legal(c *domain.Node) bool {
	s := e.session
	sink := e.tree.Sink()
	switch s.Kind {
	case DragGroup, DragMinistry:
		if c == sink {
			return !e.tree.Contains(sink, s.Source)
		}
		if c.Kind != domain.KindGroup {
			return false
		}
		return s.Kind == DragMinistry || !e.tree.Contains(s.Source, c)
	case DragTag:
		return c.Kind == domain.KindMinistry || (c.Kind == domain.KindGroup && !c.TopLevel)
	}
	return false
}

// highlights is false only for group drags over the top-level group, which
// are legal (promotion) but never shown as a target.
func (e *Engine) highlights(c *domain.Node) bool {
	return !(e.session.Kind == DragGroup && c.TopLevel)
}

func (e *Engine) updateSortTarget(hit Hit, p Point) {
	if e.layout == nil {
		return
	}
	list, ok := e.ministryList(hit)
	if !ok {
		return
	}
	e.signals.sortTarget = ""
	if id, found := ResolveSortTarget(e.layout.Boxes(list), e.session.Source.ID, p.Y); found {
		e.signals.sortTarget = id
	}
}

// ministryList resolves the ministries list under the pointer: the list a
// hit ministry sits in, or the list region of a hit group.
func (e *Engine) ministryList(hit Hit) (domain.Container, bool) {
	n, ok := e.tree.Lookup(hit.NodeID)
	if !ok || e.tree.Contains(e.tree.Sink(), n) {
		return domain.Container{}, false
	}
	switch {
	case n.Kind == domain.KindMinistry && n.Slot() == domain.SlotMinistries:
		return domain.ContainerOf(n.Parent(), domain.SlotMinistries), true
	case n.Kind == domain.KindGroup && hit.Part == PartList:
		return domain.ContainerOf(n, domain.SlotMinistries), true
	}
	return domain.Container{}, false
}

func (e *Engine) logOver(p Point) {
	now := e.now()
	if !e.lastOverLog.IsZero() && now.Sub(e.lastOverLog) < e.overLogInterval {
		return
	}
	e.lastOverLog = now
	s := e.session
	container := ""
	if s.Container != nil {
		container = s.Container.Label()
	}
	e.logger.Debug("drag_over",
		"kind", string(s.Kind),
		"source", s.Source.Label(),
		"container", container,
		"sort_target", e.signals.sortTarget,
		"effect", string(s.Effect),
		"y", p.Y,
	)
}
