package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/orgchart/internal/cli/formatter"
	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/alexanderramin/orgchart/internal/dragdrop"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// boardHeaderHeight is the number of screen lines above the first row.
const boardHeaderHeight = 2

type boardKeyMap struct {
	Save   key.Binding
	Cancel key.Binding
	Quit   key.Binding
	Help   key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.Quit, k.Help}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Cancel},
		{k.Quit, k.Help},
	}
}

// boardModel is the mouse-driven pointer surface. It owns the tree and the
// engine on the bubbletea update goroutine.
type boardModel struct {
	app    *App
	ctx    context.Context
	tree   *domain.Tree
	engine *dragdrop.Engine
	rows   []boardRow
	index  rowIndex

	vp   viewport.Model
	help help.Model
	keys boardKeyMap

	width, height int

	pressed bool
	over    *dragdrop.Hit
	// overList is the owner of the ministries list under the pointer.
	overList string

	status string
	dirty  bool
}

func newBoardModel(ctx context.Context, app *App, tree *domain.Tree) *boardModel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := &boardModel{
		app:    app,
		ctx:    ctx,
		tree:   tree,
		vp:     vp,
		help:   help.New(),
		keys:   newBoardKeyMap(),
		status: "drag a ministry, group header or tag",
	}
	m.engine = app.newEngine(tree, dragdrop.LayoutFunc(func(c domain.Container) []dragdrop.Box {
		return m.index.layout().Boxes(c)
	}))
	m.refresh()
	return m
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Rearrange the chart with the mouse",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, app)
		},
	}
}

func runBoard(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	tree, err := app.loadChart(ctx)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newBoardModel(ctx, app, tree),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	if m, ok := final.(*boardModel); ok && m.dirty {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("Unsaved changes were discarded."))
	}
	return nil
}

func (m *boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.engine.DragEnd()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.cancel()
			return m, nil
		case key.Matches(msg, m.keys.Save):
			m.save()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if tea.MouseEvent(msg).IsWheel() {
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.press(msg.X, msg.Y)
			}
		case tea.MouseActionMotion:
			if m.pressed {
				m.moveTo(msg.X, msg.Y)
				m.render()
			}
		case tea.MouseActionRelease:
			if m.pressed {
				m.release(msg.X, msg.Y)
			}
		}
		return m, nil
	}
	return m, nil
}

// rowAt maps a screen line to a row index.
func (m *boardModel) rowAt(y int) (int, bool) {
	i := y - boardHeaderHeight + m.vp.YOffset
	if i < 0 || i >= len(m.rows) {
		return 0, false
	}
	return i, true
}

func (m *boardModel) press(x, y int) {
	i, ok := m.rowAt(y)
	if !ok {
		return
	}
	// A press while still pressed means the release happened outside the
	// window; that drag is abandoned.
	if m.pressed {
		m.endDrag()
	}
	hit := m.rows[i].hit(x)
	if !m.engine.DragStart(hit) {
		m.endDrag()
		n, _ := m.tree.Lookup(hit.NodeID)
		m.status = "cannot drag " + n.Label()
		m.render()
		return
	}
	s := m.engine.Session()
	m.pressed = true
	m.status = fmt.Sprintf("%s %s", s.Effect, s.Source.Label())
	m.moveTo(x, y)
	m.render()
}

// moveTo replays the enter, leave and over events a browser would fire as
// the pointer crosses from one row to another.
func (m *boardModel) moveTo(x, y int) {
	i, ok := m.rowAt(y)
	if !ok {
		m.leave()
		return
	}
	hit := m.rows[i].hit(x)
	if m.over == nil || *m.over != hit {
		if m.over != nil {
			m.engine.DragLeave(*m.over)
		}
		m.engine.DragEnter(hit)
		m.over = &hit
	}
	if list := listOwner(m.rows[i].node); list != m.overList {
		m.leaveList()
		m.overList = list
	}
	m.engine.DragOver(hit, pointAt(x, i))
}

func (m *boardModel) leave() {
	if m.over != nil {
		m.engine.DragLeave(*m.over)
		m.over = nil
	}
	m.leaveList()
}

func (m *boardModel) leaveList() {
	if m.overList != "" {
		m.engine.DragLeave(dragdrop.Hit{NodeID: m.overList, Part: dragdrop.PartList})
		m.overList = ""
	}
}

func (m *boardModel) release(x, y int) {
	s := m.engine.Session()
	if s == nil {
		m.endDrag()
		m.status = "no change"
		m.refresh()
		return
	}
	label := s.Source.Label()
	outcome := dragdrop.OutcomeNoop
	if i, ok := m.rowAt(y); ok {
		m.moveTo(x, y)
		outcome = m.engine.Drop(m.rows[i].hit(x))
	}
	m.endDrag()

	if outcome.Changed() {
		m.dirty = true
		m.status = outcomeVerb(outcome) + " " + label
	} else {
		m.status = "no change"
	}
	m.refresh()
}

func (m *boardModel) cancel() {
	if m.pressed {
		m.status = "drag cancelled"
	}
	m.endDrag()
	m.render()
}

func (m *boardModel) endDrag() {
	m.engine.DragEnd()
	m.pressed = false
	m.over = nil
	m.overList = ""
}

func (m *boardModel) save() {
	snap, err := m.app.Chart.Persist(m.ctx, m.tree)
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.dirty = false
	m.status = "saved snapshot " + formatter.TruncID(snap.ID)
}

// listOwner is the group whose ministries list n sits in, if any.
func listOwner(n *domain.Node) string {
	if n.Kind == domain.KindMinistry && n.Slot() == domain.SlotMinistries {
		return n.Parent().ID
	}
	return ""
}

func (m *boardModel) resize() {
	footer := 1 + lipgloss.Height(m.help.View(m.keys))
	m.vp.Width = m.width
	m.vp.Height = max(m.height-boardHeaderHeight-footer, 1)
	m.render()
}

// refresh rebuilds the rows after the tree changed.
func (m *boardModel) refresh() {
	m.rows = chartRows(m.tree)
	m.index = indexRows(m.rows)
	m.render()
}

func (m *boardModel) render() {
	sig := m.engine.Signals()
	var source *domain.Node
	if s := m.engine.Session(); s != nil {
		source = s.Source
	}

	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		var b strings.Builder
		if sig.SortTarget() == r.node.ID {
			b.WriteString(formatter.StyleSortTarget.Render("→ "))
		} else {
			b.WriteString(strings.Repeat(" ", gutterWidth))
		}
		b.WriteString(strings.Repeat(" ", r.depth*indentWidth))

		style := formatter.KindStyle(r.node.Kind)
		switch {
		case r.node == source:
			style = formatter.StyleDragging
		case sig.Valid(r.node.ID):
			style = formatter.StyleValid
		}
		b.WriteString(style.Render(plainLabel(r.node)))

		for _, c := range r.chips {
			chip := formatter.StyleTag
			if c.tag == source {
				chip = formatter.StyleDragging
			}
			b.WriteString(" " + chip.Render("["+c.tag.Name+"]"))
		}
		lines[i] = b.String()
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
}

func (m *boardModel) View() string {
	title := formatter.StyleHeader.Render("ORGCHART")
	if m.engine.Signals().Dragging() {
		title += "  " + formatter.StylePurple.Render("dragging ("+string(m.engine.Effect())+")")
	}
	sep := formatter.StyleDim.Render(strings.Repeat("─", max(m.width, 20)))

	status := m.status
	if m.dirty {
		status = formatter.StyleYellow.Render("● unsaved") + "  " + status
	}

	return title + "\n" + sep + "\n" + m.vp.View() + "\n" + status + "\n" + m.help.View(m.keys)
}
