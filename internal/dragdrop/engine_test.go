package dragdrop

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/alexanderramin/orgchart/internal/testutil"
)

// listLayout stacks every container's members in 20-unit rows, so member i
// has its midpoint at 20*i + 10.
func listLayout() Layout {
	return LayoutFunc(func(c domain.Container) []Box {
		var boxes []Box
		for i, n := range c.Nodes() {
			boxes = append(boxes, Box{NodeID: n.ID, Top: float64(i * 20), Height: 20})
		}
		return boxes
	})
}

func names(nodes []*domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func sampleChart() *testutil.Chart {
	return testutil.NewChart(
		testutil.WithMinistries("A", "B"),
		testutil.WithGroup("Ops",
			testutil.WithTags("core"),
			testutil.WithMinistry("C", "urgent"),
			testutil.WithGroup("Sub", testutil.WithMinistries("D")),
		),
		testutil.WithGroup("HR", testutil.WithMinistry("E")),
	)
}

func newTestEngine(chart *testutil.Chart, opts ...Option) *Engine {
	return NewEngine(chart.Tree, listLayout(), opts...)
}

func body(c *testutil.Chart, name string) Hit   { return Hit{NodeID: c.ID(name), Part: PartBody} }
func header(c *testutil.Chart, name string) Hit { return Hit{NodeID: c.ID(name), Part: PartHeader} }

func TestDragStart_Classification(t *testing.T) {
	chart := sampleChart()

	tests := []struct {
		name       string
		hit        Hit
		wantOK     bool
		wantKind   DragKind
		wantEffect Effect
	}{
		{"group header", header(chart, "Ops"), true, DragGroup, EffectMove},
		{"group body is not a handle", body(chart, "Ops"), false, "", EffectNone},
		{"top-level group header", header(chart, "@top"), false, "", EffectNone},
		{"ministry", body(chart, "C"), true, DragMinistry, EffectMove},
		{"ministry tag", body(chart, "C:urgent"), true, DragTag, EffectCopy},
		{"group header tag", body(chart, "Ops:core"), true, DragTag, EffectCopy},
		{"sink", body(chart, "@deleted"), false, "", EffectNone},
		{"unknown node", Hit{NodeID: "missing", Part: PartBody}, false, "", EffectNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(chart)
			ok := e.DragStart(tt.hit)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantOK, e.Signals().Dragging())
			assert.Equal(t, tt.wantEffect, e.Effect())
			if tt.wantOK {
				require.NotNil(t, e.Session())
				assert.Equal(t, tt.wantKind, e.Session().Kind)
			} else {
				assert.Nil(t, e.Session())
			}
		})
	}
}

func TestDragStart_TagPayloadIsACopy(t *testing.T) {
	chart := sampleChart()
	e := newTestEngine(chart)

	require.True(t, e.DragStart(body(chart, "C:urgent")))
	s := e.Session()
	assert.Same(t, chart.Node("C:urgent"), s.Source)
	assert.NotEqual(t, s.Source.ID, s.Payload.ID)
	assert.Equal(t, "urgent", s.Payload.Name)
	assert.Nil(t, s.Payload.Parent())
}

func TestDragStart_UnclassifiedIsLogged(t *testing.T) {
	chart := sampleChart()
	var buf bytes.Buffer
	e := newTestEngine(chart, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	assert.False(t, e.DragStart(body(chart, "Ops")))
	assert.Contains(t, buf.String(), "unclassified drag source")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestDragStart_WhileDraggingEndsPreviousSession(t *testing.T) {
	chart := sampleChart()
	e := newTestEngine(chart)

	require.True(t, e.DragStart(body(chart, "A")))
	require.True(t, e.DragEnter(body(chart, "Ops")))
	require.True(t, e.Signals().Valid(chart.ID("Ops")))

	require.True(t, e.DragStart(body(chart, "C")))
	assert.Same(t, chart.Node("C"), e.Session().Source)
	assert.False(t, e.Signals().Valid(chart.ID("Ops")))
}

func TestDragEnter_Legality(t *testing.T) {
	chart := sampleChart()

	tests := []struct {
		name        string
		source      Hit
		target      Hit
		wantOK      bool
		highlighted string
	}{
		{"group onto sibling group", header(chart, "HR"), body(chart, "Ops"), true, "Ops"},
		{"group onto itself", header(chart, "Ops"), header(chart, "Ops"), false, ""},
		{"group onto own descendant", header(chart, "Ops"), body(chart, "D"), false, ""},
		{"group onto top-level is legal but unlit", header(chart, "Sub"), body(chart, "A"), true, ""},
		{"group onto sink", header(chart, "Sub"), body(chart, "@deleted"), true, "@deleted"},
		{"ministry onto top-level", body(chart, "C"), body(chart, "A"), true, "@top"},
		{"ministry onto nested group", body(chart, "A"), body(chart, "D"), true, "Sub"},
		{"ministry onto sink", body(chart, "A"), body(chart, "@deleted"), true, "@deleted"},
		{"tag onto ministry", body(chart, "C:urgent"), body(chart, "A"), true, "A"},
		{"tag onto another tag's ministry", body(chart, "Ops:core"), body(chart, "C:urgent"), true, "C"},
		{"tag onto group header", body(chart, "C:urgent"), header(chart, "HR"), true, "HR"},
		{"tag onto group body", body(chart, "C:urgent"), body(chart, "HR"), false, ""},
		{"tag onto top-level", body(chart, "C:urgent"), header(chart, "@top"), false, ""},
		{"tag onto sink", body(chart, "C:urgent"), body(chart, "@deleted"), false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(chart)
			require.True(t, e.DragStart(tt.source))

			assert.Equal(t, tt.wantOK, e.DragEnter(tt.target))
			if tt.highlighted != "" {
				assert.True(t, e.Signals().Valid(chart.ID(tt.highlighted)))
				assert.Len(t, e.Signals().ValidIDs(), 1)
			} else {
				assert.Empty(t, e.Signals().ValidIDs())
			}
		})
	}
}

func TestEventsOutsideSessionAreIgnored(t *testing.T) {
	chart := sampleChart()
	e := newTestEngine(chart)

	assert.False(t, e.DragEnter(body(chart, "Ops")))
	assert.False(t, e.DragOver(body(chart, "A"), Point{Y: 5}))
	e.DragLeave(body(chart, "Ops"))
	assert.Equal(t, OutcomeNoop, e.Drop(body(chart, "Ops")))
	e.DragEnd()

	assert.Empty(t, e.Signals().ValidIDs())
	assert.Equal(t, []string{"A", "B"}, names(chart.Node("@top").Ministries))
}

func TestDragOver_TracksSingleSortTarget(t *testing.T) {
	chart := testutil.NewChart(
		testutil.WithMinistries("A", "B", "C"),
		testutil.WithGroup("Ops", testutil.WithMinistries("X")),
	)
	e := newTestEngine(chart)
	require.True(t, e.DragStart(body(chart, "X")))

	// midpoints: A 10, B 30, C 50
	require.True(t, e.DragOver(body(chart, "B"), Point{Y: 35}))
	assert.Equal(t, chart.ID("C"), e.Signals().SortTarget())

	require.True(t, e.DragOver(body(chart, "A"), Point{Y: 2}))
	assert.Equal(t, chart.ID("A"), e.Signals().SortTarget())

	require.True(t, e.DragOver(body(chart, "C"), Point{Y: 70}))
	assert.Empty(t, e.Signals().SortTarget(), "no midpoint below the pointer clears the target")

	require.True(t, e.DragOver(Hit{NodeID: chart.ID("@top"), Part: PartList}, Point{Y: 25}))
	assert.Equal(t, chart.ID("B"), e.Signals().SortTarget())

	require.True(t, e.DragOver(header(chart, "Ops"), Point{Y: 0}))
	assert.Equal(t, chart.ID("B"), e.Signals().SortTarget(), "outside any list the target is kept")

	e.DragLeave(Hit{NodeID: chart.ID("@top"), Part: PartList})
	assert.Empty(t, e.Signals().SortTarget())
}

func TestDragOver_SkipsDraggedMinistry(t *testing.T) {
	chart := testutil.NewChart(testutil.WithMinistries("A", "B", "C"))
	e := newTestEngine(chart)
	require.True(t, e.DragStart(body(chart, "B")))

	require.True(t, e.DragOver(body(chart, "B"), Point{Y: 25}))
	assert.Equal(t, chart.ID("C"), e.Signals().SortTarget())
}

func TestDragLeave_ClearsHighlight(t *testing.T) {
	chart := sampleChart()
	e := newTestEngine(chart)
	require.True(t, e.DragStart(body(chart, "A")))
	require.True(t, e.DragEnter(body(chart, "C")))
	require.True(t, e.Signals().Valid(chart.ID("Ops")))

	e.DragLeave(body(chart, "C"))
	assert.False(t, e.Signals().Valid(chart.ID("Ops")))
	assert.True(t, e.Signals().Dragging())
}

func TestDragEnd_IsIdempotent(t *testing.T) {
	chart := sampleChart()
	e := newTestEngine(chart)
	require.True(t, e.DragStart(body(chart, "A")))
	require.True(t, e.DragOver(body(chart, "B"), Point{Y: 25}))
	require.NotEmpty(t, e.Signals().SortTarget())

	e.DragEnd()
	e.DragEnd()

	assert.Nil(t, e.Session())
	assert.False(t, e.Signals().Dragging())
	assert.Empty(t, e.Signals().SortTarget())
	assert.Empty(t, e.Signals().ValidIDs())
	assert.Equal(t, EffectNone, e.Effect())
}

func TestDragOver_LogIsThrottled(t *testing.T) {
	chart := sampleChart()
	var buf bytes.Buffer
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	e := newTestEngine(chart,
		WithLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		WithClock(func() time.Time { return now }),
	)
	require.True(t, e.DragStart(body(chart, "A")))

	for _, step := range []time.Duration{0, 500 * time.Millisecond, time.Second, 500 * time.Millisecond} {
		now = now.Add(step)
		require.True(t, e.DragOver(body(chart, "B"), Point{Y: 25}))
	}
	// t=0 logs, t=0.5 and t=1.5 are inside the window, t=2.0 logs again.
	assert.Equal(t, 2, strings.Count(buf.String(), "msg=drag_over"))
}
