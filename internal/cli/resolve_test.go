package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/orgchart/internal/testutil"
)

func TestResolveRef(t *testing.T) {
	chart := testutil.NewChart(
		testutil.WithMinistries("A"),
		testutil.WithGroup("Ops",
			testutil.WithTags("core"),
			testutil.WithMinistry("C", "urgent"),
			testutil.WithGroup("Sub", testutil.WithMinistries("D")),
		),
		testutil.WithGroup("HR", testutil.WithMinistries("D")),
	)

	tests := []struct {
		ref  string
		want string
	}{
		{"@top", "@top"},
		{"@deleted", "@deleted"},
		{"A", "A"},
		{"a", "A"},
		{"Ops", "Ops"},
		{"Ops/C", "C"},
		{"Ops/Sub", "Sub"},
		{"@top/A", "A"},
		{"Ops:core", "Ops:core"},
		{"Ops/C:urgent", "C:urgent"},
		{"C:urgent", "C:urgent"},
		{chart.ID("Sub"), "Sub"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := resolveRef(chart.Tree, tt.ref)
			require.NoError(t, err)
			assert.Same(t, chart.Node(tt.want), got)
		})
	}
}

func TestResolveRef_Errors(t *testing.T) {
	chart := testutil.NewChart(
		testutil.WithGroup("Ops", testutil.WithGroup("Sub", testutil.WithMinistries("D"))),
		testutil.WithGroup("HR", testutil.WithMinistries("D")),
	)

	_, err := resolveRef(chart.Tree, "D")
	assert.ErrorIs(t, err, errRefAmbiguous)

	got, err := resolveRef(chart.Tree, "HR/D")
	require.NoError(t, err)
	assert.Equal(t, chart.Node("HR"), got.Parent())

	for _, ref := range []string{"", "Nope", "Ops/Nope", "Ops:missing", "Nope:x"} {
		_, err := resolveRef(chart.Tree, ref)
		assert.Error(t, err, ref)
	}
	_, err = resolveRef(chart.Tree, "Ops/Nope")
	assert.ErrorIs(t, err, errRefNotFound)
}
