package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/orgchart/internal/db"
	"github.com/alexanderramin/orgchart/internal/document"
	"github.com/alexanderramin/orgchart/internal/repository"
	"github.com/alexanderramin/orgchart/internal/testutil"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

type chartFixture struct {
	svc       ChartService
	kv        *repository.SQLiteKVRepo
	snapshots *repository.SQLiteSnapshotRepo
	observer  *recordingObserver
}

func newChartFixture(t *testing.T, historyLimit int, uow ...db.UnitOfWork) chartFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := chartFixture{
		kv:        repository.NewSQLiteKVRepo(database),
		snapshots: repository.NewSQLiteSnapshotRepo(database),
		observer:  &recordingObserver{},
	}
	u := testutil.NewTestUoW(database)
	if len(uow) > 0 {
		u = uow[0]
	}
	f.svc = NewChartService(f.kv, f.snapshots, u, nil, historyLimit, f.observer)
	return f
}

func sampleChart() *testutil.Chart {
	return testutil.NewChart(
		testutil.WithMinistry("A", "x"),
		testutil.WithMinistries("B"),
		testutil.WithGroup("Ops",
			testutil.WithDescription("Operations"),
			testutil.WithTags("core"),
			testutil.WithMinistries("C"),
			testutil.WithGroup("Sub"),
		),
	)
}

func TestChartService_PersistAndRestore(t *testing.T) {
	f := newChartFixture(t, 20)
	ctx := context.Background()
	chart := sampleChart()

	snap, err := f.svc.Persist(ctx, chart.Tree)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Seq)
	assert.Equal(t, document.DataKey, snap.Key)

	doc, err := f.svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, document.NewSerializer(nil).Serialize(chart.Tree), doc)

	raw, err := f.kv.Get(ctx, "data")
	require.NoError(t, err)
	assert.Equal(t, snap.Value, raw)
}

func TestChartService_RehydrateRoundTrip(t *testing.T) {
	f := newChartFixture(t, 20)
	ctx := context.Background()
	chart := sampleChart()

	_, err := f.svc.Persist(ctx, chart.Tree)
	require.NoError(t, err)

	tree, err := f.svc.Rehydrate(ctx)
	require.NoError(t, err)

	s := document.NewSerializer(nil)
	assert.Equal(t, s.Serialize(chart.Tree), s.Serialize(tree))
}

func TestChartService_EmptyStore(t *testing.T) {
	f := newChartFixture(t, 20)
	ctx := context.Background()

	_, err := f.svc.Restore(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	tree, err := f.svc.Rehydrate(ctx)
	require.NoError(t, err)
	require.NotNil(t, tree.TopLevel())
	assert.Len(t, tree.Root().Groups, 1)
}

func TestChartService_HistoryIsTrimmed(t *testing.T) {
	f := newChartFixture(t, 2)
	ctx := context.Background()
	chart := sampleChart()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Persist(ctx, chart.Tree)
		require.NoError(t, err)
	}

	history, err := f.svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(3), history[0].Seq)
	assert.Equal(t, int64(2), history[1].Seq)
}

func TestChartService_PersistRollsBackOnSnapshotFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	kv := repository.NewSQLiteKVRepo(database)
	snapshots := repository.NewSQLiteSnapshotRepo(database)
	ctx := context.Background()

	// ExecContext #1 = kv.Put, #2 = snapshots.Append
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    errors.New("injected snapshot failure"),
	}
	svc := NewChartService(kv, snapshots, failUoW, nil, 20)

	_, err := svc.Persist(ctx, sampleChart().Tree)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected snapshot failure")

	_, err = kv.Get(ctx, "data")
	assert.ErrorIs(t, err, repository.ErrNotFound, "chart write should be rolled back")

	history, err := snapshots.ListRecent(ctx, "data", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestChartService_ImportValidates(t *testing.T) {
	f := newChartFixture(t, 20)
	ctx := context.Background()

	_, err := f.svc.Import(ctx, document.Document{
		Ministries: []document.Ministry{{Name: ""}},
		Groups:     []document.Group{},
	})
	require.ErrorIs(t, err, document.ErrInvalidDocument)
	assert.Contains(t, err.Error(), "ministries[0].name is required")

	_, err = f.kv.Get(ctx, "data")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChartService_ImportPersists(t *testing.T) {
	f := newChartFixture(t, 20)
	ctx := context.Background()
	doc := document.Document{
		Ministries: []document.Ministry{{Name: "A", Tags: []string{}}},
		Groups:     []document.Group{{Name: "Ops", Tags: []string{"core"}}},
	}

	tree, err := f.svc.Import(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Ops"}, []string{tree.Root().Groups[0].Name, tree.Root().Groups[1].Name})

	restored, err := f.svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, restored)
}

func TestChartService_Revert(t *testing.T) {
	f := newChartFixture(t, 20)
	ctx := context.Background()

	first, err := f.svc.Persist(ctx, testutil.NewChart(testutil.WithMinistries("A")).Tree)
	require.NoError(t, err)
	_, err = f.svc.Persist(ctx, testutil.NewChart(testutil.WithMinistries("A", "B")).Tree)
	require.NoError(t, err)

	tree, err := f.svc.Revert(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, tree.TopLevel().Ministries, 1)

	doc, err := f.svc.Restore(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Ministries, 1)
	assert.Equal(t, "A", doc.Ministries[0].Name)

	history, err := f.svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	_, err = f.svc.Revert(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChartService_ObservesUseCases(t *testing.T) {
	f := newChartFixture(t, 20)
	ctx := context.Background()

	_, _ = f.svc.Restore(ctx)
	_, err := f.svc.Persist(ctx, sampleChart().Tree)
	require.NoError(t, err)

	require.Len(t, f.observer.events, 2)
	assert.Equal(t, "restore", f.observer.events[0].Name)
	assert.False(t, f.observer.events[0].Success())
	assert.Equal(t, "persist", f.observer.events[1].Name)
	assert.True(t, f.observer.events[1].Success())
	assert.Equal(t, int64(1), f.observer.events[1].Fields["seq"])
}

func TestChartService_ResetKeepsHistory(t *testing.T) {
	f := newChartFixture(t, 20)
	ctx := context.Background()

	cleared, err := f.svc.Reset(ctx)
	require.NoError(t, err)
	assert.False(t, cleared, "nothing stored yet")

	snap, err := f.svc.Persist(ctx, sampleChart().Tree)
	require.NoError(t, err)

	cleared, err = f.svc.Reset(ctx)
	require.NoError(t, err)
	assert.True(t, cleared)

	tree, err := f.svc.Rehydrate(ctx)
	require.NoError(t, err)
	assert.Len(t, tree.Root().Groups, 1, "only the top-level group remains")

	history, err := f.svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, snap.ID, history[0].ID)

	_, err = f.svc.Revert(ctx, snap.ID)
	require.NoError(t, err)
	tree, err = f.svc.Rehydrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, []string{tree.TopLevel().Ministries[0].Name, tree.TopLevel().Ministries[1].Name})
}
