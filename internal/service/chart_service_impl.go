package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/orgchart/internal/db"
	"github.com/alexanderramin/orgchart/internal/document"
	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/alexanderramin/orgchart/internal/repository"
)

type chartService struct {
	kv           repository.KVRepo
	snapshots    repository.SnapshotRepo
	uow          db.UnitOfWork
	serializer   *document.Serializer
	historyLimit int
	observer     UseCaseObserver
	now          func() time.Time
}

// NewChartService wires the chart store. historyLimit caps the number of
// snapshots kept; zero or less keeps all of them.
func NewChartService(
	kv repository.KVRepo,
	snapshots repository.SnapshotRepo,
	uow db.UnitOfWork,
	serializer *document.Serializer,
	historyLimit int,
	observers ...UseCaseObserver,
) ChartService {
	if serializer == nil {
		serializer = document.NewSerializer(nil)
	}
	return &chartService{
		kv:           kv,
		snapshots:    snapshots,
		uow:          uow,
		serializer:   serializer,
		historyLimit: historyLimit,
		observer:     combineObservers(observers),
		now:          time.Now,
	}
}

func (s *chartService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Err:       err,
		Fields:    fields,
	})
}

func (s *chartService) Persist(ctx context.Context, tree *domain.Tree) (snap *domain.Snapshot, err error) {
	startedAt := time.Now()
	fields := map[string]any{"key": document.DataKey}
	defer func() { s.observe(ctx, "persist", startedAt, err, fields) }()

	data, err := json.Marshal(s.serializer.Serialize(tree))
	if err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}
	fields["size_bytes"] = len(data)

	snap, trimmed, err := s.store(ctx, data)
	if err != nil {
		return nil, err
	}
	fields["seq"] = snap.Seq
	fields["trimmed"] = trimmed
	return snap, nil
}

// store writes data as the current chart and appends it to the history in
// one transaction.
func (s *chartService) store(ctx context.Context, data []byte) (*domain.Snapshot, int64, error) {
	snap := domain.NewSnapshot(document.DataKey, data, s.now())
	var trimmed int64
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txKV := repository.NewSQLiteKVRepo(tx)
		txSnapshots := repository.NewSQLiteSnapshotRepo(tx)

		if err := txKV.Put(ctx, document.DataKey, data); err != nil {
			return fmt.Errorf("storing chart: %w", err)
		}
		if err := txSnapshots.Append(ctx, snap); err != nil {
			return fmt.Errorf("recording snapshot: %w", err)
		}
		if s.historyLimit > 0 {
			n, err := txSnapshots.Trim(ctx, document.DataKey, s.historyLimit)
			if err != nil {
				return fmt.Errorf("trimming history: %w", err)
			}
			trimmed = n
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return snap, trimmed, nil
}

func (s *chartService) Restore(ctx context.Context) (doc document.Document, err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "restore", startedAt, err, nil) }()

	data, err := s.kv.Get(ctx, document.DataKey)
	if err != nil {
		return document.Document{}, fmt.Errorf("loading chart: %w", err)
	}
	return document.Decode(data)
}

func (s *chartService) Rehydrate(ctx context.Context) (tree *domain.Tree, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "rehydrate", startedAt, err, fields) }()

	data, err := s.kv.Get(ctx, document.DataKey)
	if errors.Is(err, repository.ErrNotFound) {
		fields["empty"] = true
		return domain.NewTree(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading chart: %w", err)
	}
	doc, err := document.Decode(data)
	if err != nil {
		return nil, err
	}
	fields["groups"] = len(doc.Groups)
	return document.Build(doc)
}

func (s *chartService) Import(ctx context.Context, doc document.Document) (tree *domain.Tree, err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "import", startedAt, err, nil) }()

	if errs := document.Validate(&doc); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	tree, err = document.Build(doc)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(s.serializer.Serialize(tree))
	if err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}
	if _, _, err := s.store(ctx, data); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *chartService) History(ctx context.Context, limit int) (snaps []*domain.Snapshot, err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "history", startedAt, err, map[string]any{"limit": limit}) }()

	return s.snapshots.ListRecent(ctx, document.DataKey, limit)
}

func (s *chartService) Revert(ctx context.Context, snapshotID string) (tree *domain.Tree, err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "revert", startedAt, err, map[string]any{"snapshot": snapshotID}) }()

	snap, err := s.snapshots.GetByID(ctx, snapshotID)
	if err != nil {
		return nil, err
	}
	doc, err := document.Decode(snap.Value)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotID, err)
	}
	tree, err = document.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotID, err)
	}
	if _, _, err := s.store(ctx, snap.Value); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *chartService) Reset(ctx context.Context) (cleared bool, err error) {
	startedAt := time.Now()
	fields := map[string]any{"key": document.DataKey}
	defer func() { s.observe(ctx, "reset", startedAt, err, fields) }()

	err = s.kv.Delete(ctx, document.DataKey)
	if errors.Is(err, repository.ErrNotFound) {
		fields["cleared"] = false
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("clearing chart: %w", err)
	}
	fields["cleared"] = true
	return true, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("chart validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", document.ErrInvalidDocument, msg)
}
