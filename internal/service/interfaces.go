package service

import (
	"context"

	"github.com/alexanderramin/orgchart/internal/document"
	"github.com/alexanderramin/orgchart/internal/domain"
)

// ChartService is the persistence boundary for the organization chart.
type ChartService interface {
	// Persist serializes tree, stores it under document.DataKey and records
	// a snapshot in the history.
	Persist(ctx context.Context, tree *domain.Tree) (*domain.Snapshot, error)
	// Restore returns the stored document as decoded, without building a tree.
	Restore(ctx context.Context) (document.Document, error)
	// Rehydrate rebuilds a live tree from the stored document. With nothing
	// stored yet it returns a fresh empty tree.
	Rehydrate(ctx context.Context) (*domain.Tree, error)
	// Import validates doc, rebuilds it and persists it as the current chart.
	Import(ctx context.Context, doc document.Document) (*domain.Tree, error)
	// History lists recent snapshots, newest first.
	History(ctx context.Context, limit int) ([]*domain.Snapshot, error)
	// Revert makes a past snapshot the current chart again.
	Revert(ctx context.Context, snapshotID string) (*domain.Tree, error)
	// Reset removes the current chart. History is kept, so a reset chart
	// can be brought back with Revert. Reports whether anything was stored.
	Reset(ctx context.Context) (bool, error)
}
