package repository

import (
	"context"

	"github.com/alexanderramin/orgchart/internal/domain"
)

// KVRepo stores opaque values under string keys.
type KVRepo interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// SnapshotRepo keeps the history of values written to a key.
type SnapshotRepo interface {
	Append(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	ListRecent(ctx context.Context, key string, limit int) ([]*domain.Snapshot, error)
	Trim(ctx context.Context, key string, keep int) (int64, error)
}
