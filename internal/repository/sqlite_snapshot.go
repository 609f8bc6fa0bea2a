package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/orgchart/internal/db"
	"github.com/alexanderramin/orgchart/internal/domain"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

// Append stores s as the newest snapshot of its key and sets s.Seq.
func (r *SQLiteSnapshotRepo) Append(ctx context.Context, s *domain.Snapshot) error {
	var seq int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM snapshots WHERE key = ?`, s.Key,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("allocating snapshot seq: %w", err)
	}

	query := `INSERT INTO snapshots (id, key, seq, value, size_bytes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.Key,
		seq,
		string(s.Value),
		len(s.Value),
		s.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	s.Seq = seq
	s.SizeBytes = len(s.Value)
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `SELECT id, key, seq, value, size_bytes, created_at FROM snapshots WHERE id = ?`
	s, err := scanSnapshot(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("snapshot %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	return s, nil
}

// ListRecent returns up to limit snapshots of key, newest first. A limit of
// zero or less returns all of them.
func (r *SQLiteSnapshotRepo) ListRecent(ctx context.Context, key string, limit int) ([]*domain.Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, key, seq, value, size_bytes, created_at
		FROM snapshots WHERE key = ? ORDER BY seq DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, key, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var out []*domain.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Trim deletes all but the newest keep snapshots of key and reports how
// many were removed.
func (r *SQLiteSnapshotRepo) Trim(ctx context.Context, key string, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	query := `DELETE FROM snapshots WHERE key = ? AND seq NOT IN (
		SELECT seq FROM snapshots WHERE key = ? ORDER BY seq DESC LIMIT ?)`
	res, err := r.db.ExecContext(ctx, query, key, key, keep)
	if err != nil {
		return 0, fmt.Errorf("trimming snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting trimmed snapshots: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var value, createdAt string
	if err := row.Scan(&s.ID, &s.Key, &s.Seq, &value, &s.SizeBytes, &createdAt); err != nil {
		return nil, err
	}
	s.Value = []byte(value)
	s.CreatedAt = parseTime(createdAt)
	return &s, nil
}
