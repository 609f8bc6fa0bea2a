package domain

import "time"

// Snapshot is one persisted version of a serialized chart. Seq orders
// snapshots of the same key, starting at 1.
type Snapshot struct {
	ID        string
	Key       string
	Seq       int64
	Value     []byte
	SizeBytes int
	CreatedAt time.Time
}

// NewSnapshot stamps a fresh snapshot of value for key. Seq is assigned
// when the snapshot is stored.
func NewSnapshot(key string, value []byte, at time.Time) *Snapshot {
	return &Snapshot{
		ID:        NewID(),
		Key:       key,
		Value:     value,
		SizeBytes: len(value),
		CreatedAt: at.UTC(),
	}
}
