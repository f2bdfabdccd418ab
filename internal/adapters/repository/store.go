// Package repository holds accepted form submissions.
package repository

import (
	"context"

	"github.com/okian/intake/internal/domain/model"
)

// Store is the append-only submission history.
type Store interface {
	// Append records a snapshot at the end of the history and returns it with
	// Seq assigned (1-based position).
	Append(ctx context.Context, s model.Snapshot) (model.Snapshot, error)

	// List returns every snapshot in insertion order. The result is a copy.
	List(ctx context.Context) []model.Snapshot

	// Get returns the snapshot with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (model.Snapshot, error)

	// Count returns the number of stored snapshots.
	Count(ctx context.Context) int
}
