package repository

import (
	"context"

	"github.com/healthlens/backend/pkg/model"
)

// RecordStore persists completed analyses and serves the aggregated view.
// Records are append-only; implementations must not lose concurrent appends.
type RecordStore interface {
	// Append adds a completed analysis record and updates the rolling summary
	Append(ctx context.Context, record *model.HealthRecord) error

	// ListByUser returns a user's records in insertion order
	ListByUser(ctx context.Context, userID string) ([]model.HealthRecord, error)

	// LoadAll returns the whole persisted document. Implementations return an
	// empty-initialized document rather than failing when the backing store is
	// unreachable or uninitialized.
	LoadAll(ctx context.Context) (*model.UserData, error)
}

var (
	_ RecordStore = (*DocumentStore)(nil)
	_ RecordStore = (*PostgresStore)(nil)
	_ RecordStore = (*MemoryStore)(nil)
)
