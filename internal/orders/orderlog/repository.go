package orderlog

import "context"

// Repository is the port for persisting order log entries. The orders
// service depends on this abstraction, not on SQLite directly, so the
// implementation can be swapped (tests use an in-memory one).
type Repository interface {
	// Save appends a new entry. The table is an append-only audit log,
	// never an upsert.
	Save(ctx context.Context, entry *Entry) error

	// ListByOrder returns all entries for one order, oldest first.
	ListByOrder(ctx context.Context, orderID string) ([]Entry, error)
}
