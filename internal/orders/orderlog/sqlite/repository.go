// Package sqlite provides a SQLite-backed implementation of
// orderlog.Repository.
//
// WAL mode is enabled on Open so readers never block writers: order
// mutations append to the log while a support query may be reading it.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/shoply-api/internal/orders/orderlog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps Alpine/Docker builds trivial.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. The table is append-only:
// each row is an immutable event in an order's lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS order_events (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Business identifier: the Mongo order id.
    -- Not UNIQUE because an order accumulates one row per transition.
    order_id     TEXT NOT NULL,

    -- Transition kind: CREATED, STATUS_CHANGED, DELETED.
    event        TEXT NOT NULL,

    from_status  TEXT NOT NULL DEFAULT '',
    to_status    TEXT NOT NULL DEFAULT '',

    -- JSON snapshot of the order, written once on CREATED.
    payload      TEXT,

    -- W3C trace/span ids from the active OTel span, for jumping from a
    -- log row to the request trace.
    trace_id     TEXT NOT NULL DEFAULT '',
    span_id      TEXT NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, the SQLite idiom.
    created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_events_order_id ON order_events(order_id, created_at);
CREATE INDEX IF NOT EXISTS idx_order_events_trace_id ON order_events(trace_id);
`

// Repository is the SQLite implementation of orderlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/orderlog.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver takes pragmas as query parameters. WAL enables
	// concurrent readers; busy_timeout waits for locks instead of failing.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply order_events schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database handle. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends a new event row. Safe for concurrent use.
func (r *Repository) Save(ctx context.Context, entry *orderlog.Entry) error {
	const q = `
		INSERT INTO order_events
			(order_id, event, from_status, to_status, payload, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		string(entry.Event),
		entry.FromStatus,
		entry.ToStatus,
		nullableString(entry.Payload),
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save order event for %q: %w", entry.OrderID, err)
	}
	return nil
}

// ListByOrder returns every event for one order, oldest first.
func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]orderlog.Entry, error) {
	const q = `
		SELECT order_id, event, from_status, to_status, COALESCE(payload,''),
		       trace_id, span_id, created_at
		FROM   order_events
		WHERE  order_id = ?
		ORDER  BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list events for %q: %w", orderID, err)
	}
	defer rows.Close()

	var out []orderlog.Entry
	for rows.Next() {
		var entry orderlog.Entry
		var createdAt string
		if err := rows.Scan(
			&entry.OrderID,
			&entry.Event,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.Payload,
			&entry.TraceID,
			&entry.SpanID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan order event: %w", err)
		}
		entry.CreatedAt, err = parseRFC3339(createdAt)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// nullableString maps "" to SQL NULL so the payload column stays NULL for
// non-CREATED rows.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
