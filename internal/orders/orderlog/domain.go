// Package orderlog defines the domain types for the order event log.
//
// The event log is a durable, append-only audit trail of every lifecycle
// transition an order goes through. It serves two purposes:
//
//  1. Support: when a customer disputes an order, the log shows exactly who
//     changed what and when, correlated with the request trace via trace_id.
//
//  2. Forensics: deletes are unconditional in the API, so the log is the only
//     place a removed order leaves a trace.
package orderlog

import "time"

// Event names the kind of transition recorded.
type Event string

const (
	EventCreated       Event = "CREATED"
	EventStatusChanged Event = "STATUS_CHANGED"
	EventDeleted       Event = "DELETED"
)

// Entry is a single row in the order_events table: a point-in-time snapshot
// of one order transition.
type Entry struct {
	// OrderID joins the entry with the orders collection.
	OrderID string

	// Event is the transition kind.
	Event Event

	// FromStatus/ToStatus bracket a status change. CREATED has an empty
	// FromStatus and ToStatus "pending"; DELETED has an empty ToStatus and
	// FromStatus holding the last known status.
	FromStatus string
	ToStatus   string

	// Payload is the JSON-serialised order as submitted, written once on
	// CREATED so a deleted order can still be reconstructed from the log.
	Payload string

	// TraceID is the W3C trace ID from the OpenTelemetry span active when
	// the entry was written. Lets support jump from a log row straight to
	// the request trace.
	TraceID string

	// SpanID pinpoints the exact span within that trace.
	SpanID string

	// CreatedAt is the wall-clock time of the transition.
	CreatedAt time.Time
}
