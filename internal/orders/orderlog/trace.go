package orderlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	// TraceID is the W3C trace ID (32 lowercase hex chars), empty when the
	// context carries no active span.
	TraceID string

	// SpanID is the W3C span ID (16 lowercase hex chars).
	SpanID string
}

// ExtractTraceInfo reads the active OpenTelemetry span from ctx and returns
// its identifiers as hex strings. The HTTP tracing middleware is what puts
// the span there; in unit tests both fields come back empty and callers
// handle that gracefully.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry with the trace info extracted from ctx and the
// timestamp set to now.
func NewEntry(ctx context.Context, orderID string, event Event, fromStatus, toStatus, payload string) *Entry {
	ti := ExtractTraceInfo(ctx)
	return &Entry{
		OrderID:    orderID,
		Event:      event,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		Payload:    payload,
		TraceID:    ti.TraceID,
		SpanID:     ti.SpanID,
		CreatedAt:  time.Now().UTC(),
	}
}
