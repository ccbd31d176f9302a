package sqlite

import (
	"fmt"
	"time"
)

// parseRFC3339 turns a created_at TEXT column back into a time.Time.
// order_events rows carry RFC3339 strings since SQLite lacks a datetime
// type; Save writes them with nanosecond precision.
func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse order event time %q: %w", s, err)
	}
	return t, nil
}
