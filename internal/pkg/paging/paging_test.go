package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults when unset", 0, 0, 1, 12},
		{"negative page floored", -3, 20, 1, 20},
		{"limit capped at 50", 2, 500, 2, 50},
		{"in-range values untouched", 4, 25, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestSkipAndHasNext(t *testing.T) {
	p := Clamp(1, 12)
	assert.Equal(t, 0, p.Skip())
	assert.True(t, p.HasNext(15), "15 records, page 1 of 12 leaves more")

	p = Clamp(2, 12)
	assert.Equal(t, 12, p.Skip())
	assert.False(t, p.HasNext(15), "page 2 covers the remaining 3")

	// Exact boundary: page*limit == total means no next page.
	p = Clamp(2, 10)
	assert.False(t, p.HasNext(20))
}
