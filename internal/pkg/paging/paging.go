// Package paging implements the page/limit convention shared by every
// listing endpoint.
package paging

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 50
)

// Params is a sanitized page request. Build it with Clamp; the zero value is
// not valid.
type Params struct {
	Page  int
	Limit int
}

// Clamp normalizes raw query values: page is forced to >=1 (default 1) and
// limit into 1..50 (default 12). Zero means "not supplied".
func Clamp(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Skip is the number of records to skip for this page.
func (p Params) Skip() int {
	return (p.Page - 1) * p.Limit
}

// HasNext reports whether a page after this one exists for the given total.
func (p Params) HasNext(total int64) bool {
	return int64(p.Page)*int64(p.Limit) < total
}
