package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no product matches a lookup.
var ErrNotFound = errors.New("product not found")

// Product is a catalog entry. Price is an integer amount in the store
// currency (VND has no minor unit).
type Product struct {
	ID          string
	Slug        string
	Title       string
	Price       int64
	Stock       int
	Brand       string
	Category    string
	Images      []string
	Description string
	Rating      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Patch carries a partial product update. Nil fields are left untouched when
// merged into the stored record.
type Patch struct {
	Slug        *string
	Title       *string
	Price       *int64
	Stock       *int
	Brand       *string
	Category    *string
	Images      *[]string
	Description *string
	Rating      *float64
}

// IsZero reports whether the patch carries no changes at all.
func (p Patch) IsZero() bool {
	return p.Slug == nil && p.Title == nil && p.Price == nil && p.Stock == nil &&
		p.Brand == nil && p.Category == nil && p.Images == nil &&
		p.Description == nil && p.Rating == nil
}
