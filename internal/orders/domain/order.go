package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("order not found")

// Status is the lifecycle state of an order. Only admins move an order away
// from pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusCanceled Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCanceled:
		return true
	}
	return false
}

// PaymentMethod is how the customer chose to pay at checkout.
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentBanking PaymentMethod = "banking"
	PaymentMomo    PaymentMethod = "momo"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCOD, PaymentBanking, PaymentMomo:
		return true
	}
	return false
}

// OrderItem is a line item with the product's price and title snapshotted at
// creation time, so later catalog edits or deletes never rewrite history.
type OrderItem struct {
	ProductID string
	Title     string
	UnitPrice int64
	Quantity  int
}

// Subtotal is the line total for this item.
func (i OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

type Order struct {
	ID string

	// Reference is the short customer-facing code quoted in support
	// conversations, assigned once at checkout.
	Reference string

	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   PaymentMethod
	Note            string
	Items           []OrderItem
	Subtotal        int64
	ShippingFee     int64
	Total           int64
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Patch carries a partial admin update; nil fields are left untouched.
type Patch struct {
	Status          *Status
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string
	Note            *string
}

func (p Patch) IsZero() bool {
	return p.Status == nil && p.CustomerName == nil && p.CustomerPhone == nil &&
		p.CustomerAddress == nil && p.Note == nil
}
