package domain

// DefaultShippingFee is the flat fee applied to every non-empty order, in
// the store currency (VND).
const DefaultShippingFee = 15000

// Totals is the server-side price breakdown of an order.
type Totals struct {
	Subtotal    int64
	ShippingFee int64
	Total       int64
}

// CalcTotals computes the order totals from the line items. The shipping fee
// applies only when there is at least one item; an empty list yields all
// zeros. promoCode is accepted for forward compatibility with the checkout
// form but no promotion is currently applied.
func CalcTotals(items []OrderItem, promoCode string, shippingFee int64) Totals {
	_ = promoCode

	if len(items) == 0 {
		return Totals{}
	}

	var subtotal int64
	for _, it := range items {
		subtotal += it.Subtotal()
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       subtotal + shippingFee,
	}
}
