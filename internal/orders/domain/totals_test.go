package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcTotals(t *testing.T) {
	tests := []struct {
		name  string
		items []OrderItem
		want  Totals
	}{
		{
			name:  "empty order is all zeros, no shipping",
			items: nil,
			want:  Totals{},
		},
		{
			name:  "single item",
			items: []OrderItem{{UnitPrice: 120000, Quantity: 2}},
			want:  Totals{Subtotal: 240000, ShippingFee: 15000, Total: 255000},
		},
		{
			name: "multiple items sum per line",
			items: []OrderItem{
				{UnitPrice: 50000, Quantity: 1},
				{UnitPrice: 30000, Quantity: 3},
			},
			want: Totals{Subtotal: 140000, ShippingFee: 15000, Total: 155000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcTotals(tt.items, "", DefaultShippingFee)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Subtotal+got.ShippingFee, got.Total)
		})
	}
}

func TestCalcTotalsIgnoresPromoCode(t *testing.T) {
	items := []OrderItem{{UnitPrice: 10000, Quantity: 1}}
	assert.Equal(t,
		CalcTotals(items, "", DefaultShippingFee),
		CalcTotals(items, "SUMMER10", DefaultShippingFee),
	)
}

func TestStatusAndPaymentMethodEnums(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusPaid.IsValid())
	assert.True(t, StatusCanceled.IsValid())
	assert.False(t, Status("shipped").IsValid())

	assert.True(t, PaymentCOD.IsValid())
	assert.True(t, PaymentBanking.IsValid())
	assert.True(t, PaymentMomo.IsValid())
	assert.False(t, PaymentMethod("paypal").IsValid())
}
