package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jafarshop/storefront/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		line domain.CartLine
		want string
	}{
		{
			name: "base price only",
			line: domain.CartLine{UnitPrice: dec("450"), Quantity: 3},
			want: "1350",
		},
		{
			name: "with size surcharge",
			line: domain.CartLine{
				UnitPrice: dec("1000"),
				Quantity:  2,
				Size:      &domain.SizeOption{Name: "XL", Surcharge: dec("200")},
			},
			want: "2400",
		},
		{
			name: "with size and design surcharge",
			line: domain.CartLine{
				UnitPrice: dec("999.99"),
				Quantity:  1,
				Size:      &domain.SizeOption{Name: "M", Surcharge: dec("0.01")},
				Design:    &domain.DesignOption{Title: "Mandala", Surcharge: dec("150.50")},
			},
			want: "1150.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, dec(tt.want).Equal(LineTotal(tt.line)), "got %s", LineTotal(tt.line))
		})
	}
}

func TestSubtotalEmptyCart(t *testing.T) {
	assert.True(t, Subtotal(nil).IsZero())
	assert.Equal(t, 0, ItemsCount(nil))
}

func TestSubtotalIsOrderIndependent(t *testing.T) {
	lines := []domain.CartLine{
		{UnitPrice: dec("0.1"), Quantity: 3},
		{UnitPrice: dec("1000"), Quantity: 2, Size: &domain.SizeOption{Surcharge: dec("200")}},
		{UnitPrice: dec("0.2"), Quantity: 7, Design: &domain.DesignOption{Surcharge: dec("0.3")}},
	}
	reversed := []domain.CartLine{lines[2], lines[1], lines[0]}

	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(LineTotal(line))
	}

	assert.True(t, sum.Equal(Subtotal(lines)))
	assert.True(t, Subtotal(lines).Equal(Subtotal(reversed)))
	assert.False(t, Subtotal(lines).IsNegative())
	assert.Equal(t, 12, ItemsCount(lines))
}

func TestQuote(t *testing.T) {
	lines := []domain.CartLine{
		{UnitPrice: dec("1000"), Quantity: 2, Size: &domain.SizeOption{Surcharge: dec("200")}},
	}

	quote := Quote(lines, dec("150"))

	assert.True(t, dec("2400").Equal(quote.Subtotal))
	assert.True(t, dec("150").Equal(quote.ShippingCost))
	assert.True(t, dec("2550").Equal(quote.Total))
}

func TestTotalIsExactSum(t *testing.T) {
	subtotal := dec("0.1")
	shipping := dec("0.2")

	assert.Equal(t, "0.3", Total(subtotal, shipping).String())
	assert.True(t, Total(subtotal, decimal.Zero).Equal(subtotal))
}
