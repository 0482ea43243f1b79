// Package pricing computes cart line totals, subtotals and order totals in
// the store's base currency.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
)

// UnitTotal is the all-in unit price: base price plus size and design surcharges
func UnitTotal(line domain.CartLine) decimal.Decimal {
	price := line.UnitPrice
	if line.Size != nil {
		price = price.Add(line.Size.Surcharge)
	}
	if line.Design != nil {
		price = price.Add(line.Design.Surcharge)
	}
	return price
}

// LineTotal is UnitTotal multiplied by the line quantity
func LineTotal(line domain.CartLine) decimal.Decimal {
	return UnitTotal(line).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// Subtotal sums LineTotal over all lines. An empty cart is zero.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(LineTotal(line))
	}
	return sum
}

// Total adds the shipping cost of the selected city to the subtotal
func Total(subtotal, shippingCost decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shippingCost)
}

// ItemsCount is the number of units across all lines
func ItemsCount(lines []domain.CartLine) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// Quote prices the cart against a shipping cost looked up by the caller.
// Pass decimal.Zero when no city is selected yet.
func Quote(lines []domain.CartLine, shippingCost decimal.Decimal) domain.PriceQuote {
	subtotal := Subtotal(lines)
	return domain.PriceQuote{
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Total:        Total(subtotal, shippingCost),
	}
}
