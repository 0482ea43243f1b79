package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jafarshop/storefront/internal/domain"
)

// Converter scales store-currency amounts into a display currency using a
// fixed exchange rate. Converted values are for presentation only.
type Converter struct {
	storeCurrency   string
	displayCurrency string
	rate            decimal.Decimal
}

// NewConverter creates a converter. rate is display units per store unit.
func NewConverter(storeCurrency, displayCurrency string, rate decimal.Decimal) (*Converter, error) {
	storeCurrency = strings.ToUpper(strings.TrimSpace(storeCurrency))
	displayCurrency = strings.ToUpper(strings.TrimSpace(displayCurrency))
	if storeCurrency == "" {
		return nil, fmt.Errorf("store currency is required")
	}
	if displayCurrency == "" {
		displayCurrency = storeCurrency
	}
	if displayCurrency != storeCurrency && !rate.IsPositive() {
		return nil, fmt.Errorf("exchange rate %s -> %s must be positive, got %s", storeCurrency, displayCurrency, rate)
	}

	return &Converter{
		storeCurrency:   storeCurrency,
		displayCurrency: displayCurrency,
		rate:            rate,
	}, nil
}

// StoreCurrency returns the base currency totals are kept in
func (c *Converter) StoreCurrency() string { return c.storeCurrency }

// DisplayCurrency returns the currency amounts are shown in
func (c *Converter) DisplayCurrency() string { return c.displayCurrency }

// Convert scales a store-currency amount into the display currency
func (c *Converter) Convert(amount decimal.Decimal) decimal.Decimal {
	if c.displayCurrency == c.storeCurrency {
		return amount
	}
	return amount.Mul(c.rate)
}

// Format converts and renders an amount rounded to two decimals, e.g. "USD 18.05"
func (c *Converter) Format(amount decimal.Decimal) string {
	return c.displayCurrency + " " + c.Convert(amount).StringFixed(2)
}

// DisplayQuote is a PriceQuote rendered in the display currency
type DisplayQuote struct {
	Currency     string `json:"currency"`
	Subtotal     string `json:"subtotal"`
	ShippingCost string `json:"shippingCost"`
	Total        string `json:"total"`
}

// Display renders every amount of the quote in the display currency
func (c *Converter) Display(q domain.PriceQuote) DisplayQuote {
	return DisplayQuote{
		Currency:     c.displayCurrency,
		Subtotal:     c.Convert(q.Subtotal).StringFixed(2),
		ShippingCost: c.Convert(q.ShippingCost).StringFixed(2),
		Total:        c.Convert(q.Total).StringFixed(2),
	}
}
