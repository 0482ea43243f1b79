package service

import (
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/pricing"
)

// CheckoutRequest represents the checkout submission payload
type CheckoutRequest struct {
	CustomerID      string                  `json:"customerId" binding:"required"`
	CartID          string                  `json:"cartId" binding:"required"`
	ShippingDetails domain.ShippingDetails  `json:"shippingDetails"`
	Payment         domain.PaymentSelection `json:"payment"`
	Items           []domain.CartLine       `json:"items"`
}

// QuoteRequest asks for totals of a cart delivered to a city
type QuoteRequest struct {
	CityID string            `json:"cityId"`
	Items  []domain.CartLine `json:"items"`
}

// QuoteResult carries canonical store-currency totals and their display rendering
type QuoteResult struct {
	Quote      domain.PriceQuote    `json:"quote"`
	Display    pricing.DisplayQuote `json:"display"`
	ItemsCount int                  `json:"itemsCount"`
}

// CheckoutResult is returned once the order API has accepted the order
type CheckoutResult struct {
	OrderID      string               `json:"id"`
	LocalOrderID string               `json:"localOrderId,omitempty"`
	Quote        domain.PriceQuote    `json:"quote"`
	Display      pricing.DisplayQuote `json:"display"`
	ItemsCount   int                  `json:"itemsCount"`
}

// ValidateRequest carries the form state checked on blur and before submit
type ValidateRequest struct {
	ShippingDetails domain.ShippingDetails  `json:"shippingDetails"`
	Payment         domain.PaymentSelection `json:"payment"`
	Items           []domain.CartLine       `json:"items"`
}
