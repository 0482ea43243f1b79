package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SizeOption is the size picked for a cart line
type SizeOption struct {
	SizeID    string          `json:"sizeId"`
	Name      string          `json:"name"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

// DesignOption is the print design picked for a cart line
type DesignOption struct {
	Title     string          `json:"title"`
	Surcharge decimal.Decimal `json:"surcharge"`
	Image     string          `json:"image,omitempty"`
}

// CartLine is one cart entry: a product with quantity and optional size/design
type CartLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Size      *SizeOption     `json:"size,omitempty"`
	Design    *DesignOption   `json:"design,omitempty"`
}

// ShippingDetails is the checkout shipping form
type ShippingDetails struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CountryID   string `json:"countryId"`
	ProvinceID  string `json:"provinceId"`
	CityID      string `json:"cityId"`
	PostalCode  string `json:"postalCode,omitempty"`
	LocationURL string `json:"locationUrl,omitempty"`
}

// PriceQuote holds totals in the store's base currency
type PriceQuote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Total        decimal.Decimal `json:"total"`
}

// Coordinates are kept as the strings found in the map URL
type Coordinates struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// MapLink returns a "view on map" link for the coordinates
func (c Coordinates) MapLink() string {
	return "https://www.google.com/maps?q=" + c.Lat + "," + c.Lng
}

// PaymentSelection is the payment choice made at checkout
type PaymentSelection struct {
	Type    PaymentType     `json:"type"`
	Gateway *PaymentGateway `json:"gateway,omitempty"`
}

// OrderPayload is the body sent to the order API's POST /checkout
type OrderPayload struct {
	CustomerID      string                 `json:"customerId"`
	CartID          string                 `json:"cartId"`
	ShippingDetails ShippingDetailsPayload `json:"shippingDetails"`
	Items           []OrderItemPayload     `json:"items"`
	Subtotal        float64                `json:"subtotal"`
	ShippingCost    float64                `json:"shippingCost"`
	Total           float64                `json:"total"`
	ItemsCount      int                    `json:"itemsCount"`
	PaymentMethod   PaymentType            `json:"paymentMethod"`
	PaymentGateway  *PaymentGateway        `json:"paymentGateway,omitempty"`
	PaymentStatus   PaymentStatus          `json:"paymentStatus"`
}

// ShippingDetailsPayload is ShippingDetails with a normalized phone and
// resolved coordinates
type ShippingDetailsPayload struct {
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	CountryID   string  `json:"countryId"`
	ProvinceID  string  `json:"provinceId"`
	CityID      string  `json:"cityId"`
	PostalCode  string  `json:"postalCode,omitempty"`
	LocationURL string  `json:"locationUrl,omitempty"`
	Latitude    *string `json:"latitude,omitempty"`
	Longitude   *string `json:"longitude,omitempty"`
}

// OrderItemPayload is the wire shape of a cart line
type OrderItemPayload struct {
	ProductID string         `json:"productId"`
	Name      string         `json:"name"`
	BasePrice float64        `json:"basePrice"`
	Price     float64        `json:"price"`
	Quantity  int            `json:"quantity"`
	Total     float64        `json:"total"`
	Size      *SizePayload   `json:"size,omitempty"`
	Design    *DesignPayload `json:"design,omitempty"`
}

type SizePayload struct {
	SizeID string  `json:"sizeId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

type DesignPayload struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image,omitempty"`
}

// Country, Province and City back the cascading location selects
type Country struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Province struct {
	ID        string `json:"id"`
	CountryID string `json:"countryId"`
	Name      string `json:"name"`
}

// City carries the flat shipping fee for deliveries to it
type City struct {
	ID           string          `json:"id"`
	ProvinceID   string          `json:"provinceId"`
	Name         string          `json:"name"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
}

// Order is the local record of an order placed through checkout
type Order struct {
	ID              uuid.UUID
	ExternalOrderID string
	CustomerID      string
	CartID          string
	Status          OrderStatus
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress map[string]interface{} // JSONB
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	Total           decimal.Decimal
	ItemsCount      int
	PaymentMethod   PaymentType
	PaymentGateway  *string
	PaymentStatus   PaymentStatus
	RejectionReason *string
	TrackingCarrier *string
	TrackingNumber  *string
	TrackingURL     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is a line of a local order record
type OrderItem struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	ProductID  string
	Title      string
	SizeName   *string
	DesignName *string
	UnitPrice  decimal.Decimal
	Quantity   int
	LineTotal  decimal.Decimal
	CreatedAt  time.Time
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}
