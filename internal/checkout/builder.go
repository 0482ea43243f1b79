package checkout

import (
	"strings"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/geo"
	"github.com/jafarshop/storefront/internal/pricing"
)

// DefaultCallingCode is prefixed to phone numbers entered without one
const DefaultCallingCode = "+977"

// Builder assembles the order API payload from validated checkout input
type Builder struct {
	callingCode string
}

// NewBuilder creates a builder. An empty callingCode uses DefaultCallingCode.
func NewBuilder(callingCode string) *Builder {
	callingCode = strings.TrimSpace(callingCode)
	if callingCode == "" {
		callingCode = DefaultCallingCode
	}
	if !strings.HasPrefix(callingCode, "+") {
		callingCode = "+" + callingCode
	}
	return &Builder{callingCode: callingCode}
}

// Build creates the POST /checkout body. Item prices are re-derived from the
// lines so the submitted items always add up to the submitted subtotal.
func (b *Builder) Build(
	details domain.ShippingDetails,
	lines []domain.CartLine,
	quote domain.PriceQuote,
	payment domain.PaymentSelection,
	customerID, cartID string,
) domain.OrderPayload {
	shipping := domain.ShippingDetailsPayload{
		FullName:    strings.TrimSpace(details.FullName),
		Email:       strings.TrimSpace(details.Email),
		Phone:       b.NormalizePhone(details.Phone),
		Address:     strings.TrimSpace(details.Address),
		CountryID:   details.CountryID,
		ProvinceID:  details.ProvinceID,
		CityID:      details.CityID,
		PostalCode:  strings.TrimSpace(details.PostalCode),
		LocationURL: strings.TrimSpace(details.LocationURL),
	}
	if coords := geo.ParseMapURL(details.LocationURL); coords != nil {
		shipping.Latitude = &coords.Lat
		shipping.Longitude = &coords.Lng
	}

	items := make([]domain.OrderItemPayload, 0, len(lines))
	for _, line := range lines {
		items = append(items, buildItem(line))
	}

	payload := domain.OrderPayload{
		CustomerID:      customerID,
		CartID:          cartID,
		ShippingDetails: shipping,
		Items:           items,
		Subtotal:        quote.Subtotal.InexactFloat64(),
		ShippingCost:    quote.ShippingCost.InexactFloat64(),
		Total:           quote.Total.InexactFloat64(),
		ItemsCount:      pricing.ItemsCount(lines),
		PaymentMethod:   payment.Type,
		PaymentStatus:   domain.PaymentStatusUnpaid,
	}
	// Gateway only applies to online payments
	if payment.Type == domain.PaymentTypeOnline {
		payload.PaymentGateway = payment.Gateway
	}

	return payload
}

// NormalizePhone prefixes the calling code when the number has none
func (b *Builder) NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	return b.callingCode + phone
}

func buildItem(line domain.CartLine) domain.OrderItemPayload {
	item := domain.OrderItemPayload{
		ProductID: line.ProductID,
		Name:      line.Name,
		BasePrice: line.UnitPrice.InexactFloat64(),
		Price:     pricing.UnitTotal(line).InexactFloat64(),
		Quantity:  line.Quantity,
		Total:     pricing.LineTotal(line).InexactFloat64(),
	}
	if line.Size != nil {
		item.Size = &domain.SizePayload{
			SizeID: line.Size.SizeID,
			Name:   line.Size.Name,
			Price:  line.Size.Surcharge.InexactFloat64(),
		}
	}
	if line.Design != nil {
		item.Design = &domain.DesignPayload{
			Title: line.Design.Title,
			Price: line.Design.Surcharge.InexactFloat64(),
			Image: line.Design.Image,
		}
	}
	return item
}
