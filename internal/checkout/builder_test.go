package checkout

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/pricing"
)

func TestNormalizePhone(t *testing.T) {
	b := NewBuilder("")

	assert.Equal(t, "+9779841234567", b.NormalizePhone("9841234567"))
	assert.Equal(t, "+9779841234567", b.NormalizePhone(" 9841234567 "))
	assert.Equal(t, "+14155550100", b.NormalizePhone("+14155550100"))
	assert.Equal(t, "", b.NormalizePhone(""))

	assert.Equal(t, "+9198765432", NewBuilder("91").NormalizePhone("98765432"))
}

func TestBuild(t *testing.T) {
	lines := []domain.CartLine{
		{
			ProductID: "tee-1",
			Name:      "Tee",
			UnitPrice: decimal.NewFromInt(1000),
			Quantity:  2,
			Size:      &domain.SizeOption{SizeID: "xl", Name: "XL", Surcharge: decimal.NewFromInt(200)},
		},
		{
			ProductID: "mug-1",
			Name:      "Mug",
			UnitPrice: decimal.NewFromInt(300),
			Quantity:  1,
			Design:    &domain.DesignOption{Title: "Everest", Surcharge: decimal.NewFromInt(50), Image: "everest.png"},
		},
	}
	details := validDetails()
	details.LocationURL = "https://www.google.com/maps/@27.700769,85.300140,15z"
	quote := pricing.Quote(lines, decimal.NewFromInt(150))
	gateway := domain.PaymentGatewayKhalti

	payload := NewBuilder("").Build(details, lines, quote,
		domain.PaymentSelection{Type: domain.PaymentTypeOnline, Gateway: &gateway},
		"cust-1", "cart-9")

	assert.Equal(t, "cust-1", payload.CustomerID)
	assert.Equal(t, "cart-9", payload.CartID)
	assert.Equal(t, "+9779841234567", payload.ShippingDetails.Phone)
	require.NotNil(t, payload.ShippingDetails.Latitude)
	assert.Equal(t, "27.700769", *payload.ShippingDetails.Latitude)
	assert.Equal(t, "85.300140", *payload.ShippingDetails.Longitude)

	assert.Equal(t, 3, payload.ItemsCount)
	assert.Equal(t, 2750.0, payload.Subtotal)
	assert.Equal(t, 150.0, payload.ShippingCost)
	assert.Equal(t, 2900.0, payload.Total)
	assert.Equal(t, domain.PaymentStatusUnpaid, payload.PaymentStatus)
	require.NotNil(t, payload.PaymentGateway)
	assert.Equal(t, domain.PaymentGatewayKhalti, *payload.PaymentGateway)

	require.Len(t, payload.Items, 2)
	assert.Equal(t, 1000.0, payload.Items[0].BasePrice)
	assert.Equal(t, 1200.0, payload.Items[0].Price)
	assert.Equal(t, 2400.0, payload.Items[0].Total)
	assert.Equal(t, "XL", payload.Items[0].Size.Name)
	assert.Equal(t, 350.0, payload.Items[1].Price)
	assert.Equal(t, "everest.png", payload.Items[1].Design.Image)

	itemsSum := 0.0
	for _, item := range payload.Items {
		itemsSum += item.Total
	}
	assert.Equal(t, payload.Subtotal, itemsSum)
}

func TestBuildCashOnDeliveryDropsGateway(t *testing.T) {
	gateway := domain.PaymentGatewayEsewa
	details := validDetails()
	details.LocationURL = "not a link"

	payload := NewBuilder("").Build(details, validLines(), pricing.Quote(validLines(), decimal.Zero),
		domain.PaymentSelection{Type: domain.PaymentTypeCOD, Gateway: &gateway}, "c", "k")

	assert.Nil(t, payload.PaymentGateway)
	assert.Nil(t, payload.ShippingDetails.Latitude)

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &wire))
	assert.Equal(t, "unpaid", wire["paymentStatus"])
	assert.Equal(t, "cod", wire["paymentMethod"])
	assert.Equal(t, 2000.0, wire["total"])
	assert.NotContains(t, wire, "paymentGateway")
}
