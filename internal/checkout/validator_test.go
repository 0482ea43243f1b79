package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jafarshop/storefront/internal/domain"
)

func validDetails() domain.ShippingDetails {
	return domain.ShippingDetails{
		FullName:   "Sita Sharma",
		Email:      "sita@example.com",
		Phone:      "9841234567",
		Address:    "Thamel Marg 12",
		CountryID:  "np",
		ProvinceID: "bagmati",
		CityID:     "ktm",
	}
}

func validLines() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: "tee-1", Name: "Tee", UnitPrice: decimal.NewFromInt(1000), Quantity: 2},
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	v := NewValidator()

	result := v.Validate(validDetails(), domain.PaymentTypeCOD, validLines())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		email   string
		wantErr bool
	}{
		{"not-an-email", true},
		{"", true},
		{"a@b", true},
		{"a b@c.de", true},
		{"a@b.co", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			details := validDetails()
			details.Email = tt.email

			result := v.Validate(details, domain.PaymentTypeCOD, validLines())

			if tt.wantErr {
				assert.False(t, result.IsValid)
				assert.Contains(t, result.Errors, FieldEmail)
			} else {
				assert.NotContains(t, result.Errors, FieldEmail)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		phone   string
		wantErr bool
	}{
		{"98412345", false},
		{"+977 984-1234567", false},
		{"123", true},
		{"", true},
		{"98412abc45", true},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			details := validDetails()
			details.Phone = tt.phone

			msg := v.ValidateField(FieldPhone, details, domain.PaymentTypeCOD)

			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	v := NewValidator()

	details := domain.ShippingDetails{FullName: "   ", Address: "\t"}
	result := v.Validate(details, "", nil)

	assert.False(t, result.IsValid)
	for _, field := range []string{
		FieldFullName, FieldEmail, FieldPhone, FieldAddress,
		FieldCountryID, FieldProvinceID, FieldCityID, FieldPaymentType, FieldCart,
	} {
		assert.Contains(t, result.Errors, field)
	}
	assert.Equal(t, "Please select a city", result.Errors[FieldCityID])
	assert.Equal(t, "Your cart is empty", result.Errors[FieldCart])
}

func TestValidatePaymentType(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateField(FieldPaymentType, validDetails(), domain.PaymentTypeOnline))
	assert.Empty(t, v.ValidateField(FieldPaymentType, validDetails(), domain.PaymentTypeCOD))
	assert.NotEmpty(t, v.ValidateField(FieldPaymentType, validDetails(), domain.PaymentType("card")))
}

func TestValidateLocationURL(t *testing.T) {
	v := NewValidator()

	details := validDetails()
	details.LocationURL = "https://www.google.com/maps/@27.700769,85.300140,15z"
	assert.Empty(t, v.ValidateField(FieldLocationURL, details, domain.PaymentTypeCOD))

	details.LocationURL = "https://example.com/where"
	assert.Equal(t, "Could not read coordinates from this map link",
		v.ValidateField(FieldLocationURL, details, domain.PaymentTypeCOD))

	details.LocationURL = "https://www.openstreetmap.org/?mlat=NaN&mlon=Inf"
	assert.Equal(t, "Could not read coordinates from this map link",
		v.ValidateField(FieldLocationURL, details, domain.PaymentTypeCOD))

	details.LocationURL = "  "
	assert.Empty(t, v.ValidateField(FieldLocationURL, details, domain.PaymentTypeCOD))
}

func TestIsFormField(t *testing.T) {
	tests := []struct {
		field string
		want  bool
	}{
		{FieldFullName, true},
		{FieldEmail, true},
		{FieldPhone, true},
		{FieldAddress, true},
		{FieldCountryID, true},
		{FieldProvinceID, true},
		{FieldCityID, true},
		{FieldPaymentType, true},
		{FieldLocationURL, true},
		{FieldCart, false},
		{"items[0]", false},
		{"phnoe", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFormField(tt.field))
		})
	}
}

func TestValidateFieldIgnoresUnknownNames(t *testing.T) {
	v := NewValidator()

	details := validDetails()
	details.Phone = ""
	assert.Empty(t, v.ValidateField("phnoe", details, domain.PaymentTypeCOD))
	assert.NotEmpty(t, v.ValidateField(FieldPhone, details, domain.PaymentTypeCOD))
}

func TestValidateCartLines(t *testing.T) {
	v := NewValidator()

	lines := []domain.CartLine{
		{ProductID: "a", UnitPrice: decimal.NewFromInt(10), Quantity: 0},
		{ProductID: "b", UnitPrice: decimal.NewFromInt(10), Quantity: 1,
			Design: &domain.DesignOption{Surcharge: decimal.NewFromInt(-5)}},
		{ProductID: "c", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
	}

	result := v.Validate(validDetails(), domain.PaymentTypeCOD, lines)

	assert.False(t, result.IsValid)
	assert.Equal(t, "Quantity must be at least 1", result.Errors["items[0]"])
	assert.Equal(t, "Design surcharge cannot be negative", result.Errors["items[1]"])
	assert.NotContains(t, result.Errors, "items[2]")
}
