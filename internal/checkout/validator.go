// Package checkout validates the checkout form and assembles the order
// payload sent to the order API.
package checkout

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/geo"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s-]{8,}$`)
)

// Form field names used as keys in FieldErrors
const (
	FieldFullName    = "fullName"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldCountryID   = "countryId"
	FieldProvinceID  = "provinceId"
	FieldCityID      = "cityId"
	FieldPaymentType = "paymentType"
	FieldLocationURL = "locationUrl"
	FieldCart        = "cart"
)

var formFields = map[string]bool{
	FieldFullName:    true,
	FieldEmail:       true,
	FieldPhone:       true,
	FieldAddress:     true,
	FieldCountryID:   true,
	FieldProvinceID:  true,
	FieldCityID:      true,
	FieldPaymentType: true,
	FieldLocationURL: true,
}

// IsFormField reports whether field can be checked on its own with ValidateField
func IsFormField(field string) bool {
	return formFields[field]
}

// FieldErrors maps a form field name to the message shown next to it
type FieldErrors map[string]string

// ValidationResult is the outcome of one validation pass
type ValidationResult struct {
	IsValid bool        `json:"isValid"`
	Errors  FieldErrors `json:"errors"`
}

// checkoutForm flattens the inputs so every rule lives in one struct tag
type checkoutForm struct {
	FullName    string `json:"fullName" validate:"notblank"`
	Email       string `json:"email" validate:"notblank,storeemail"`
	Phone       string `json:"phone" validate:"notblank,storephone"`
	Address     string `json:"address" validate:"notblank"`
	CountryID   string `json:"countryId" validate:"notblank"`
	ProvinceID  string `json:"provinceId" validate:"notblank"`
	CityID      string `json:"cityId" validate:"notblank"`
	PaymentType string `json:"paymentType" validate:"required,oneof=cod online"`
	LocationURL string `json:"locationUrl" validate:"omitempty,mapurl"`
}

var messages = map[string]string{
	FieldFullName + ".notblank":    "Full name is required",
	FieldEmail + ".notblank":       "Email is required",
	FieldEmail + ".storeemail":     "Please enter a valid email address",
	FieldPhone + ".notblank":       "Phone number is required",
	FieldPhone + ".storephone":     "Please enter a valid phone number",
	FieldAddress + ".notblank":     "Address is required",
	FieldCountryID + ".notblank":   "Please select a country",
	FieldProvinceID + ".notblank":  "Please select a province",
	FieldCityID + ".notblank":      "Please select a city",
	FieldPaymentType + ".required": "Please select a payment method",
	FieldPaymentType + ".oneof":    "Please select a payment method",
	FieldLocationURL + ".mapurl":   "Could not read coordinates from this map link",
}

// Validator checks the shipping form, payment selection and cart contents.
// It holds no per-request state and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the checkout rules registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("storeemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("storephone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("mapurl", func(fl validator.FieldLevel) bool {
		return geo.ParseMapURL(fl.Field().String()) != nil
	})

	return &Validator{validate: v}
}

// Validate runs every rule and collects one message per failing field
func (v *Validator) Validate(details domain.ShippingDetails, paymentType domain.PaymentType, lines []domain.CartLine) ValidationResult {
	fieldErrors := FieldErrors{}

	form := checkoutForm{
		FullName:    details.FullName,
		Email:       details.Email,
		Phone:       details.Phone,
		Address:     details.Address,
		CountryID:   details.CountryID,
		ProvinceID:  details.ProvinceID,
		CityID:      details.CityID,
		PaymentType: string(paymentType),
		LocationURL: strings.TrimSpace(details.LocationURL),
	}

	// Struct only returns ValidationErrors for a struct value
	var validationErrors validator.ValidationErrors
	if err := v.validate.Struct(form); errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			fieldErrors[fe.Field()] = message(fe)
		}
	}

	if len(lines) == 0 {
		fieldErrors[FieldCart] = "Your cart is empty"
	}
	for i, line := range lines {
		if msg := lineError(line); msg != "" {
			fieldErrors[fmt.Sprintf("items[%d]", i)] = msg
		}
	}

	return ValidationResult{
		IsValid: len(fieldErrors) == 0,
		Errors:  fieldErrors,
	}
}

// ValidateField returns the message for a single form field, or "" when it
// is valid. Used for on-blur checks. Names rejected by IsFormField always
// yield "".
func (v *Validator) ValidateField(field string, details domain.ShippingDetails, paymentType domain.PaymentType) string {
	if !IsFormField(field) {
		return ""
	}
	return v.Validate(details, paymentType, nil).Errors[field]
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func lineError(line domain.CartLine) string {
	switch {
	case line.Quantity < 1:
		return "Quantity must be at least 1"
	case line.UnitPrice.IsNegative():
		return "Price cannot be negative"
	case line.Size != nil && line.Size.Surcharge.IsNegative():
		return "Size surcharge cannot be negative"
	case line.Design != nil && line.Design.Surcharge.IsNegative():
		return "Design surcharge cannot be negative"
	default:
		return ""
	}
}
