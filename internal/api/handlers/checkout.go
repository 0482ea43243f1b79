package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/service"
)

// ValidateResponse is returned by the validate endpoint
type ValidateResponse struct {
	IsValid bool                 `json:"isValid"`
	Errors  checkout.FieldErrors `json:"errors"`
}

// FieldValidateResponse is returned when a single field is checked
type FieldValidateResponse struct {
	Field string `json:"field"`
	Error string `json:"error,omitempty"`
	Valid bool   `json:"valid"`
}

// HandleCheckoutSubmit handles POST /v1/checkout
func HandleCheckoutSubmit(checkoutService *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		result, err := checkoutService.Submit(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to place order")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"data": result})
	}
}

// HandleCheckoutValidate handles POST /v1/checkout/validate. With ?field= only
// that field is checked, which is what the form does on blur.
func HandleCheckoutValidate(checkoutService *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		if field := c.Query("field"); field != "" {
			if !checkout.IsFormField(field) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field: " + field})
				return
			}
			msg := checkoutService.ValidateField(field, req.ShippingDetails, req.Payment.Type)
			c.JSON(http.StatusOK, FieldValidateResponse{
				Field: field,
				Error: msg,
				Valid: msg == "",
			})
			return
		}

		result := checkoutService.Validate(req.ShippingDetails, req.Payment.Type, req.Items)
		c.JSON(http.StatusOK, ValidateResponse{
			IsValid: result.IsValid,
			Errors:  result.Errors,
		})
	}
}

// HandleCheckoutQuote handles POST /v1/checkout/quote
func HandleCheckoutQuote(checkoutService *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		result, err := checkoutService.Quote(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err, "failed to compute quote")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}
