package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/pkg/errors"
)

// respondError maps service errors to status codes. Unknown errors are logged
// and reported as fallback without leaking internals.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var (
		validationErr *errors.ErrValidation
		notFound      *errors.ErrNotFound
		unauthorized  *errors.ErrUnauthorized
		transitionErr *errors.ErrInvalidStateTransition
		paymentErr    *errors.ErrInvalidPaymentTransition
		orderAPIErr   *errors.ErrOrderAPI
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
	case errors.Is(err, errors.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Your cart is empty",
			"fields": gin.H{"cart": "Your cart is empty"},
		})
	case errors.Is(err, errors.ErrSubmitInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": unauthorized.Message})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Resource + " not found"})
	case errors.As(err, &transitionErr), errors.As(err, &paymentErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &orderAPIErr):
		// The order API's own message is meant for the customer
		body := gin.H{"error": orderAPIErr.Message}
		if orderAPIErr.Details != "" {
			body["details"] = orderAPIErr.Details
		}
		c.JSON(http.StatusBadGateway, body)
	case errors.Is(err, errors.ErrMalformedResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "the order service returned an unexpected response"})
	default:
		logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": err.Error(),
	})
}
