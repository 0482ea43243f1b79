package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/internal/service"
)

// RejectOrderRequest represents reject order request
type RejectOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ShipOrderRequest represents ship order request
type ShipOrderRequest struct {
	Carrier        string  `json:"carrier" binding:"required"`
	TrackingNumber string  `json:"tracking_number" binding:"required"`
	TrackingURL    *string `json:"tracking_url,omitempty"`
}

// PaymentStatusRequest represents an admin payment status change
type PaymentStatusRequest struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status" binding:"required"`
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return uuid.Nil, false
	}
	return orderID, true
}

// respondOrder writes the order's current state after a change
func respondOrder(c *gin.Context, repos *repository.Repositories, logger *zap.Logger, orderID uuid.UUID) {
	order, err := repos.Order.GetByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, logger, err, "internal error")
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// HandleConfirmOrder handles POST /v1/admin/orders/:id/confirm
func HandleConfirmOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.ConfirmOrder(c.Request.Context(), orderID); err != nil {
			respondError(c, logger, err, "failed to confirm order")
			return
		}

		respondOrder(c, repos, logger, orderID)
	}
}

// HandleCancelOrder handles POST /v1/admin/orders/:id/cancel
func HandleCancelOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.CancelOrder(c.Request.Context(), orderID); err != nil {
			respondError(c, logger, err, "failed to cancel order")
			return
		}

		respondOrder(c, repos, logger, orderID)
	}
}

// HandleDeliverOrder handles POST /v1/admin/orders/:id/deliver
func HandleDeliverOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.DeliverOrder(c.Request.Context(), orderID); err != nil {
			respondError(c, logger, err, "failed to mark order delivered")
			return
		}

		respondOrder(c, repos, logger, orderID)
	}
}

// HandleRejectOrder handles POST /v1/admin/orders/:id/reject
func HandleRejectOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		var req RejectOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.RejectOrder(c.Request.Context(), orderID, req.Reason); err != nil {
			respondError(c, logger, err, "failed to reject order")
			return
		}

		respondOrder(c, repos, logger, orderID)
	}
}

// HandleShipOrder handles POST /v1/admin/orders/:id/ship
func HandleShipOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		var req ShipOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.ShipOrder(c.Request.Context(), orderID, req.Carrier, req.TrackingNumber, req.TrackingURL); err != nil {
			respondError(c, logger, err, "failed to ship order")
			return
		}

		respondOrder(c, repos, logger, orderID)
	}
}

// HandleUpdatePaymentStatus handles PATCH /v1/admin/orders/:id/payment-status
func HandleUpdatePaymentStatus(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseOrderID(c)
		if !ok {
			return
		}

		var req PaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		if !req.PaymentStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment status"})
			return
		}

		orderService := service.NewOrderService(repos, logger)
		if err := orderService.UpdatePaymentStatus(c.Request.Context(), orderID, req.PaymentStatus); err != nil {
			respondError(c, logger, err, "failed to update payment status")
			return
		}

		respondOrder(c, repos, logger, orderID)
	}
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse query parameters
		statusStr := c.Query("status")
		limitStr := c.DefaultQuery("limit", "50")
		offsetStr := c.DefaultQuery("offset", "0")

		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}

		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			offset = 0
		}

		var orders []*domain.Order
		if statusStr != "" {
			status := domain.OrderStatus(statusStr)
			if !status.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			orders, err = repos.Order.ListByStatus(c.Request.Context(), status, limit, offset)
		} else {
			orders, err = repos.Order.List(c.Request.Context(), limit, offset)
		}

		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		orderResponses := make([]OrderResponse, len(orders))
		for i, order := range orders {
			orderResponses[i] = newOrderResponse(order)
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orderResponses,
			"limit":  limit,
			"offset": offset,
		})
	}
}
