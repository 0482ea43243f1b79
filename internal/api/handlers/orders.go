package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
)

// OrderResponse represents the order response
type OrderResponse struct {
	ID              string                 `json:"id"`
	ExternalOrderID string                 `json:"external_order_id"`
	CustomerID      string                 `json:"customer_id"`
	CartID          string                 `json:"cart_id"`
	Status          domain.OrderStatus     `json:"status"`
	CustomerName    string                 `json:"customer_name"`
	CustomerEmail   string                 `json:"customer_email"`
	CustomerPhone   string                 `json:"customer_phone,omitempty"`
	ShippingAddress map[string]interface{} `json:"shipping_address"`
	Subtotal        string                 `json:"subtotal"`
	ShippingCost    string                 `json:"shipping_cost"`
	Total           string                 `json:"total"`
	ItemsCount      int                    `json:"items_count"`
	PaymentMethod   domain.PaymentType     `json:"payment_method"`
	PaymentGateway  *string                `json:"payment_gateway,omitempty"`
	PaymentStatus   domain.PaymentStatus   `json:"payment_status"`
	MapLink         string                 `json:"map_link,omitempty"`
	RejectionReason *string                `json:"rejection_reason,omitempty"`
	TrackingCarrier *string                `json:"tracking_carrier,omitempty"`
	TrackingNumber  *string                `json:"tracking_number,omitempty"`
	TrackingURL     *string                `json:"tracking_url,omitempty"`
	Items           []OrderItemResponse    `json:"items,omitempty"`
	CreatedAt       string                 `json:"created_at"`
	UpdatedAt       string                 `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID  string  `json:"product_id"`
	Title      string  `json:"title"`
	SizeName   *string `json:"size_name,omitempty"`
	DesignName *string `json:"design_name,omitempty"`
	UnitPrice  string  `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	LineTotal  string  `json:"line_total"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	response := OrderResponse{
		ID:              order.ID.String(),
		ExternalOrderID: order.ExternalOrderID,
		CustomerID:      order.CustomerID,
		CartID:          order.CartID,
		Status:          order.Status,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		Subtotal:        order.Subtotal.StringFixed(2),
		ShippingCost:    order.ShippingCost.StringFixed(2),
		Total:           order.Total.StringFixed(2),
		ItemsCount:      order.ItemsCount,
		PaymentMethod:   order.PaymentMethod,
		PaymentGateway:  order.PaymentGateway,
		PaymentStatus:   order.PaymentStatus,
		RejectionReason: order.RejectionReason,
		TrackingCarrier: order.TrackingCarrier,
		TrackingNumber:  order.TrackingNumber,
		TrackingURL:     order.TrackingURL,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
	}

	// Lets the admin open the drop-off point the customer pinned
	lat, latOK := order.ShippingAddress["latitude"].(string)
	lng, lngOK := order.ShippingAddress["longitude"].(string)
	if latOK && lngOK {
		response.MapLink = domain.Coordinates{Lat: lat, Lng: lng}.MapLink()
	}

	return response
}

// HandleGetOrder handles GET /v1/admin/orders/:id
func HandleGetOrder(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse order ID
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		// Get order
		order, err := repos.Order.GetByID(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, logger, err, "internal error")
			return
		}

		// Get order items
		items, err := repos.OrderItem.GetByOrderID(c.Request.Context(), orderID)
		if err != nil {
			logger.Error("Failed to get order items", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// Build response
		response := newOrderResponse(order)
		response.Items = make([]OrderItemResponse, len(items))
		for i, item := range items {
			response.Items[i] = OrderItemResponse{
				ProductID:  item.ProductID,
				Title:      item.Title,
				SizeName:   item.SizeName,
				DesignName: item.DesignName,
				UnitPrice:  item.UnitPrice.StringFixed(2),
				Quantity:   item.Quantity,
				LineTotal:  item.LineTotal.StringFixed(2),
			}
		}

		c.JSON(http.StatusOK, response)
	}
}
