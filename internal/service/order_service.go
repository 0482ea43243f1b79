package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/pricing"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

type orderService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, logger *zap.Logger) *orderService {
	return &orderService{
		repos:  repos,
		logger: logger,
	}
}

// RecordOrder stores the local copy of an order the order API accepted
func (s *orderService) RecordOrder(
	ctx context.Context,
	externalOrderID string,
	req CheckoutRequest,
	payload domain.OrderPayload,
	quote domain.PriceQuote,
) (*domain.Order, error) {
	order := &domain.Order{
		ExternalOrderID: externalOrderID,
		CustomerID:      req.CustomerID,
		CartID:          req.CartID,
		Status:          domain.OrderStatusPendingConfirmation,
		CustomerName:    payload.ShippingDetails.FullName,
		CustomerEmail:   payload.ShippingDetails.Email,
		CustomerPhone:   payload.ShippingDetails.Phone,
		Subtotal:        quote.Subtotal,
		ShippingCost:    quote.ShippingCost,
		Total:           quote.Total,
		ItemsCount:      payload.ItemsCount,
		PaymentMethod:   payload.PaymentMethod,
		PaymentStatus:   payload.PaymentStatus,
	}
	if payload.PaymentGateway != nil {
		gateway := string(*payload.PaymentGateway)
		order.PaymentGateway = &gateway
	}

	// Convert shipping address to map
	order.ShippingAddress = map[string]interface{}{
		"address":     payload.ShippingDetails.Address,
		"country_id":  payload.ShippingDetails.CountryID,
		"province_id": payload.ShippingDetails.ProvinceID,
		"city_id":     payload.ShippingDetails.CityID,
	}
	if payload.ShippingDetails.PostalCode != "" {
		order.ShippingAddress["postal_code"] = payload.ShippingDetails.PostalCode
	}
	if payload.ShippingDetails.Latitude != nil && payload.ShippingDetails.Longitude != nil {
		order.ShippingAddress["latitude"] = *payload.ShippingDetails.Latitude
		order.ShippingAddress["longitude"] = *payload.ShippingDetails.Longitude
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	items := make([]*domain.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		item := &domain.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Title:     line.Name,
			UnitPrice: pricing.UnitTotal(line),
			Quantity:  line.Quantity,
			LineTotal: pricing.LineTotal(line),
		}
		if line.Size != nil {
			item.SizeName = &line.Size.Name
		}
		if line.Design != nil {
			item.DesignName = &line.Design.Title
		}
		items = append(items, item)
	}

	if err := s.repos.OrderItem.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	s.logEvent(ctx, order.ID, "order_created", map[string]interface{}{
		"external_order_id": externalOrderID,
		"status":            order.Status,
		"total":             quote.Total.String(),
	})

	return order, nil
}

// ConfirmOrder confirms an order
func (s *orderService) ConfirmOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusConfirmed, nil)
}

// RejectOrder rejects an order
func (s *orderService) RejectOrder(ctx context.Context, orderID uuid.UUID, reason string) error {
	return s.transition(ctx, orderID, domain.OrderStatusRejected, &reason)
}

// CancelOrder cancels an order that has not shipped yet
func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusCancelled, nil)
}

// DeliverOrder marks a shipped order as delivered
func (s *orderService) DeliverOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.transition(ctx, orderID, domain.OrderStatusDelivered, nil)
}

func (s *orderService) transition(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus, reason *string) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(to) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   to,
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, to, reason); err != nil {
		return err
	}

	data := map[string]interface{}{
		"from": order.Status,
		"to":   to,
	}
	if reason != nil {
		data["reason"] = *reason
	}
	s.logEvent(ctx, orderID, "status_change", data)

	return nil
}

// ShipOrder marks an order as shipped with tracking information
func (s *orderService) ShipOrder(ctx context.Context, orderID uuid.UUID, carrier, trackingNumber string, trackingURL *string) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	// Validate state transition
	if !order.Status.CanTransitionTo(domain.OrderStatusShipped) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   domain.OrderStatusShipped,
		}
	}

	// Update tracking
	if err := s.repos.Order.UpdateTracking(ctx, orderID, &carrier, &trackingNumber, trackingURL); err != nil {
		return err
	}

	data := map[string]interface{}{
		"from":            order.Status,
		"to":              domain.OrderStatusShipped,
		"carrier":         carrier,
		"tracking_number": trackingNumber,
	}
	if trackingURL != nil {
		data["tracking_url"] = *trackingURL
	}
	s.logEvent(ctx, orderID, "status_change", data)

	return nil
}

// UpdatePaymentStatus records an admin payment decision such as marking a
// cash-on-delivery order as paid
func (s *orderService) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, status domain.PaymentStatus) error {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.PaymentStatus.CanTransitionTo(status) {
		return &errors.ErrInvalidPaymentTransition{
			From: order.PaymentStatus,
			To:   status,
		}
	}

	if err := s.repos.Order.UpdatePaymentStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.logEvent(ctx, orderID, "payment_status_change", map[string]interface{}{
		"from": order.PaymentStatus,
		"to":   status,
	})

	return nil
}

// logEvent writes an audit event. Audit failures never fail the operation.
func (s *orderService) logEvent(ctx context.Context, orderID uuid.UUID, eventType string, data map[string]interface{}) {
	event := &domain.OrderEvent{
		OrderID:   orderID,
		EventType: eventType,
		EventData: data,
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
			zap.String("event_type", eventType),
		)
	}
}
