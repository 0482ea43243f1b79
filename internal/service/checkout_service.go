package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/events"
	"github.com/jafarshop/storefront/internal/orderapi"
	"github.com/jafarshop/storefront/internal/pricing"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

// OrderCreator is the order API as seen by checkout
type OrderCreator interface {
	CreateOrder(ctx context.Context, payload domain.OrderPayload) (*orderapi.CreatedOrder, error)
}

// CheckoutService prices, validates and submits checkouts
type CheckoutService struct {
	repos     *repository.Repositories
	orders    OrderCreator
	validator *checkout.Validator
	builder   *checkout.Builder
	converter *pricing.Converter
	publisher events.Publisher
	logger    *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewCheckoutService creates a new checkout service. A nil publisher drops events.
func NewCheckoutService(
	repos *repository.Repositories,
	orders OrderCreator,
	builder *checkout.Builder,
	converter *pricing.Converter,
	publisher events.Publisher,
	logger *zap.Logger,
) *CheckoutService {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}
	return &CheckoutService{
		repos:     repos,
		orders:    orders,
		validator: checkout.NewValidator(),
		builder:   builder,
		converter: converter,
		publisher: publisher,
		logger:    logger,
		inflight:  make(map[string]struct{}),
	}
}

// Validate runs the checkout form rules without submitting anything
func (s *CheckoutService) Validate(details domain.ShippingDetails, paymentType domain.PaymentType, lines []domain.CartLine) checkout.ValidationResult {
	return s.validator.Validate(details, paymentType, lines)
}

// ValidateField runs the rules for one form field
func (s *CheckoutService) ValidateField(field string, details domain.ShippingDetails, paymentType domain.PaymentType) string {
	return s.validator.ValidateField(field, details, paymentType)
}

// Quote prices the cart for delivery to cityID. An empty cityID means no
// city is selected yet and shipping is zero.
func (s *CheckoutService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	shippingCost, err := s.shippingCost(ctx, req.CityID)
	if err != nil {
		return nil, err
	}

	quote := pricing.Quote(req.Items, shippingCost)
	return &QuoteResult{
		Quote:      quote,
		Display:    s.converter.Display(quote),
		ItemsCount: pricing.ItemsCount(req.Items),
	}, nil
}

// Submit validates the checkout and sends it to the order API exactly once.
// Nothing is sent when the cart is empty or any field is invalid.
func (s *CheckoutService) Submit(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	key := req.CartID
	if key == "" {
		key = req.CustomerID
	}
	if !s.acquire(key) {
		return nil, errors.ErrSubmitInProgress
	}
	defer s.release(key)

	if len(req.Items) == 0 {
		return nil, errors.ErrEmptyCart
	}

	result := s.validator.Validate(req.ShippingDetails, req.Payment.Type, req.Items)
	if !result.IsValid {
		return nil, &errors.ErrValidation{Fields: result.Errors}
	}

	shippingCost, err := s.shippingCost(ctx, req.ShippingDetails.CityID)
	if err != nil {
		return nil, err
	}

	quote := pricing.Quote(req.Items, shippingCost)
	payload := s.builder.Build(req.ShippingDetails, req.Items, quote, req.Payment, req.CustomerID, req.CartID)

	created, err := s.orders.CreateOrder(ctx, payload)
	if err != nil {
		s.logger.Error("Order API rejected checkout",
			zap.Error(err),
			zap.String("cart_id", req.CartID),
			zap.String("customer_id", req.CustomerID),
		)
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", created.ID),
		zap.String("cart_id", req.CartID),
		zap.String("total", quote.Total.String()),
		zap.String("payment_method", string(payload.PaymentMethod)),
	)

	checkoutResult := &CheckoutResult{
		OrderID:    created.ID,
		Quote:      quote,
		Display:    s.converter.Display(quote),
		ItemsCount: payload.ItemsCount,
	}

	// The order exists upstream now; local bookkeeping must not fail the request
	order, err := NewOrderService(s.repos, s.logger).RecordOrder(ctx, created.ID, req, payload, quote)
	if err != nil {
		s.logger.Warn("Failed to record order locally", zap.Error(err), zap.String("order_id", created.ID))
	} else {
		checkoutResult.LocalOrderID = order.ID.String()
	}

	s.publish(ctx, created.ID, checkoutResult.LocalOrderID, req, quote)

	return checkoutResult, nil
}

func (s *CheckoutService) shippingCost(ctx context.Context, cityID string) (decimal.Decimal, error) {
	if cityID == "" {
		return decimal.Zero, nil
	}

	city, err := s.repos.Location.GetCity(ctx, cityID)
	if err != nil {
		var notFound *errors.ErrNotFound
		if errors.As(err, &notFound) {
			return decimal.Zero, &errors.ErrValidation{Fields: map[string]string{
				checkout.FieldCityID: "Delivery is not available to this city",
			}}
		}
		return decimal.Zero, err
	}

	return city.ShippingCost, nil
}

func (s *CheckoutService) publish(ctx context.Context, externalID, localID string, req CheckoutRequest, quote domain.PriceQuote) {
	items := make([]events.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, events.OrderItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	msg := events.OrderCreated{
		OrderID:         localID,
		ExternalOrderID: externalID,
		CartID:          req.CartID,
		CustomerID:      req.CustomerID,
		Total:           quote.Total.String(),
		PaymentMethod:   string(req.Payment.Type),
		Items:           items,
		CreatedAt:       time.Now().UTC(),
	}
	if msg.OrderID == "" {
		msg.OrderID = externalID
	}

	if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
		s.logger.Warn("Failed to publish order event", zap.Error(err), zap.String("order_id", externalID))
	}
}

func (s *CheckoutService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *CheckoutService) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)
}
