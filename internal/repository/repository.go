package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jafarshop/storefront/internal/domain"
)

// LocationRepository serves the cascading country/province/city selects and
// the per-city shipping cost
type LocationRepository interface {
	ListCountries(ctx context.Context) ([]*domain.Country, error)
	ListProvinces(ctx context.Context, countryID string) ([]*domain.Province, error)
	ListCities(ctx context.Context, provinceID string) ([]*domain.City, error)
	GetCity(ctx context.Context, id string) (*domain.City, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error
	UpdateTracking(ctx context.Context, id uuid.UUID, carrier, trackingNumber, trackingURL *string) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error
}

type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []*domain.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
}

type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
}

// Repositories groups every repository the services need
type Repositories struct {
	Location   LocationRepository
	Order      OrderRepository
	OrderItem  OrderItemRepository
	OrderEvent OrderEventRepository
}
