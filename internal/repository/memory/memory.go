// Package memory provides in-memory repositories for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
	"github.com/jafarshop/storefront/pkg/errors"
)

// Store holds every entity behind one lock.
type Store struct {
	mu        sync.RWMutex
	countries map[string]domain.Country
	provinces map[string]domain.Province
	cities    map[string]domain.City
	orders    map[uuid.UUID]domain.Order
	items     map[uuid.UUID][]domain.OrderItem
	events    []domain.OrderEvent
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		countries: make(map[string]domain.Country),
		provinces: make(map[string]domain.Province),
		cities:    make(map[string]domain.City),
		orders:    make(map[uuid.UUID]domain.Order),
		items:     make(map[uuid.UUID][]domain.OrderItem),
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Location:   (*locations)(s),
		Order:      (*orders)(s),
		OrderItem:  (*orderItems)(s),
		OrderEvent: (*orderEvents)(s),
	}
}

// AddCountry, AddProvince and AddCity seed location data.
func (s *Store) AddCountry(c domain.Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries[c.ID] = c
}

func (s *Store) AddProvince(p domain.Province) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provinces[p.ID] = p
}

func (s *Store) AddCity(c domain.City) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities[c.ID] = c
}

// Events returns a copy of every recorded audit event.
func (s *Store) Events() []domain.OrderEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OrderEvent(nil), s.events...)
}

type locations Store

func (l *locations) ListCountries(ctx context.Context) ([]*domain.Country, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*domain.Country, 0, len(l.countries))
	for _, c := range l.countries {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (l *locations) ListProvinces(ctx context.Context, countryID string) ([]*domain.Province, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []*domain.Province{}
	for _, p := range l.provinces {
		if p.CountryID == countryID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (l *locations) ListCities(ctx context.Context, provinceID string) ([]*domain.City, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []*domain.City{}
	for _, c := range l.cities {
		if c.ProvinceID == provinceID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (l *locations) GetCity(ctx context.Context, id string) (*domain.City, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	city, ok := l.cities[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "city", ID: id}
	}
	return &city, nil
}

type orders Store

func (o *orders) Create(ctx context.Context, order *domain.Order) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}
	o.orders[order.ID] = *order
	return nil
}

func (o *orders) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	order, ok := o.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return &order, nil
}

func (o *orders) List(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	return o.list(func(*domain.Order) bool { return true }, limit, offset), nil
}

func (o *orders) ListByStatus(ctx context.Context, status domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	return o.list(func(order *domain.Order) bool { return order.Status == status }, limit, offset), nil
}

func (o *orders) list(keep func(*domain.Order) bool, limit, offset int) []*domain.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()

	matched := []*domain.Order{}
	for _, order := range o.orders {
		order := order
		if keep(&order) {
			matched = append(matched, &order)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	if offset >= len(matched) {
		return []*domain.Order{}
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end]
}

func (o *orders) update(id uuid.UUID, fn func(*domain.Order)) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	order, ok := o.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	fn(&order)
	order.UpdatedAt = time.Now()
	o.orders[id] = order
	return nil
}

func (o *orders) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, reason *string) error {
	return o.update(id, func(order *domain.Order) {
		order.Status = status
		if reason != nil {
			order.RejectionReason = reason
		}
	})
}

func (o *orders) UpdateTracking(ctx context.Context, id uuid.UUID, carrier, trackingNumber, trackingURL *string) error {
	return o.update(id, func(order *domain.Order) {
		order.Status = domain.OrderStatusShipped
		order.TrackingCarrier = carrier
		order.TrackingNumber = trackingNumber
		order.TrackingURL = trackingURL
	})
}

func (o *orders) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) error {
	return o.update(id, func(order *domain.Order) {
		order.PaymentStatus = status
	})
}

type orderItems Store

func (o *orderItems) CreateBatch(ctx context.Context, items []*domain.OrderItem) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := time.Now()
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		o.items[item.OrderID] = append(o.items[item.OrderID], *item)
	}
	return nil
}

func (o *orderItems) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	stored := o.items[orderID]
	out := make([]*domain.OrderItem, 0, len(stored))
	for i := range stored {
		item := stored[i]
		out = append(out, &item)
	}
	return out, nil
}

type orderEvents Store

func (o *orderEvents) Create(ctx context.Context, event *domain.OrderEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	o.events = append(o.events, *event)
	return nil
}
