package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository/memory"
	"github.com/jafarshop/storefront/pkg/errors"
)

func seedOrder(t *testing.T, store *memory.Store, status domain.OrderStatus) uuid.UUID {
	t.Helper()
	order := &domain.Order{
		ExternalOrderID: "ord_1",
		CartID:          "cart-1",
		Status:          status,
		PaymentMethod:   domain.PaymentTypeCOD,
		PaymentStatus:   domain.PaymentStatusUnpaid,
	}
	require.NoError(t, store.Repositories().Order.Create(context.Background(), order))
	return order.ID
}

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.OrderStatus
		act     func(*orderService, uuid.UUID) error
		want    domain.OrderStatus
		wantErr bool
	}{
		{
			name: "confirm pending",
			from: domain.OrderStatusPendingConfirmation,
			act: func(s *orderService, id uuid.UUID) error {
				return s.ConfirmOrder(context.Background(), id)
			},
			want: domain.OrderStatusConfirmed,
		},
		{
			name: "reject pending",
			from: domain.OrderStatusPendingConfirmation,
			act: func(s *orderService, id uuid.UUID) error {
				return s.RejectOrder(context.Background(), id, "address unreachable")
			},
			want: domain.OrderStatusRejected,
		},
		{
			name: "cancel confirmed",
			from: domain.OrderStatusConfirmed,
			act: func(s *orderService, id uuid.UUID) error {
				return s.CancelOrder(context.Background(), id)
			},
			want: domain.OrderStatusCancelled,
		},
		{
			name: "deliver shipped",
			from: domain.OrderStatusShipped,
			act: func(s *orderService, id uuid.UUID) error {
				return s.DeliverOrder(context.Background(), id)
			},
			want: domain.OrderStatusDelivered,
		},
		{
			name: "confirm rejected",
			from: domain.OrderStatusRejected,
			act: func(s *orderService, id uuid.UUID) error {
				return s.ConfirmOrder(context.Background(), id)
			},
			want:    domain.OrderStatusRejected,
			wantErr: true,
		},
		{
			name: "deliver pending",
			from: domain.OrderStatusPendingConfirmation,
			act: func(s *orderService, id uuid.UUID) error {
				return s.DeliverOrder(context.Background(), id)
			},
			want:    domain.OrderStatusPendingConfirmation,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			svc := NewOrderService(store.Repositories(), zap.NewNop())
			id := seedOrder(t, store, tt.from)

			err := tt.act(svc, id)
			if tt.wantErr {
				var transitionErr *errors.ErrInvalidStateTransition
				assert.True(t, errors.As(err, &transitionErr))
				assert.Empty(t, store.Events())
			} else {
				require.NoError(t, err)
				require.Len(t, store.Events(), 1)
				assert.Equal(t, "status_change", store.Events()[0].EventType)
			}

			order, err := store.Repositories().Order.GetByID(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, order.Status)
		})
	}
}

func TestRejectOrderStoresReason(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store.Repositories(), zap.NewNop())
	id := seedOrder(t, store, domain.OrderStatusPendingConfirmation)

	require.NoError(t, svc.RejectOrder(context.Background(), id, "address unreachable"))

	order, err := store.Repositories().Order.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, order.RejectionReason)
	assert.Equal(t, "address unreachable", *order.RejectionReason)
	assert.Equal(t, "address unreachable", store.Events()[0].EventData["reason"])
}

func TestShipOrder(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store.Repositories(), zap.NewNop())

	pending := seedOrder(t, store, domain.OrderStatusPendingConfirmation)
	err := svc.ShipOrder(context.Background(), pending, "Pathao", "PT-1", nil)
	var transitionErr *errors.ErrInvalidStateTransition
	assert.True(t, errors.As(err, &transitionErr))

	confirmed := seedOrder(t, store, domain.OrderStatusConfirmed)
	trackingURL := "https://track.example.com/PT-2"
	require.NoError(t, svc.ShipOrder(context.Background(), confirmed, "Pathao", "PT-2", &trackingURL))

	order, err := store.Repositories().Order.GetByID(context.Background(), confirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, order.Status)
	assert.Equal(t, "PT-2", *order.TrackingNumber)
	assert.Equal(t, trackingURL, *order.TrackingURL)
}

func TestUpdatePaymentStatus(t *testing.T) {
	store := memory.NewStore()
	svc := NewOrderService(store.Repositories(), zap.NewNop())
	id := seedOrder(t, store, domain.OrderStatusConfirmed)

	require.NoError(t, svc.UpdatePaymentStatus(context.Background(), id, domain.PaymentStatusPaid))

	err := svc.UpdatePaymentStatus(context.Background(), id, domain.PaymentStatusUnpaid)
	var paymentErr *errors.ErrInvalidPaymentTransition
	require.True(t, errors.As(err, &paymentErr))
	assert.Equal(t, domain.PaymentStatusPaid, paymentErr.From)

	order, err := store.Repositories().Order.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, order.PaymentStatus)
}

func TestTransitionUnknownOrder(t *testing.T) {
	svc := NewOrderService(memory.NewStore().Repositories(), zap.NewNop())

	err := svc.ConfirmOrder(context.Background(), uuid.New())

	var notFound *errors.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
}
