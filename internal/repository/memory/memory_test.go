package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

func TestSeedLocationsCascade(t *testing.T) {
	store := NewStore()
	store.SeedLocations()
	repos := store.Repositories()
	ctx := context.Background()

	countries, err := repos.Location.ListCountries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 1)

	provinces, err := repos.Location.ListProvinces(ctx, "np")
	require.NoError(t, err)
	assert.Len(t, provinces, 3)
	assert.Equal(t, "Bagmati", provinces[0].Name)

	cities, err := repos.Location.ListCities(ctx, "bagmati")
	require.NoError(t, err)
	assert.Len(t, cities, 3)

	city, err := repos.Location.GetCity(ctx, "pokhara")
	require.NoError(t, err)
	assert.Equal(t, "200", city.ShippingCost.String())

	_, err = repos.Location.GetCity(ctx, "nowhere")
	var notFound *errors.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestOrdersListPaging(t *testing.T) {
	store := NewStore()
	repos := store.Repositories()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repos.Order.Create(ctx, &domain.Order{Status: domain.OrderStatusPendingConfirmation}))
	}
	require.NoError(t, repos.Order.Create(ctx, &domain.Order{Status: domain.OrderStatusConfirmed}))

	all, err := repos.Order.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	page, err := repos.Order.List(ctx, 2, 3)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	empty, err := repos.Order.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	confirmed, err := repos.Order.ListByStatus(ctx, domain.OrderStatusConfirmed, 10, 0)
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)
}

func TestUpdateUnknownOrder(t *testing.T) {
	repos := NewStore().Repositories()

	err := repos.Order.UpdatePaymentStatus(context.Background(), uuid.New(), domain.PaymentStatusPaid)

	var notFound *errors.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestReturnedOrdersAreCopies(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	order := &domain.Order{Status: domain.OrderStatusPendingConfirmation}
	require.NoError(t, repos.Order.Create(ctx, order))

	got, err := repos.Order.GetByID(ctx, order.ID)
	require.NoError(t, err)
	got.Status = domain.OrderStatusCancelled

	again, err := repos.Order.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPendingConfirmation, again.Status)
}
