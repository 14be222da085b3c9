package service

import (
	"context"
	"testing"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/models"
	"backoffice-service/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture() (*OrderService, *fakeOrderRepo, *fakeUserRepo, *fakeProductRepo, *fakePublisher) {
	orders := newFakeOrderRepo()
	users := newFakeUserRepo()
	products := newFakeProductRepo()
	publisher := &fakePublisher{}

	users.put(models.User{ID: 1, Name: "Buyer", Email: "buyer@example.com", Active: true})
	products.put(models.Product{ID: 1, Name: "Widget", Price: decimal.RequireFromString("19.99")})
	products.put(models.Product{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("5.50")})

	svc := NewOrderService(orders, users, products, publisher)
	return svc, orders, users, products, publisher
}

func TestOrderSaveComputesExactTotals(t *testing.T) {
	svc, _, _, _, publisher := newOrderFixture()
	ctx := context.Background()

	order := &models.Order{
		UserID:          1,
		DeliveryAddress: "1 Main St",
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 3},
		},
	}
	require.NoError(t, svc.Save(ctx, order))

	// 3 × 19.99 is exactly 59.97, no float drift
	assert.True(t, order.Items[0].Subtotal.Equal(decimal.RequireFromString("59.97")),
		"subtotal = %s", order.Items[0].Subtotal)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("59.97")))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	require.Len(t, publisher.orderCreated, 1)
	assert.Equal(t, order.ID, publisher.orderCreated[0].OrderID)
	assert.Equal(t, models.EventTypeOrderCreated, publisher.orderCreated[0].EventType)
}

func TestOrderSaveSumsMixedItems(t *testing.T) {
	svc, _, _, _, _ := newOrderFixture()

	order := &models.Order{
		UserID: 1,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 4},
		},
	}
	require.NoError(t, svc.Save(context.Background(), order))

	// 2×19.99 + 4×5.50 = 39.98 + 22.00 = 61.98
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("61.98")),
		"total = %s", order.TotalAmount)
}

func TestOrderSavePricesFromCatalogNotRequest(t *testing.T) {
	svc, _, _, _, _ := newOrderFixture()

	order := &models.Order{
		UserID: 1,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 1, Price: decimal.RequireFromString("0.01")},
		},
	}
	require.NoError(t, svc.Save(context.Background(), order))

	assert.True(t, order.Items[0].Price.Equal(decimal.RequireFromString("19.99")))
}

func TestOrderSaveUnknownProduct(t *testing.T) {
	svc, orders, _, _, publisher := newOrderFixture()

	order := &models.Order{
		UserID: 1,
		Items:  []models.OrderItem{{ProductID: 99, Quantity: 1}},
	}
	err := svc.Save(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, orders.orders)
	assert.Empty(t, publisher.orderCreated)
}

func TestOrderSaveUnknownUser(t *testing.T) {
	svc, orders, _, _, _ := newOrderFixture()

	order := &models.Order{
		UserID: 99,
		Items:  []models.OrderItem{{ProductID: 1, Quantity: 1}},
	}
	err := svc.Save(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, orders.orders)
}

func TestOrderSaveRequiresItems(t *testing.T) {
	svc, _, _, _, _ := newOrderFixture()

	err := svc.Save(context.Background(), &models.Order{UserID: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestOrderUpdateStatusPublishesEvent(t *testing.T) {
	svc, _, _, _, publisher := newOrderFixture()
	ctx := context.Background()

	order := &models.Order{
		UserID: 1,
		Items:  []models.OrderItem{{ProductID: 1, Quantity: 1}},
	}
	require.NoError(t, svc.Save(ctx, order))

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderStatusConfirmed))

	require.Len(t, publisher.statusChanged, 1)
	assert.Equal(t, models.OrderStatusPending, publisher.statusChanged[0].OldStatus)
	assert.Equal(t, models.OrderStatusConfirmed, publisher.statusChanged[0].NewStatus)

	// same status again publishes nothing
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, models.OrderStatusConfirmed))
	assert.Len(t, publisher.statusChanged, 1)
}

func TestOrderUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newOrderFixture()

	err := svc.UpdateStatus(context.Background(), 1, "SOMEWHERE")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestOrderFilterByStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newOrderFixture()

	_, err := svc.FilterByStatus(context.Background(), "MAYBE", store.PageRequest{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestOrderSoftDeleteKeepsOrderRetrievable(t *testing.T) {
	svc, _, _, _, _ := newOrderFixture()
	ctx := context.Background()

	order := &models.Order{
		UserID: 1,
		Items:  []models.OrderItem{{ProductID: 1, Quantity: 1}},
	}
	require.NoError(t, svc.Save(ctx, order))
	require.NoError(t, svc.LogicDelete(ctx, order.ID))

	// soft-deleted orders stay loadable by id for the deleted listings
	found, err := svc.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, found.Deleted)
}
