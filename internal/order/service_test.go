package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saucerburger/pos-service/internal/order"
	"github.com/saucerburger/pos-service/internal/storage"
)

func newTestService(t *testing.T) (order.Service, storage.Store) {
	t.Helper()
	store := storage.NewMemStore()
	svc := order.NewService(context.Background(), order.NewRepository(store), nil)
	return svc, store
}

func submitOrder(t *testing.T, svc order.Service, sauce string) *order.Order {
	t.Helper()
	cart := order.NewCart()
	cart.Add(burgerLine(t, sauce, nil, 1))
	o, err := svc.Submit(context.Background(), cart, order.PaymentCash)
	require.NoError(t, err)
	return o
}

func TestServiceSubmitPrependsNewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := submitOrder(t, svc, "BBQ")
	second := submitOrder(t, svc, "Special Sauce")

	orders := svc.Orders(ctx)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Equal(t, first.OrderNumber+1, second.OrderNumber)
}

func TestServiceSubmitPersists(t *testing.T) {
	svc, store := newTestService(t)
	submitted := submitOrder(t, svc, "BBQ")

	// A fresh service over the same store sees the order.
	reloaded := order.NewService(context.Background(), order.NewRepository(store), nil)
	orders := reloaded.Orders(context.Background())
	require.Len(t, orders, 1)
	assert.Equal(t, submitted.ID, orders[0].ID)
	assert.Equal(t, order.StatusPreparing, orders[0].Status)
}

func TestServiceComplete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	o := submitOrder(t, svc, "BBQ")

	svc.Complete(ctx, o.ID)
	require.Equal(t, order.StatusCompleted, svc.Orders(ctx)[0].Status)

	// Completing again or completing an unknown id changes nothing.
	svc.Complete(ctx, o.ID)
	svc.Complete(ctx, "no-such-order")
	orders := svc.Orders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusCompleted, orders[0].Status)
}

func TestServiceCancel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("removes_preparing_order", func(t *testing.T) {
		o := submitOrder(t, svc, "BBQ")
		svc.Cancel(ctx, o.ID)
		assert.Empty(t, svc.Orders(ctx))
	})

	t.Run("completed_order_stays", func(t *testing.T) {
		o := submitOrder(t, svc, "BBQ")
		svc.Complete(ctx, o.ID)
		svc.Cancel(ctx, o.ID)
		require.Len(t, svc.Orders(ctx), 1)
		assert.Equal(t, order.StatusCompleted, svc.Orders(ctx)[0].Status)
		svc.DeleteFromHistory(ctx, o.ID)
	})

	t.Run("unknown_id_is_noop", func(t *testing.T) {
		o := submitOrder(t, svc, "BBQ")
		svc.Cancel(ctx, "no-such-order")
		assert.Len(t, svc.Orders(ctx), 1)
		svc.DeleteFromHistory(ctx, o.ID)
	})
}

func TestServiceDeleteFromHistory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	preparing := submitOrder(t, svc, "BBQ")
	completed := submitOrder(t, svc, "Special Sauce")
	svc.Complete(ctx, completed.ID)

	// Deletion ignores status.
	svc.DeleteFromHistory(ctx, completed.ID)
	svc.DeleteFromHistory(ctx, preparing.ID)
	assert.Empty(t, svc.Orders(ctx))

	svc.DeleteFromHistory(ctx, "no-such-order")
	assert.Empty(t, svc.Orders(ctx))
}

func TestServiceReplaceAll(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	submitOrder(t, svc, "BBQ")

	restored := []order.Order{
		{
			ID:          "42",
			OrderNumber: 900,
			Timestamp:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
			Items:       []order.LineItem{burgerLine(t, "BBQ", nil, 1)},
			TotalPrice:  13,
		},
	}
	svc.ReplaceAll(ctx, restored)

	orders := svc.Orders(ctx)
	require.Len(t, orders, 1)
	assert.Equal(t, "42", orders[0].ID)
	assert.Equal(t, order.StatusPreparing, orders[0].Status, "restored records are normalized")

	// The replacement is persisted.
	reloaded := order.NewService(ctx, order.NewRepository(store), nil)
	assert.Len(t, reloaded.Orders(ctx), 1)
}

func TestServiceMutationHook(t *testing.T) {
	store := storage.NewMemStore()
	seen := make(chan int, 4)
	svc := order.NewService(context.Background(), order.NewRepository(store), func(orders []order.Order) {
		seen <- len(orders)
	})

	submitOrder(t, svc, "BBQ")

	select {
	case n := <-seen:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("mutation hook was not invoked")
	}
}
