package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newItem(t *testing.T, productID string, quantity int, price string) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), productID, "Product "+productID, "General",
		quantity, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

// newOrder places an order with lines A=5 @ 10.00 and B=3 @ 2.50.
func newOrder(t *testing.T) *order.SalesOrder {
	t.Helper()
	eta := placedAt.Add(72 * time.Hour)
	o, err := order.NewSalesOrder(kernel.NewUUID(), "SO-1001", "Acme", "Warehouse 7", placedAt, &eta,
		[]*order.Item{newItem(t, "A", 5, "10.00"), newItem(t, "B", 3, "2.50")})
	require.NoError(t, err)
	return o
}

func restoreOrder(t *testing.T, status order.Status, approvedA, approvedB int) *order.SalesOrder {
	t.Helper()
	a, err := order.RestoreItem(kernel.NewUUID(), "A", "Product A", "General", 5, approvedA, decimal.NewFromInt(10))
	require.NoError(t, err)
	b, err := order.RestoreItem(kernel.NewUUID(), "B", "Product B", "General", 3, approvedB, decimal.RequireFromString("2.50"))
	require.NoError(t, err)

	o, err := order.RestoreSalesOrder(order.State{
		ID:        kernel.NewUUID(),
		Reference: "SO-1002",
		Status:    status,
		OrderDate: placedAt,
		Items:     []*order.Item{a, b},
	})
	require.NoError(t, err)
	return o
}
