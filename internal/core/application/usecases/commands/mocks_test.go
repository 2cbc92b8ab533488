package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/qrtoken"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.SalesOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.SalesOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesOrder), args.Error(1)
}

type MockInventoryStore struct{ mock.Mock }

func (m *MockInventoryStore) Decrement(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockInventoryStore) Release(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

type MockQrTokenRepository struct{ mock.Mock }

func (m *MockQrTokenRepository) Add(ctx context.Context, t *qrtoken.Token) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockQrTokenRepository) Get(ctx context.Context, value string) (*qrtoken.Token, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrtoken.Token), args.Error(1)
}

func (m *MockQrTokenRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies both FulfillmentUoW and QrTokenUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) InventoryStore() ports.InventoryStore {
	args := m.Called()
	return args.Get(0).(ports.InventoryStore)
}

func (m *MockUoW) QrTokenRepository() ports.QrTokenRepository {
	args := m.Called()
	return args.Get(0).(ports.QrTokenRepository)
}

type MockFulfillmentUoWFactory struct{ uow *MockUoW }

func (f MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f.uow
}

type MockQrTokenUoWFactory struct{ uow *MockUoW }

func (f MockQrTokenUoWFactory) Create() commands.QrTokenUoW {
	return f.uow
}

type MockOrderLocker struct{ mock.Mock }

func (m *MockOrderLocker) Acquire(ctx context.Context, orderID kernel.UUID) (func(), error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...order.StatusChanged) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2026, 6, 10, 14, 30, 0, 0, time.UTC)

var (
	manager = kernel.NewActingUser("manager-1", kernel.RoleManager)
	courier = kernel.NewActingUser("courier-7", kernel.RoleCourier)
	staff   = kernel.NewActingUser("staff-3", kernel.RoleStaff)
)

// releaseSpy records whether the lock was released.
type releaseSpy struct{ released bool }

func (r *releaseSpy) release() { r.released = true }

// testOrder restores an order with lines A (qty 5) and B (qty 3).
func testOrder(t *testing.T, status order.Status, approvedA, approvedB int) *order.SalesOrder {
	t.Helper()
	a, err := order.RestoreItem(kernel.NewUUID(), "A", "Bolts", "Hardware", 5, approvedA, decimal.NewFromInt(4))
	require.NoError(t, err)
	b, err := order.RestoreItem(kernel.NewUUID(), "B", "Nuts", "Hardware", 3, approvedB, decimal.NewFromInt(1))
	require.NoError(t, err)

	o, err := order.RestoreSalesOrder(order.State{
		ID:           kernel.NewUUID(),
		Reference:    "SO-2001",
		CustomerName: "Acme",
		Destination:  "Dock 4",
		Status:       status,
		OrderDate:    now.Add(-72 * time.Hour),
		Items:        []*order.Item{a, b},
	})
	require.NoError(t, err)
	return o
}
