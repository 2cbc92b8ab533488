package http

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/qrtoken"

	"github.com/stretchr/testify/mock"
)

type MockStockOutHandler struct{ mock.Mock }

func (m *MockStockOutHandler) Handle(ctx context.Context, command commands.StockOutCommand) (*order.SalesOrder, error) {
	args := m.Called(ctx, command)
	o, _ := args.Get(0).(*order.SalesOrder)
	return o, args.Error(1)
}

type MockCancelOrderHandler struct{ mock.Mock }

func (m *MockCancelOrderHandler) Handle(ctx context.Context, command commands.CancelOrderCommand) (commands.CancelOrderResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.CancelOrderResult), args.Error(1)
}

type MockIssueQrTokenHandler struct{ mock.Mock }

func (m *MockIssueQrTokenHandler) Handle(ctx context.Context, command commands.IssueQrTokenCommand) (*qrtoken.Token, error) {
	args := m.Called(ctx, command)
	t, _ := args.Get(0).(*qrtoken.Token)
	return t, args.Error(1)
}

type MockAdvanceOrderStatusHandler struct{ mock.Mock }

func (m *MockAdvanceOrderStatusHandler) Handle(ctx context.Context, command commands.AdvanceOrderStatusCommand) (*order.SalesOrder, error) {
	args := m.Called(ctx, command)
	o, _ := args.Get(0).(*order.SalesOrder)
	return o, args.Error(1)
}

type MockOrderMetricsHandler struct{ mock.Mock }

func (m *MockOrderMetricsHandler) Handle(ctx context.Context, query queries.GetOrderMetricsQuery) (queries.GetOrderMetricsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderMetricsQueryResponse), args.Error(1)
}

type MockListOrdersHandler struct{ mock.Mock }

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.Page[queries.OrderSummaryResponse], error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.Page[queries.OrderSummaryResponse]), args.Error(1)
}

type MockOrderDetailsHandler struct{ mock.Mock }

func (m *MockOrderDetailsHandler) Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.OrderDetailsResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderDetailsResponse), args.Error(1)
}

type MockVerifyQrTokenHandler struct{ mock.Mock }

func (m *MockVerifyQrTokenHandler) Handle(ctx context.Context, query queries.VerifyQrTokenQuery) (queries.VerifyQrTokenQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.VerifyQrTokenQueryResponse), args.Error(1)
}

type MockQrTokenHandler struct{ mock.Mock }

func (m *MockQrTokenHandler) Handle(ctx context.Context, query queries.GetQrTokenQuery) (queries.GetQrTokenQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetQrTokenQueryResponse), args.Error(1)
}

// untouchedQrTokenUoWFactory fails the test when a handler opens a unit of
// work.
type untouchedQrTokenUoWFactory struct {
	t *testing.T
}

func (f untouchedQrTokenUoWFactory) Create() commands.QrTokenUoW {
	f.t.Fatal("unit of work must not be opened")
	return nil
}
