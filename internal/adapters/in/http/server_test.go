package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/qrtoken"
	"fulfillment/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret"
	testBaseURL = "https://orders.example.com"
)

var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

type mocks struct {
	stockOut     *MockStockOutHandler
	cancel       *MockCancelOrderHandler
	issue        *MockIssueQrTokenHandler
	advance      *MockAdvanceOrderStatusHandler
	metrics      *MockOrderMetricsHandler
	list         *MockListOrdersHandler
	details      *MockOrderDetailsHandler
	verify       *MockVerifyQrTokenHandler
	qrToken      *MockQrTokenHandler
	registry     *prometheus.Registry
	echoInstance *echo.Echo
}

func newTestServer(t *testing.T, overrides ...func(*Handlers)) *mocks {
	t.Helper()
	m := &mocks{
		stockOut: &MockStockOutHandler{},
		cancel:   &MockCancelOrderHandler{},
		issue:    &MockIssueQrTokenHandler{},
		advance:  &MockAdvanceOrderStatusHandler{},
		metrics:  &MockOrderMetricsHandler{},
		list:     &MockListOrdersHandler{},
		details:  &MockOrderDetailsHandler{},
		verify:   &MockVerifyQrTokenHandler{},
		qrToken:  &MockQrTokenHandler{},
		registry: prometheus.NewRegistry(),
	}
	handlers := Handlers{
		StockOut:           m.stockOut,
		CancelOrder:        m.cancel,
		IssueQrToken:       m.issue,
		AdvanceOrderStatus: m.advance,
		OrderMetrics:       m.metrics,
		ListOrders:         m.list,
		OrderDetails:       m.details,
		VerifyQrToken:      m.verify,
		QrToken:            m.qrToken,
	}
	for _, override := range overrides {
		override(&handlers)
	}
	server := NewServer(handlers, Options{
		Authenticator: NewAuthenticator(testSecret),
		PublicBaseURL: testBaseURL + "/",
		Registry:      m.registry,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	m.echoInstance = echo.New()
	require.NoError(t, server.Register(t.Context(), m.echoInstance))
	return m
}

func (m *mocks) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	m.echoInstance.ServeHTTP(rec, req)
	return rec
}

func bearer(t *testing.T, subject, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func request(method, target, authorization string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return req
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) (testEnvelope, T) {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var data T
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &data))
	}
	return env, data
}

func testOrder(t *testing.T, status order.Status) *order.SalesOrder {
	t.Helper()
	item, err := order.RestoreItem(kernel.NewUUID(), "P-1", "Crate", "Storage", 5, 2, decimal.RequireFromString("3.20"))
	require.NoError(t, err)
	o, err := order.RestoreSalesOrder(order.State{
		ID:           kernel.NewUUID(),
		Reference:    "SO-4001",
		CustomerName: "Initech",
		Destination:  "Dock 3",
		Status:       status,
		OrderDate:    testNow.Add(-48 * time.Hour),
		Items:        []*order.Item{item},
	})
	require.NoError(t, err)
	return o
}

func TestServer_Health(t *testing.T) {
	m := newTestServer(t)

	rec := m.do(t, request(http.MethodGet, "/health", "", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	env, _ := decode[any](t, rec)
	assert.True(t, env.Success)
}

func TestServer_UnknownRouteUsesEnvelope(t *testing.T) {
	m := newTestServer(t)

	rec := m.do(t, request(http.MethodGet, "/nowhere", "", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env, _ := decode[any](t, rec)
	assert.False(t, env.Success)
}

func TestServer_InventoryAuthentication(t *testing.T) {
	t.Run("should require a bearer token", func(t *testing.T) {
		m := newTestServer(t)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/all", "", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		m.list.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		m := newTestServer(t)
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
			Role:             "ADMIN",
			RegisteredClaims: jwt.RegisteredClaims{Subject: "mallory"},
		})
		signed, err := forged.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/all", "Bearer "+signed, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		m := newTestServer(t)
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
			Role: "ADMIN",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		})
		signed, err := expired.SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/all", "Bearer "+signed, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestServer_OrderMetrics(t *testing.T) {
	m := newTestServer(t)
	m.metrics.On("Handle", mock.Anything, mock.Anything).Return(queries.GetOrderMetricsQueryResponse{
		Total:    3,
		Urgent:   1,
		ByStatus: map[order.Status]int64{order.Pending: 2, order.Cancelled: 1},
	}, nil)

	rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders", bearer(t, "manager-1", "MANAGER"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decode[metricsDTO](t, rec)
	assert.Equal(t, int64(3), data.Total)
	assert.Equal(t, int64(1), data.Urgent)
	assert.Equal(t, int64(2), data.ByStatus["PENDING"])
	assert.Equal(t, int64(1), data.ByStatus["CANCELLED"])
}

func TestServer_ListOrders(t *testing.T) {
	summary := queries.OrderSummaryResponse{
		ID:             kernel.NewUUID(),
		OrderReference: "SO-4001",
		CustomerName:   "Initech",
		Status:         order.Approved,
		TotalAmount:    decimal.RequireFromString("16.00"),
		OrderDate:      testNow,
		Urgent:         true,
	}
	page := queries.Page[queries.OrderSummaryResponse]{
		Content:       []queries.OrderSummaryResponse{summary},
		TotalElements: 11,
		TotalPages:    2,
		Number:        1,
		Size:          10,
	}

	t.Run("should pass paging parameters through", func(t *testing.T) {
		m := newTestServer(t)
		m.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			p := q.Page()
			return p.Page() == 1 && p.Size() == 10 && p.SortBy() == "customerName" && p.SortDir() == queries.SortAsc
		})).Return(page, nil)

		rec := m.do(t, request(http.MethodGet,
			"/inventory/sales-orders/all?page=1&sortBy=customerName&sortDir=asc",
			bearer(t, "staff-1", "STAFF"), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decode[pageDTO[orderSummaryDTO]](t, rec)
		assert.Equal(t, int64(11), data.TotalElements)
		assert.Equal(t, 2, data.TotalPages)
		require.Len(t, data.Content, 1)
		assert.Equal(t, "APPROVED", data.Content[0].Status)
		assert.True(t, data.Content[0].Urgent)
		assert.True(t, decimal.RequireFromString("16").Equal(data.Content[0].TotalAmount))
		m.list.AssertExpectations(t)
	})

	t.Run("should reject a page size above the maximum", func(t *testing.T) {
		m := newTestServer(t)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/urgent?size=101",
			bearer(t, "staff-1", "STAFF"), nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.list.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should reject an unknown sort key", func(t *testing.T) {
		m := newTestServer(t)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/all?sortBy=password",
			bearer(t, "staff-1", "STAFF"), nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should require search text", func(t *testing.T) {
		m := newTestServer(t)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/search",
			bearer(t, "staff-1", "STAFF"), nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should search", func(t *testing.T) {
		m := newTestServer(t)
		m.list.On("Handle", mock.Anything, mock.Anything).Return(page, nil)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/search?text=initech",
			bearer(t, "staff-1", "STAFF"), nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		m.list.AssertExpectations(t)
	})

	t.Run("should reject an unknown status filter", func(t *testing.T) {
		m := newTestServer(t)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/filter?status=LOST",
			bearer(t, "staff-1", "STAFF"), nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env, data := decode[errorDTO](t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, string(errs.KindValidation), data.Kind)
	})
}

func TestServer_OrderDetails(t *testing.T) {
	t.Run("should render remaining quantities", func(t *testing.T) {
		m := newTestServer(t)
		o := testOrder(t, order.PartiallyApproved)
		m.details.On("Handle", mock.Anything, mock.Anything).Return(queries.NewOrderDetailsResponse(o), nil)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/"+o.ID().String()+"/items",
			bearer(t, "staff-1", "STAFF"), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decode[orderDetailsDTO](t, rec)
		assert.Equal(t, "SO-4001", data.OrderReference)
		require.Len(t, data.Items, 1)
		assert.Equal(t, 3, data.Items[0].RemainingQuantity)
	})

	t.Run("should map a missing order to 404", func(t *testing.T) {
		m := newTestServer(t)
		id := kernel.NewUUID()
		m.details.On("Handle", mock.Anything, mock.Anything).
			Return(queries.OrderDetailsResponse{}, errs.NewObjectNotFoundError("sales order", id))

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/"+id.String()+"/items",
			bearer(t, "staff-1", "STAFF"), nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject a malformed order id", func(t *testing.T) {
		m := newTestServer(t)

		rec := m.do(t, request(http.MethodGet, "/inventory/sales-orders/not-a-uuid/items",
			bearer(t, "staff-1", "STAFF"), nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.details.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_StockOut(t *testing.T) {
	t.Run("should forward the allocation and acting user", func(t *testing.T) {
		m := newTestServer(t)
		o := testOrder(t, order.PartiallyApproved)
		m.stockOut.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.StockOutCommand) bool {
			return c.OrderID() == o.ID() &&
				c.Allocation()["P-1"] == 2 &&
				c.Actor() == kernel.NewActingUser("manager-1", kernel.RoleManager)
		})).Return(o, nil)

		rec := m.do(t, request(http.MethodPut, "/inventory/sales-orders/stocks/out",
			bearer(t, "manager-1", "ROLE_MANAGER"),
			stockOutRequest{OrderID: o.ID().String(), ItemQuantities: map[string]int{"P-1": 2}}))

		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decode[orderDetailsDTO](t, rec)
		assert.Equal(t, "PARTIALLY_APPROVED", data.Status)
		m.stockOut.AssertExpectations(t)
	})

	t.Run("should map an over-allocation to 422", func(t *testing.T) {
		m := newTestServer(t)
		m.stockOut.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewQuantityExceededError("P-1", 9, 3))

		rec := m.do(t, request(http.MethodPut, "/inventory/sales-orders/stocks/out",
			bearer(t, "manager-1", "MANAGER"),
			stockOutRequest{OrderID: kernel.NewUUID().String(), ItemQuantities: map[string]int{"P-1": 9}}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		_, data := decode[errorDTO](t, rec)
		assert.Equal(t, string(errs.KindQuantityExceeded), data.Kind)
	})

	t.Run("should map a role without the capability to 403", func(t *testing.T) {
		m := newTestServer(t)
		m.stockOut.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewUnauthorizedError("fulfil orders", "STAFF"))

		rec := m.do(t, request(http.MethodPut, "/inventory/sales-orders/stocks/out",
			bearer(t, "staff-1", "STAFF"),
			stockOutRequest{OrderID: kernel.NewUUID().String(), ItemQuantities: map[string]int{"P-1": 1}}))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should map a held order lock to 423", func(t *testing.T) {
		m := newTestServer(t)
		id := kernel.NewUUID()
		m.stockOut.On("Handle", mock.Anything, mock.Anything).Return(nil, errs.NewOrderBusyError(id.String()))

		rec := m.do(t, request(http.MethodPut, "/inventory/sales-orders/stocks/out",
			bearer(t, "manager-1", "MANAGER"),
			stockOutRequest{OrderID: id.String(), ItemQuantities: map[string]int{"P-1": 1}}))

		assert.Equal(t, http.StatusLocked, rec.Code)
	})

	t.Run("should hide internal failures", func(t *testing.T) {
		m := newTestServer(t)
		m.stockOut.On("Handle", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("pq: connection reset"))

		rec := m.do(t, request(http.MethodPut, "/inventory/sales-orders/stocks/out",
			bearer(t, "manager-1", "MANAGER"),
			stockOutRequest{OrderID: kernel.NewUUID().String(), ItemQuantities: map[string]int{"P-1": 1}}))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "pq:")
	})
}

func TestServer_CancelOrder(t *testing.T) {
	t.Run("should report released quantities", func(t *testing.T) {
		m := newTestServer(t)
		o := testOrder(t, order.Cancelled)
		m.cancel.On("Handle", mock.Anything, mock.Anything).Return(commands.CancelOrderResult{
			Order:    o,
			Released: []order.StockMovement{{ProductID: "P-1", Quantity: 3}},
		}, nil)

		rec := m.do(t, request(http.MethodPut, "/inventory/sales-orders/"+o.ID().String()+"/cancel",
			bearer(t, "admin-1", "ADMIN"), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decode[cancelDTO](t, rec)
		assert.False(t, data.AlreadyCancelled)
		assert.Equal(t, map[string]int{"P-1": 3}, data.Released)
		assert.Equal(t, "CANCELLED", data.Order.Status)
	})

	t.Run("should succeed for an order cancelled before", func(t *testing.T) {
		m := newTestServer(t)
		o := testOrder(t, order.Cancelled)
		m.cancel.On("Handle", mock.Anything, mock.Anything).
			Return(commands.CancelOrderResult{Order: o, AlreadyCancelled: true}, nil)

		rec := m.do(t, request(http.MethodPut, "/inventory/sales-orders/"+o.ID().String()+"/cancel",
			bearer(t, "admin-1", "ADMIN"), nil))

		require.Equal(t, http.StatusOK, rec.Code)
		env, data := decode[cancelDTO](t, rec)
		assert.True(t, env.Success)
		assert.True(t, data.AlreadyCancelled)
		assert.Empty(t, data.Released)
	})

	t.Run("should map a delivered order to 409", func(t *testing.T) {
		m := newTestServer(t)
		m.cancel.On("Handle", mock.Anything, mock.Anything).
			Return(commands.CancelOrderResult{}, errs.NewInvalidTransitionError("DELIVERED", "CANCELLED"))

		rec := m.do(t, request(http.MethodPut, "/inventory/sales-orders/"+kernel.NewUUID().String()+"/cancel",
			bearer(t, "admin-1", "ADMIN"), nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestServer_IssueQrToken(t *testing.T) {
	m := newTestServer(t)
	o := testOrder(t, order.Approved)
	token, err := qrtoken.NewToken(o.ID(), testNow, 15)
	require.NoError(t, err)
	m.issue.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.IssueQrTokenCommand) bool {
		return c.OrderID() == o.ID()
	})).Return(token, nil)

	rec := m.do(t, request(http.MethodGet, "/sales-orders/qrcode/"+o.ID().String()+"/view",
		bearer(t, "staff-1", "STAFF"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	_, data := decode[qrViewDTO](t, rec)
	assert.Equal(t, token.Value(), data.Token)
	assert.Equal(t, 15, data.TTLMinutes)
	assert.Equal(t, testBaseURL+"/sales-orders/qrcode/"+token.Value()+"/image", data.ImageURL)
	assert.True(t, token.ExpiresAt().Equal(data.ExpiresAt))
}

func TestServer_VerifyQrToken(t *testing.T) {
	t.Run("should pass the X-User-ID header through", func(t *testing.T) {
		m := newTestServer(t)
		o := testOrder(t, order.Approved)
		m.verify.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.VerifyQrTokenQuery) bool {
			return q.ActingUserID() == "courier-7"
		})).Return(queries.VerifyQrTokenQueryResponse{
			Order:          queries.NewOrderDetailsResponse(o),
			Token:          "abc",
			TokenExpiresAt: testNow,
			VerifiedBy:     "courier-7",
		}, nil)

		req := request(http.MethodGet, "/sales-orders/qrcode/abc/verify", "", nil)
		req.Header.Set(headerUserID, "courier-7")
		rec := m.do(t, req)

		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decode[qrVerifyDTO](t, rec)
		assert.Equal(t, "courier-7", data.VerifiedBy)
		assert.Equal(t, "SO-4001", data.Order.OrderReference)
		m.verify.AssertExpectations(t)
	})

	t.Run("should map an unknown token to 404", func(t *testing.T) {
		m := newTestServer(t)
		m.verify.On("Handle", mock.Anything, mock.Anything).
			Return(queries.VerifyQrTokenQueryResponse{}, fmt.Errorf("%w: %q", errs.ErrTokenNotFound, "abc"))

		rec := m.do(t, request(http.MethodGet, "/sales-orders/qrcode/abc/verify", "", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		_, data := decode[errorDTO](t, rec)
		assert.Equal(t, string(errs.KindTokenNotFound), data.Kind)
	})

	t.Run("should map an expired token to 410", func(t *testing.T) {
		m := newTestServer(t)
		m.verify.On("Handle", mock.Anything, mock.Anything).
			Return(queries.VerifyQrTokenQueryResponse{}, fmt.Errorf("%w: expired", errs.ErrTokenExpired))

		rec := m.do(t, request(http.MethodGet, "/sales-orders/qrcode/abc/verify", "", nil))

		assert.Equal(t, http.StatusGone, rec.Code)
	})
}

func TestServer_QrTokenImage(t *testing.T) {
	t.Run("should render a png", func(t *testing.T) {
		m := newTestServer(t)
		m.qrToken.On("Handle", mock.Anything, mock.Anything).Return(queries.GetQrTokenQueryResponse{
			Token:     "abc",
			OrderID:   kernel.NewUUID().String(),
			ExpiresAt: testNow,
		}, nil)

		rec := m.do(t, request(http.MethodGet, "/sales-orders/qrcode/abc/image", "", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))
	})

	t.Run("should map an expired token to 410", func(t *testing.T) {
		m := newTestServer(t)
		m.qrToken.On("Handle", mock.Anything, mock.Anything).
			Return(queries.GetQrTokenQueryResponse{}, fmt.Errorf("%w: expired", errs.ErrTokenExpired))

		rec := m.do(t, request(http.MethodGet, "/sales-orders/qrcode/abc/image", "", nil))

		assert.Equal(t, http.StatusGone, rec.Code)
	})
}

func TestServer_AdvanceOrderStatus(t *testing.T) {
	t.Run("should require X-User-ID", func(t *testing.T) {
		m := newTestServer(t)

		rec := m.do(t, request(http.MethodPatch, "/sales-orders/qrcode/abc?status=DELIVERED",
			bearer(t, "courier-7", "COURIER"), nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.advance.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should combine the header id with the token role", func(t *testing.T) {
		m := newTestServer(t)
		o := testOrder(t, order.Delivered)
		m.advance.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.AdvanceOrderStatusCommand) bool {
			return c.Token() == "abc" &&
				c.Status() == "DELIVERED" &&
				c.Actor() == kernel.NewActingUser("courier-7", kernel.RoleCourier)
		})).Return(o, nil)

		req := request(http.MethodPatch, "/sales-orders/qrcode/abc?status=DELIVERED",
			bearer(t, "someone-else", "COURIER"), nil)
		req.Header.Set(headerUserID, "courier-7")
		rec := m.do(t, req)

		require.Equal(t, http.StatusOK, rec.Code)
		_, data := decode[orderDetailsDTO](t, rec)
		assert.Equal(t, "DELIVERED", data.Status)
		m.advance.AssertExpectations(t)
	})

	t.Run("should act as guest without a bearer token", func(t *testing.T) {
		m := newTestServer(t)
		m.advance.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.AdvanceOrderStatusCommand) bool {
			return c.Actor().Role == kernel.RoleGuest
		})).Return(nil, errs.NewUnauthorizedError("advance order status", "GUEST"))

		req := request(http.MethodPatch, "/sales-orders/qrcode/abc?status=DELIVERED", "", nil)
		req.Header.Set(headerUserID, "courier-7")
		rec := m.do(t, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should report an unknown status as an invalid transition", func(t *testing.T) {
		m := newTestServer(t)
		m.advance.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.AdvanceOrderStatusCommand) bool {
			return c.Status() == "SHIPPED"
		})).Return(nil, errs.NewInvalidTransitionError("DELIVERY_IN_PROCESS", "SHIPPED"))

		req := request(http.MethodPatch, "/sales-orders/qrcode/abc?status=shipped",
			bearer(t, "courier-7", "COURIER"), nil)
		req.Header.Set(headerUserID, "courier-7")
		rec := m.do(t, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		_, data := decode[errorDTO](t, rec)
		assert.Equal(t, string(errs.KindInvalidTransition), data.Kind)
	})

	t.Run("should refuse roles without the capability before judging the status", func(t *testing.T) {
		for _, role := range []string{"STAFF", "GUEST"} {
			m := newTestServer(t, func(h *Handlers) {
				h.AdvanceOrderStatus = commands.NewAdvanceOrderStatusCommandHandler(
					untouchedQrTokenUoWFactory{t: t}, nil, nil, nil)
			})

			req := request(http.MethodPatch, "/sales-orders/qrcode/abc?status=SHIPPED",
				bearer(t, "user-1", role), nil)
			req.Header.Set(headerUserID, "user-1")
			rec := m.do(t, req)

			assert.Equal(t, http.StatusForbidden, rec.Code, role)
			_, data := decode[errorDTO](t, rec)
			assert.Equal(t, string(errs.KindUnauthorized), data.Kind, role)
		}
	})
}

func TestServer_PrometheusEndpoint(t *testing.T) {
	m := newTestServer(t)
	m.do(t, request(http.MethodGet, "/health", "", nil))

	rec := m.do(t, request(http.MethodGet, "/metrics", "", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "fulfillment_http_requests_total"))
	assert.Contains(t, body, `route="/health"`)
}
