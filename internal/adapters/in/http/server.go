// Package http is the REST edge of the fulfillment service: routing,
// bearer-token resolution, request validation against the embedded OpenAPI
// document, error mapping and the QR endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/qrtoken"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	stockOutHandler interface {
		Handle(ctx context.Context, command commands.StockOutCommand) (*order.SalesOrder, error)
	}
	cancelOrderHandler interface {
		Handle(ctx context.Context, command commands.CancelOrderCommand) (commands.CancelOrderResult, error)
	}
	issueQrTokenHandler interface {
		Handle(ctx context.Context, command commands.IssueQrTokenCommand) (*qrtoken.Token, error)
	}
	advanceOrderStatusHandler interface {
		Handle(ctx context.Context, command commands.AdvanceOrderStatusCommand) (*order.SalesOrder, error)
	}
	orderMetricsHandler interface {
		Handle(ctx context.Context, query queries.GetOrderMetricsQuery) (queries.GetOrderMetricsQueryResponse, error)
	}
	listOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.Page[queries.OrderSummaryResponse], error)
	}
	orderDetailsHandler interface {
		Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.OrderDetailsResponse, error)
	}
	verifyQrTokenHandler interface {
		Handle(ctx context.Context, query queries.VerifyQrTokenQuery) (queries.VerifyQrTokenQueryResponse, error)
	}
	qrTokenHandler interface {
		Handle(ctx context.Context, query queries.GetQrTokenQuery) (queries.GetQrTokenQueryResponse, error)
	}
)

// Handlers groups the use cases the REST surface dispatches to.
type Handlers struct {
	StockOut           stockOutHandler
	CancelOrder        cancelOrderHandler
	IssueQrToken       issueQrTokenHandler
	AdvanceOrderStatus advanceOrderStatusHandler
	OrderMetrics       orderMetricsHandler
	ListOrders         listOrdersHandler
	OrderDetails       orderDetailsHandler
	VerifyQrToken      verifyQrTokenHandler
	QrToken            qrTokenHandler
}

// Options carries the edge configuration.
type Options struct {
	Authenticator Authenticator
	// PublicBaseURL prefixes the URLs encoded into QR codes.
	PublicBaseURL string
	// Feed serves the live status WebSocket; nil disables the route.
	Feed     http.Handler
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

type Server struct {
	handlers      Handlers
	authenticator Authenticator
	publicBaseURL string
	feed          http.Handler
	registry      *prometheus.Registry
	logger        *slog.Logger
}

func NewServer(handlers Handlers, options Options) *Server {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := options.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &Server{
		handlers:      handlers,
		authenticator: options.Authenticator,
		publicBaseURL: strings.TrimRight(options.PublicBaseURL, "/"),
		feed:          options.Feed,
		registry:      registry,
		logger:        logger.With("component", "http"),
	}
}

// Register installs middleware and routes on e.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}
	router, err := newOpenAPIRouter(doc)
	if err != nil {
		return err
	}
	if err = registerSwagger(doc); err != nil {
		return err
	}

	e.HTTPErrorHandler = s.httpErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(newHTTPMetrics(s.registry).middleware)

	e.GET("/health", s.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if s.feed != nil {
		e.GET("/ws/sales-orders", echo.WrapHandler(s.feed))
	}

	validate := s.requestValidator(router)
	authenticate := s.authenticator.Middleware()

	inventory := e.Group("/inventory/sales-orders", authenticate, requireToken, validate)
	inventory.GET("", s.getOrderMetrics)
	inventory.GET("/all", s.listAllOrders)
	inventory.GET("/urgent", s.listUrgentOrders)
	inventory.GET("/search", s.searchOrders)
	inventory.GET("/filter", s.filterOrders)
	inventory.GET("/:id/items", s.getOrderDetails)
	inventory.PUT("/stocks/out", s.stockOut)
	inventory.PUT("/:id/cancel", s.cancelOrder)

	qr := e.Group("/sales-orders/qrcode", authenticate, validate)
	qr.GET("/:id/view", s.issueQrToken)
	qr.GET("/:id/verify", s.verifyQrToken)
	qr.GET("/:id/image", s.qrTokenImage)
	qr.PATCH("/:id", s.advanceOrderStatus)

	return nil
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: "Healthy"})
}

// httpErrorHandler renders echo's own errors (unknown route, bad method)
// in the envelope.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok {
		message := http.StatusText(he.Code)
		if m, isString := he.Message.(string); isString {
			message = m
		}
		_ = c.JSON(he.Code, envelope{Message: message})
		return
	}
	_ = s.errorResponse(c, err)
}

func ok(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}
