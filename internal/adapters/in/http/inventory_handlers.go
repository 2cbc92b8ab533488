package http

import (
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) getOrderMetrics(c echo.Context) error {
	metrics, err := s.handlers.OrderMetrics.Handle(c.Request().Context(), queries.NewGetOrderMetricsQuery())
	if err != nil {
		return s.errorResponse(c, err)
	}
	return ok(c, "Order metrics", toMetricsDTO(metrics))
}

func (s *Server) listAllOrders(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return s.listOrders(c, "Sales orders", queries.NewListAllOrdersQuery(page))
}

func (s *Server) listUrgentOrders(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return s.listOrders(c, "Urgent sales orders", queries.NewListUrgentOrdersQuery(page))
}

func (s *Server) searchOrders(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return s.errorResponse(c, err)
	}
	text, err := requiredQueryParam(c, "text")
	if err != nil {
		return s.errorResponse(c, err)
	}
	query, err := queries.NewSearchOrdersQuery(text, page)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return s.listOrders(c, "Search results", query)
}

func (s *Server) filterOrders(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return s.errorResponse(c, err)
	}
	status, err := requiredQueryParam(c, "status")
	if err != nil {
		return s.errorResponse(c, err)
	}
	query, err := queries.NewFilterOrdersQuery(status, page)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return s.listOrders(c, "Filtered sales orders", query)
}

func (s *Server) listOrders(c echo.Context, message string, query queries.ListOrdersQuery) error {
	page, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return ok(c, message, toSummaryPage(page))
}

func (s *Server) getOrderDetails(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.errorResponse(c, err)
	}
	query, err := queries.NewGetOrderDetailsQuery(orderID)
	if err != nil {
		return s.errorResponse(c, err)
	}
	details, err := s.handlers.OrderDetails.Handle(c.Request().Context(), query)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return ok(c, "Sales order items", toDetailsDTO(details))
}

func (s *Server) stockOut(c echo.Context) error {
	var body stockOutRequest
	if err := c.Bind(&body); err != nil {
		return s.errorResponse(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	orderID, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return s.errorResponse(c, err)
	}

	command, err := commands.NewStockOutCommand(orderID, body.ItemQuantities, actingUser(c))
	if err != nil {
		return s.errorResponse(c, err)
	}
	salesOrder, err := s.handlers.StockOut.Handle(c.Request().Context(), command)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return ok(c, "Stock out recorded", toDetailsDTO(queries.NewOrderDetailsResponse(salesOrder)))
}

func (s *Server) cancelOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.errorResponse(c, err)
	}
	command, err := commands.NewCancelOrderCommand(orderID, actingUser(c))
	if err != nil {
		return s.errorResponse(c, err)
	}
	result, err := s.handlers.CancelOrder.Handle(c.Request().Context(), command)
	if err != nil {
		return s.errorResponse(c, err)
	}

	released := make(map[string]int, len(result.Released))
	for _, m := range result.Released {
		released[m.ProductID] += m.Quantity
	}
	message := "Sales order cancelled"
	if result.AlreadyCancelled {
		message = "Sales order was already cancelled"
	}
	return ok(c, message, cancelDTO{
		Order:            toDetailsDTO(queries.NewOrderDetailsResponse(result.Order)),
		AlreadyCancelled: result.AlreadyCancelled,
		Released:         released,
	})
}
