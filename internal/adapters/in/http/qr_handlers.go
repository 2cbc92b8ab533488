package http

import (
	"fmt"
	"net/http"
	"net/url"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
)

const qrImageSize = 256

func (s *Server) issueQrToken(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return s.errorResponse(c, err)
	}
	command, err := commands.NewIssueQrTokenCommand(orderID, actingUser(c))
	if err != nil {
		return s.errorResponse(c, err)
	}
	token, err := s.handlers.IssueQrToken.Handle(c.Request().Context(), command)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return ok(c, "QR code issued", qrViewDTO{
		ImageURL:   s.qrURL(token.Value(), "image"),
		Token:      token.Value(),
		TTLMinutes: token.TTLMinutes(),
		ExpiresAt:  token.ExpiresAt(),
	})
}

func (s *Server) verifyQrToken(c echo.Context) error {
	token, err := pathParam(c, "id")
	if err != nil {
		return s.errorResponse(c, err)
	}
	userID, err := headerParam(c, headerUserID, false)
	if err != nil {
		return s.errorResponse(c, err)
	}
	query, err := queries.NewVerifyQrTokenQuery(token, userID)
	if err != nil {
		return s.errorResponse(c, err)
	}
	verified, err := s.handlers.VerifyQrToken.Handle(c.Request().Context(), query)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return ok(c, "QR code verified", qrVerifyDTO{
		Order:          toDetailsDTO(verified.Order),
		Token:          verified.Token,
		TokenExpiresAt: verified.TokenExpiresAt,
		VerifiedBy:     verified.VerifiedBy,
	})
}

func (s *Server) qrTokenImage(c echo.Context) error {
	value, err := pathParam(c, "id")
	if err != nil {
		return s.errorResponse(c, err)
	}
	query, err := queries.NewGetQrTokenQuery(value)
	if err != nil {
		return s.errorResponse(c, err)
	}
	token, err := s.handlers.QrToken.Handle(c.Request().Context(), query)
	if err != nil {
		return s.errorResponse(c, err)
	}

	png, err := qrcode.Encode(s.qrURL(token.Token, "verify"), qrcode.Medium, qrImageSize)
	if err != nil {
		return s.errorResponse(c, fmt.Errorf("render qr code: %w", err))
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// advanceOrderStatus takes the acting user id from X-User-ID and the role
// from the bearer token.
func (s *Server) advanceOrderStatus(c echo.Context) error {
	token, err := pathParam(c, "id")
	if err != nil {
		return s.errorResponse(c, err)
	}
	status, err := requiredQueryParam(c, "status")
	if err != nil {
		return s.errorResponse(c, err)
	}
	userID, err := headerParam(c, headerUserID, true)
	if err != nil {
		return s.errorResponse(c, err)
	}

	actor := actingUser(c)
	actor.ID = userID
	command, err := commands.NewAdvanceOrderStatusCommand(token, status, actor)
	if err != nil {
		return s.errorResponse(c, err)
	}
	salesOrder, err := s.handlers.AdvanceOrderStatus.Handle(c.Request().Context(), command)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return ok(c, "Order status updated", toDetailsDTO(queries.NewOrderDetailsResponse(salesOrder)))
}

func (s *Server) qrURL(token, action string) string {
	return s.publicBaseURL + "/sales-orders/qrcode/" + url.PathEscape(token) + "/" + action
}
