package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindQuantityExceeded:
		return http.StatusUnprocessableEntity
	case errs.KindInvalidTransition:
		return http.StatusConflict
	case errs.KindUnauthorized:
		return http.StatusForbidden
	case errs.KindTokenNotFound, errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindTokenExpired:
		return http.StatusGone
	case errs.KindOrderBusy:
		return http.StatusLocked
	case errs.KindInventoryUnavailable:
		return http.StatusServiceUnavailable
	case errs.KindNetwork:
		return http.StatusBadGateway
	case errs.KindAlreadyCancelled:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse renders err in the envelope. Internal errors are logged and
// replaced by a generic message.
func (s *Server) errorResponse(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusForKind(kind)

	if kind == errs.KindInternal {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err)
		return c.JSON(status, envelope{
			Message: "internal error",
			Data:    errorDTO{Kind: string(kind)},
		})
	}

	return c.JSON(status, envelope{
		Message: err.Error(),
		Data:    errorDTO{Kind: string(kind), Details: details(err)},
	})
}

// details flattens joined errors so clients can show one line per problem.
func details(err error) []string {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		return nil
	}
	var lines []string
	for _, e := range joined.Unwrap() {
		if e != nil {
			lines = append(lines, e.Error())
		}
	}
	return lines
}
