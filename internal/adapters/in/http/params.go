package http

import (
	"strings"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const headerUserID = "X-User-ID"

func pathParam(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	raw, err := pathParam(c, "id")
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(raw)
}

// queryParam binds an optional form-style query parameter; absent values
// leave the zero value.
func queryParam[T any](c echo.Context, name string) (T, error) {
	var value *T
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		var zero T
		return zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value == nil {
		var zero T
		return zero, nil
	}
	return *value, nil
}

func requiredQueryParam(c echo.Context, name string) (string, error) {
	var value string
	if err := runtime.BindQueryParameter("form", true, true, name, c.QueryParams(), &value); err != nil {
		return "", errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return value, nil
}

// headerParam returns the trimmed header value; required headers must be
// non-blank.
func headerParam(c echo.Context, name string, required bool) (string, error) {
	raw := strings.TrimSpace(c.Request().Header.Get(name))
	if raw == "" {
		if required {
			return "", errs.NewValueIsRequiredError(name)
		}
		return "", nil
	}

	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, raw, &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Required: required})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func pageParams(c echo.Context) (queries.PageRequest, error) {
	page, err := queryParam[int](c, "page")
	if err != nil {
		return queries.PageRequest{}, err
	}
	size, err := queryParam[int](c, "size")
	if err != nil {
		return queries.PageRequest{}, err
	}
	sortBy, err := queryParam[string](c, "sortBy")
	if err != nil {
		return queries.PageRequest{}, err
	}
	sortDir, err := queryParam[string](c, "sortDir")
	if err != nil {
		return queries.PageRequest{}, err
	}
	return queries.NewPageRequest(page, size, sortBy, sortDir)
}
