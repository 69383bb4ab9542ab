package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bilemo/bilemo-api/internal/api/metrics"
	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

const (
	headerETag         = "ETag"
	headerIfNoneMatch  = "If-None-Match"
	headerCacheControl = "Cache-Control"

	listCacheControl = "public, max-age=0, must-revalidate"
	msgNotInteger    = "This value should be of type integer."
)

// listInput reads the pagination query and the conditional request header.
func listInput(c echo.Context, p domain.Principal) (ports.ListInput, error) {
	in := ports.ListInput{Principal: p, Page: 1, IfNoneMatch: c.Request().Header.Get(headerIfNoneMatch)}

	err := echo.QueryParamsBinder(c).
		Int("page", &in.Page).
		Int("limit", &in.Limit).
		BindError()
	if err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return in, domain.NewValidationError(be.Field, msgNotInteger)
		}
		return in, err
	}
	return in, nil
}

// respondList writes a conditional list response: 304 with the validation
// token when the caller's copy is current, the converted page otherwise.
func respondList[S, T any](c echo.Context, resource string, res *ports.ListResult[S], conv func(S) T) error {
	h := c.Response().Header()
	h.Set(headerETag, `"`+res.ETag+`"`)
	h.Set(headerCacheControl, listCacheControl)
	h.Add(echo.HeaderVary, echo.HeaderAuthorization)

	if res.NotModified {
		metrics.ListResponsesTotal.WithLabelValues(resource, "not_modified").Inc()
		return c.NoContent(http.StatusNotModified)
	}

	metrics.ListResponsesTotal.WithLabelValues(resource, "fresh").Inc()
	return c.JSON(http.StatusOK, newPageResponse(res.Page, conv))
}
