package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bilemo/bilemo-api/internal/api/middleware"
	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// ctxPrincipal returns the caller identified by the Auth middleware. A
// missing principal means the route was mounted without Auth.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok || p.Role == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return p, nil
}

// pathID parses the :id route parameter. An id that cannot exist is
// reported with notFound, like any other unknown id.
func pathID(c echo.Context, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}
