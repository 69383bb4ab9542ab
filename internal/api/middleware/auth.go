package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/pkg/token"
)

const principalKey = "principal"

// Auth validates the bearer token and stores the caller's principal in the context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "JWT Token not found")
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "JWT Token not found")
			}

			p, err := token.Parse(jwtSecret, strings.TrimSpace(raw))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid JWT Token")
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// Principal returns the principal stored by Auth.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// WithPrincipal stores p as if Auth had run. Used by handler tests.
func WithPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}
