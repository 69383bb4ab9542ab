package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bilemo/bilemo-api/internal/api/metrics"
	"github.com/bilemo/bilemo-api/internal/core/domain"
)

// errorResponse is the envelope of every non-validation error.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - renders validation failures as a field → messages object with status 400,
//   - maps domain errors onto their HTTP status,
//   - logs anything unexpected and answers 500 without leaking details.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			metrics.ValidationFailuresTotal.WithLabelValues(c.Path()).Inc()
			_ = c.JSON(http.StatusBadRequest, verr.Fields.Tree())
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Code: code, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, unknown routes, auth middleware)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			log.Debug().Err(he.Internal).Str("path", c.Path()).Msg("request rejected")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "Client not found"
	case errors.Is(err, domain.ErrMobileNotFound):
		return http.StatusNotFound, "Mobile not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access denied."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "JWT Token not found"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
