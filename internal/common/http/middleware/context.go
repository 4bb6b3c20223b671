package middleware

import (
	"github.com/catatduit/go-catatduit/internal/logging"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const correlationIDHeader = "X-Correlation-ID"

// Context propagates the caller's correlation id, minting one when absent, so
// every log line of a request shares an identifier.
func (m *AppMiddleware) Context() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			correlationID := c.Request().Header.Get(correlationIDHeader)
			if correlationID == "" {
				correlationID = uuid.NewString()
			}

			ctx := logging.SetCorrelationID(c.Request().Context(), correlationID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(correlationIDHeader, correlationID)

			return next(c)
		}
	}
}
