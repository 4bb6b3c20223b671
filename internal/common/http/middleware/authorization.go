package middleware

import (
	"fmt"
	nethttp "net/http"

	"github.com/catatduit/go-catatduit/internal/common/http"

	"github.com/labstack/echo/v4"
)

func (m *AppMiddleware) InternalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			secretKey := c.Request().Header.Get("X-Secret-Key")
			statusCode := nethttp.StatusUnauthorized
			if secretKey == "" {
				return http.RestErrorResponse(c, statusCode, fmt.Errorf("%s", "required secret key"))
			}

			if secretKey != m.conf.SecretKey {
				return http.RestErrorResponse(c, statusCode, fmt.Errorf("%s", "invalid secret key"))
			}

			return next(c)
		}
	}
}

// TelegramWebhookAuth checks the secret token Telegram echoes back on every
// webhook delivery, set when the webhook was registered.
func (m *AppMiddleware) TelegramWebhookAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("X-Telegram-Bot-Api-Secret-Token")
			if token == "" || token != m.conf.Telegram.WebhookSecret {
				return http.RestErrorResponse(c, nethttp.StatusUnauthorized, fmt.Errorf("%s", "invalid webhook secret"))
			}

			return next(c)
		}
	}
}
