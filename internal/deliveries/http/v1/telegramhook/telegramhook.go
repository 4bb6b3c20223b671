package telegramhook

import (
	nethttp "net/http"

	"github.com/catatduit/go-catatduit/internal/common/http"
	"github.com/catatduit/go-catatduit/internal/logging"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/services"

	"github.com/labstack/echo/v4"
)

type telegramHookHandler struct {
	botSvc services.BotService
}

// New telegram hook handler will initialize the telegram/ webhook endpoint
func New(app *echo.Group, botSvc services.BotService) {
	handler := telegramHookHandler{
		botSvc: botSvc,
	}
	api := app.Group("/telegram")
	api.POST("/webhook", handler.handleWebhook)
}

type webhookAckResponse struct {
	Kind   string `json:"kind" example:"webhook"`
	Status string `json:"status" example:"ok"`
}

// handleWebhook API consume one Telegram update
// @Summary Consume a Telegram webhook update
// @Description Process one bot update; always acknowledged so Telegram does not redeliver
// @Tags Telegram
// @Accept  json
// @Produce  json
// @Param body body models.TelegramUpdate true "body"
// @Param X-Telegram-Bot-Api-Secret-Token header string true "webhook secret token"
// @Success 200 {object} webhookAckResponse
// @Failure 400 {object} http.RestErrorResponseModel
// @Router /v1/telegram/webhook [post]
func (h *telegramHookHandler) handleWebhook(c echo.Context) error {
	update := new(models.TelegramUpdate)

	if err := c.Bind(update); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	// Telegram redelivers on any non-2xx, so failures are logged and
	// acknowledged instead of surfaced.
	if err := h.botSvc.HandleUpdate(c.Request().Context(), *update); err != nil {
		logging.Error(c.Request().Context(), "[TELEGRAM.WEBHOOK]", logging.Err(err))
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, webhookAckResponse{
		Kind:   "webhook",
		Status: "ok",
	})
}
