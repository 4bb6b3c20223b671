package analytics

import (
	"errors"
	nethttp "net/http"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/common/http"
	"github.com/catatduit/go-catatduit/internal/common/validation"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type analyticsHandler struct {
	analyticsSvc services.AnalyticsService
}

// New analytics handler will initialize the analytics/ resources endpoint
func New(app *echo.Group, analyticsSvc services.AnalyticsService) {
	handler := analyticsHandler{
		analyticsSvc: analyticsSvc,
	}
	api := app.Group("/analytics")
	api.GET("/monthly", handler.getMonthly)
}

// getMonthly API get monthly analytics
// @Summary Get monthly analytics
// @Description Get the monthly summary, category breakdown, weekly trend and transaction frequency
// @Tags Analytics
// @Accept  json
// @Produce  json
// @Param userId query string true "user id"
// @Param month query string false "month (YYYY-MM), defaults to the current month"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.AnalyticsOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/analytics/monthly [get]
func (h *analyticsHandler) getMonthly(c echo.Context) error {
	req := new(models.GetAnalyticsRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.analyticsSvc.GetMonthly(c.Request().Context(), uuid.MustParse(req.UserID), req.Month)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
		}
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res)
}
