package inference

import (
	"errors"
	nethttp "net/http"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/common/http"
	"github.com/catatduit/go-catatduit/internal/common/validation"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/services"

	"github.com/labstack/echo/v4"
)

type inferenceHandler struct {
	inferenceSvc services.InferenceService
}

// New inference handler will initialize the inference/ resources endpoint
func New(app *echo.Group, inferenceSvc services.InferenceService) {
	handler := inferenceHandler{
		inferenceSvc: inferenceSvc,
	}
	api := app.Group("/inference")
	api.POST("/parse", handler.parseText)
	api.POST("/receipts", handler.structureReceipt)
}

// parseText API classify one chat message
// @Summary Parse a chat message into a transaction
// @Description Run the text engine on one message; a confident parse is recorded, a weak one is parked for confirmation
// @Tags Inference
// @Accept  json
// @Produce  json
// @Param body body models.ParseTextRequest true "body"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.ParseTextOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/inference/parse [post]
func (h *inferenceHandler) parseText(c echo.Context) error {
	req := new(models.ParseTextRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.inferenceSvc.ParseText(c.Request().Context(), models.ParseTextIn{
		TelegramID: req.TelegramID,
		Text:       req.Text,
	})
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return http.RestErrorResponse(c, nethttp.StatusNotFound, err)
		}
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res)
}

// structureReceipt API structure OCR text
// @Summary Structure receipt text
// @Description Run the receipt engine on OCR text without recording anything
// @Tags Inference
// @Accept  json
// @Produce  json
// @Param body body models.StructureReceiptRequest true "body"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.StructureReceiptOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/inference/receipts [post]
func (h *inferenceHandler) structureReceipt(c echo.Context) error {
	req := new(models.StructureReceiptRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.inferenceSvc.StructureReceipt(c.Request().Context(), models.StructureReceiptIn{
		TelegramID: req.TelegramID,
		RawText:    req.RawText,
	})
	if err != nil {
		if errors.Is(err, common.ErrUnreadableReceipt) {
			return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
		}
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res)
}
