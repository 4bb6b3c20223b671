package wallet

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
	"github.com/shopspring/decimal"
)

type walletHandler struct {
	walletSvc services.WalletService
}

// New wallet handler will initialize the wallets/ resources endpoint
func New(app *echo.Group, walletSvc services.WalletService) {
	handler := walletHandler{
		walletSvc: walletSvc,
	}
	api := app.Group("/wallets")
	api.POST("", handler.createWallet)
	api.GET("", handler.getAllWallet)
	api.GET("/:walletId", handler.getWalletByID)
}

// createWallet API create wallet
// @Summary Create data wallet
// @Description Create data wallet
// @Tags Wallets
// @Accept  json
// @Produce  json
// @Param body body models.CreateWalletRequest true "body"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 201 {object} models.WalletOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 409 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/wallets [post]
func (h *walletHandler) createWallet(c echo.Context) error {
	req := new(models.CreateWalletRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	in := models.CreateWalletIn{
		UserID:   uuid.MustParse(req.UserID),
		Name:     req.Name,
		ColorHex: req.ColorHex,
		Icon:     req.Icon,
	}
	if req.Balance != "" {
		balance, err := decimal.NewFromString(req.Balance)
		if err != nil {
			return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
		}
		in.Balance = balance
	}

	res, err := h.walletSvc.Create(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, common.ErrDataExist) {
			return http.RestErrorResponse(c, nethttp.StatusConflict, err)
		}
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusCreated, res.ConvertToWalletOut())
}

// getAllWallet API get all wallets of a user
// @Summary Get all data wallet
// @Description Get all data wallet owned by one user
// @Tags Wallets
// @Accept  json
// @Produce  json
// @Param userId query string true "user id"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} http.RestTotalRowResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/wallets [get]
func (h *walletHandler) getAllWallet(c echo.Context) error {
	req := new(models.GetWalletListRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.walletSvc.GetAll(c.Request().Context(), uuid.MustParse(req.UserID))
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	data := make([]models.WalletOut, 0, len(res))
	for i := range res {
		data = append(data, *res[i].ConvertToWalletOut())
	}

	return http.RestSuccessResponseListWithTotalRows(c, data, len(data))
}

// getWalletByID API get one wallet
// @Summary Get data wallet by id
// @Description Get data wallet by id
// @Tags Wallets
// @Accept  json
// @Produce  json
// @Param walletId path string true "wallet id"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.WalletOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/wallets/{walletId} [get]
func (h *walletHandler) getWalletByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("walletId"))
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	res, err := h.walletSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrWalletNotFound) {
			return http.RestErrorResponse(c, nethttp.StatusNotFound, err)
		}
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res.ConvertToWalletOut())
}
