package transaction

import (
	nethttp "net/http"
	"time"

	"github.com/catatduit/go-catatduit/internal/common/http"
	"github.com/catatduit/go-catatduit/internal/common/validation"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type transactionHandler struct {
	transactionSvc services.TransactionService
}

// New transaction handler will initialize the transactions/ resources endpoint
func New(app *echo.Group, transactionSvc services.TransactionService) {
	handler := transactionHandler{
		transactionSvc: transactionSvc,
	}
	api := app.Group("/transactions")
	api.POST("", handler.createTransaction)
	api.GET("", handler.getTransactionList)
	api.GET("/today", handler.getDailySummary)
	api.GET("/:transactionId", handler.getTransactionByID)
	api.POST("/undo", handler.undoTransaction)
}

// createTransaction API create transaction
// @Summary Create data transaction
// @Description Create data transaction manually, bypassing the inference engine
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Param body body models.CreateTransactionRequest true "body"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 201 {object} models.TransactionOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/transactions [post]
func (h *transactionHandler) createTransaction(c echo.Context) error {
	req := new(models.CreateTransactionRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	res, err := h.transactionSvc.Create(c.Request().Context(), models.CreateTransactionIn{
		UserID:      uuid.MustParse(req.UserID),
		WalletID:    uuid.MustParse(req.WalletID),
		CategoryID:  uuid.MustParse(req.CategoryID),
		Type:        models.TransactionType(req.Type),
		Amount:      amount,
		Description: req.Description,
		Source:      models.TransactionSourceManual,
	})
	if err != nil {
		return http.RestErrorResponse(c, getHTTPStatusCode(err), err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusCreated, res.ConvertToTransactionOut())
}

// getTransactionList API get transaction list
// @Summary Get data transaction list
// @Description Get data transaction list with filters and offset pagination
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Param userId query string true "user id"
// @Param walletId query string false "wallet id"
// @Param categoryId query string false "category id"
// @Param type query string false "transaction type"
// @Param dateFrom query string false "start date (YYYY-MM-DD)"
// @Param dateTo query string false "end date (YYYY-MM-DD), exclusive"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Param sortBy query string false "asc or desc by created time"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} http.RestTotalRowResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/transactions [get]
func (h *transactionHandler) getTransactionList(c echo.Context) error {
	req := new(models.GetTransactionListRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	opts, err := buildListOpts(req)
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	res, total, err := h.transactionSvc.List(c.Request().Context(), opts)
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	data := make([]models.TransactionOut, 0, len(res))
	for i := range res {
		data = append(data, *res[i].ConvertToTransactionOut())
	}

	return http.RestSuccessResponseListWithTotalRows(c, data, total)
}

func buildListOpts(req *models.GetTransactionListRequest) (opts models.GetTransactionListIn, err error) {
	opts = models.GetTransactionListIn{
		UserID: uuid.MustParse(req.UserID),
		Type:   models.TransactionType(req.Type),
		Limit:  req.Limit,
		Offset: req.Offset,
		SortBy: req.SortBy,
	}

	if req.WalletID != "" {
		opts.WalletID = uuid.MustParse(req.WalletID)
	}
	if req.CategoryID != "" {
		opts.CategoryID = uuid.MustParse(req.CategoryID)
	}
	if req.DateFrom != "" {
		opts.DateFrom, err = time.Parse(time.DateOnly, req.DateFrom)
		if err != nil {
			return
		}
	}
	if req.DateTo != "" {
		opts.DateTo, err = time.Parse(time.DateOnly, req.DateTo)
		if err != nil {
			return
		}
	}

	return
}

// getDailySummary API get today's summary
// @Summary Get today's transaction summary
// @Description Get today's totals plus the list of today's transactions
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Param userId query string true "user id"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.DailySummaryOut
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/transactions/today [get]
func (h *transactionHandler) getDailySummary(c echo.Context) error {
	req := new(models.GetDailySummaryRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.transactionSvc.Today(c.Request().Context(), uuid.MustParse(req.UserID))
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res.ConvertToDailySummaryOut())
}

// getTransactionByID API get one transaction
// @Summary Get data transaction by id
// @Description Get data transaction by id
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Param transactionId path string true "transaction id"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.TransactionOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/transactions/{transactionId} [get]
func (h *transactionHandler) getTransactionByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	res, err := h.transactionSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		return http.RestErrorResponse(c, getHTTPStatusCode(err), err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res.ConvertToTransactionOut())
}

// undoTransaction API undo the latest transaction
// @Summary Undo the latest transaction
// @Description Delete the user's most recent transaction and restore the wallet balance
// @Tags Transactions
// @Accept  json
// @Produce  json
// @Param body body models.UndoTransactionRequest true "body"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.TransactionOut
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/transactions/undo [post]
func (h *transactionHandler) undoTransaction(c echo.Context) error {
	req := new(models.UndoTransactionRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.transactionSvc.Undo(c.Request().Context(), uuid.MustParse(req.UserID))
	if err != nil {
		return http.RestErrorResponse(c, getHTTPStatusCode(err), err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res.ConvertToTransactionOut())
}
