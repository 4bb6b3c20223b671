package category

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

type categoryHandler struct {
	categorySvc services.CategoryService
}

// New category handler will initialize the categories/ resources endpoint
func New(app *echo.Group, categorySvc services.CategoryService) {
	handler := categoryHandler{
		categorySvc: categorySvc,
	}
	api := app.Group("/categories")
	api.POST("", handler.createCategory)
	api.GET("", handler.getAllCategory)
}

// createCategory API create category
// @Summary Create data category
// @Description Create data category
// @Tags Categories
// @Accept  json
// @Produce  json
// @Param body body models.CreateCategoryRequest true "body"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 201 {object} models.CategoryOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 409 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/categories [post]
func (h *categoryHandler) createCategory(c echo.Context) error {
	req := new(models.CreateCategoryRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.categorySvc.Create(c.Request().Context(), models.CreateCategoryIn{
		Name:     req.Name,
		ColorHex: req.ColorHex,
		Icon:     req.Icon,
		Type:     models.TransactionType(req.Type),
	})
	if err != nil {
		if errors.Is(err, common.ErrDataExist) {
			return http.RestErrorResponse(c, nethttp.StatusConflict, err)
		}
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusCreated, res.ConvertToCategoryOut())
}

// getAllCategory API get all category
// @Summary Get all data category
// @Description Get all data category
// @Tags Categories
// @Accept  json
// @Produce  json
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} http.RestTotalRowResponseModel
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/categories [get]
func (h *categoryHandler) getAllCategory(c echo.Context) error {
	res, err := h.categorySvc.GetAll(c.Request().Context())
	if err != nil {
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	data := make([]models.CategoryOut, 0, len(res))
	for i := range res {
		data = append(data, *res[i].ConvertToCategoryOut())
	}

	return http.RestSuccessResponseListWithTotalRows(c, data, len(data))
}
