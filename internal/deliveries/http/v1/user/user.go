package user

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

type userHandler struct {
	userSvc services.UserService
}

// New user handler will initialize the users/ resources endpoint
func New(app *echo.Group, userSvc services.UserService) {
	handler := userHandler{
		userSvc: userSvc,
	}
	api := app.Group("/users")
	api.POST("", handler.registerUser)
	api.GET("/:telegramId", handler.getUserByTelegramID)
}

// registerUser API register user
// @Summary Register a user
// @Description Register a user from their Telegram identity, creating the default wallet
// @Tags Users
// @Accept  json
// @Produce  json
// @Param body body models.CreateUserRequest true "body"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 201 {object} models.UserOut
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 409 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel{errors=[]validation.ErrorValidateResponse}
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/users [post]
func (h *userHandler) registerUser(c echo.Context) error {
	req := new(models.CreateUserRequest)

	if err := c.Bind(req); err != nil {
		return http.RestErrorResponse(c, nethttp.StatusBadRequest, err)
	}

	if err := validation.ValidateStruct(req); err != nil {
		return http.RestErrorValidationResponse(c, err)
	}

	res, err := h.userSvc.Register(c.Request().Context(), models.CreateUserIn{
		TelegramID: req.TelegramID,
		Name:       req.Name,
		Email:      req.Email,
	})
	if err != nil {
		if errors.Is(err, common.ErrDataExist) {
			return http.RestErrorResponse(c, nethttp.StatusConflict, err)
		}
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusCreated, res.ConvertToUserOut())
}

// getUserByTelegramID API get one user
// @Summary Get a user by telegram id
// @Description Get a user by their Telegram chat id
// @Tags Users
// @Accept  json
// @Produce  json
// @Param telegramId path string true "telegram id"
// @Param X-Secret-Key header string true "X-Secret-Key"
// @Success 200 {object} models.UserOut
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/users/{telegramId} [get]
func (h *userHandler) getUserByTelegramID(c echo.Context) error {
	res, err := h.userSvc.GetByTelegramID(c.Request().Context(), c.Param("telegramId"))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return http.RestErrorResponse(c, nethttp.StatusNotFound, err)
		}
		return http.RestErrorResponse(c, nethttp.StatusInternalServerError, err)
	}

	return http.RestSuccessResponse(c, nethttp.StatusOK, res.ConvertToUserOut())
}
