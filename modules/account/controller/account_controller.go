package controller

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/service"

	"github.com/labstack/echo/v4"
)

type AccountController struct {
	controller.BaseController
	service service.AccountServiceInterface
}

func NewAccountController(svc service.AccountServiceInterface) *AccountController {
	return &AccountController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (ctrl *AccountController) RegisterOperator(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.service.RegisterOperator(c.Request().Context(), &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.CreatedResponse(c, resp, "Operator registered")
}

func (ctrl *AccountController) RegisterAthlete(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.service.RegisterAthlete(c.Request().Context(), &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.CreatedResponse(c, resp, "Athlete registered")
}

func (ctrl *AccountController) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.service.Login(c.Request().Context(), &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Logged in")
}

func (ctrl *AccountController) Me(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}
	role := entity.Role(middleware.ActorRole(c))

	resp, appErr := ctrl.service.GetProfile(c.Request().Context(), actorID, role)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Profile retrieved")
}

// UpdateCancellationPolicy sets the operator's own cancellation lead time.
func (ctrl *AccountController) UpdateCancellationPolicy(c echo.Context) error {
	operatorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	var req dto.UpdateCancellationPolicyRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.service.UpdateCancellationPolicy(c.Request().Context(), operatorID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Cancellation policy updated")
}
