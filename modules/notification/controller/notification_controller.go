package controller

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/core/params"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/service"

	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	service *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (ctrl *NotificationController) ListMine(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	qp := params.NewQueryParams(c)
	resp, appErr := ctrl.service.GetMyNotifications(c.Request().Context(), actorID, qp)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Notifications retrieved")
}

func (ctrl *NotificationController) MarkAsRead(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	var req dto.MarkAsReadRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	if appErr := ctrl.service.MarkAsRead(c.Request().Context(), actorID, req.IDs); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, nil, "Notifications marked as read")
}

func (ctrl *NotificationController) MarkAllAsRead(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	if appErr := ctrl.service.MarkAllAsRead(c.Request().Context(), actorID); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, nil, "All notifications marked as read")
}

func (ctrl *NotificationController) CountUnread(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	count, appErr := ctrl.service.CountUnread(c.Request().Context(), actorID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, dto.UnreadCountResponse{Count: count}, "Unread count retrieved")
}
