package router

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	Controller *controller.NotificationController
}

func NewNotificationRouter(ctrl *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{Controller: ctrl}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	group := e.Group("/api/v1/notifications", mw.AuthMiddleware())
	group.GET("", r.Controller.ListMine)
	group.GET("/unread-count", r.Controller.CountUnread)
	group.PUT("/mark-read", r.Controller.MarkAsRead)
	group.PUT("/mark-all-read", r.Controller.MarkAllAsRead)
}
