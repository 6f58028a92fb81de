package router

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	accountentity "github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/controller"

	"github.com/labstack/echo/v4"
)

type CourtRouter struct {
	Controller *controller.CourtController
}

func NewCourtRouter(ctrl *controller.CourtController) *CourtRouter {
	return &CourtRouter{Controller: ctrl}
}

func (r *CourtRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public catalog: anyone can browse courts and their schedules.
	public := v1.Group("/courts")
	public.GET("/:id", r.Controller.Get)
	public.GET("/slug/:slug", r.Controller.GetBySlug)
	public.GET("/:id/schedule", r.Controller.GetSchedule)
	public.GET("/:id/slots", r.Controller.ListSlots)

	operator := v1.Group("/operator/courts",
		mw.AuthMiddleware(), mw.RequireRole(string(accountentity.RoleOperator)))
	operator.POST("", r.Controller.Create)
	operator.GET("", r.Controller.ListMine)
	operator.PUT("/:id", r.Controller.Update)
	operator.POST("/:id/photo", r.Controller.UploadPhoto)
	operator.PUT("/:id/schedule", r.Controller.UpdateSchedule)
}
