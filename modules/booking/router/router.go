package router

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	accountentity "github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/controller"

	"github.com/labstack/echo/v4"
)

type BookingRouter struct {
	Controller *controller.BookingController
}

func NewBookingRouter(ctrl *controller.BookingController) *BookingRouter {
	return &BookingRouter{Controller: ctrl}
}

func (r *BookingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public match listing needs no token.
	v1.GET("/public/bookings", r.Controller.ListPublic)

	bookings := v1.Group("/bookings", mw.AuthMiddleware())
	bookings.POST("", r.Controller.Create, mw.RequireRole(string(accountentity.RoleAthlete)))
	bookings.GET("", r.Controller.ListMine, mw.RequireRole(string(accountentity.RoleAthlete)))
	bookings.GET("/:id", r.Controller.Get)
	bookings.POST("/:id/status", r.Controller.Transition)

	series := v1.Group("/series", mw.AuthMiddleware(), mw.RequireRole(string(accountentity.RoleAthlete)))
	series.POST("/:id/cancel", r.Controller.CancelSeries)

	agenda := v1.Group("/courts/:court_id/agenda", mw.AuthMiddleware(), mw.RequireRole(string(accountentity.RoleOperator)))
	agenda.GET("", r.Controller.CourtAgenda)
}
