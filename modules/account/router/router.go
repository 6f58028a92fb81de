package router

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"

	"github.com/labstack/echo/v4"
)

type AccountRouter struct {
	Controller *controller.AccountController
}

func NewAccountRouter(ctrl *controller.AccountController) *AccountRouter {
	return &AccountRouter{Controller: ctrl}
}

func (r *AccountRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/operators/register", r.Controller.RegisterOperator)
	auth.POST("/athletes/register", r.Controller.RegisterAthlete)
	auth.POST("/login", r.Controller.Login)

	me := v1.Group("/me", mw.AuthMiddleware())
	me.GET("", r.Controller.Me)
	me.PUT("/cancellation-policy", r.Controller.UpdateCancellationPolicy,
		mw.RequireRole(string(entity.RoleOperator)))
}
