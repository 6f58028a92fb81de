package account

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/repository"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/router"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) {
	repo := repository.NewAccountRepository(db)
	svc := service.NewAccountService(repo, mw)
	ctrl := controller.NewAccountController(svc)
	router.NewAccountRouter(ctrl).Setup(e, mw)
}
