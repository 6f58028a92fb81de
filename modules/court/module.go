package court

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/cache"
	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/core/storage"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/repository"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/router"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, c *cache.Cache, uploader *storage.Uploader) {
	courtRepo := repository.NewCourtRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	courtSvc := service.NewCourtService(courtRepo, uploader)
	scheduleSvc := service.NewScheduleService(courtRepo, scheduleRepo, c)

	ctrl := controller.NewCourtController(courtSvc, scheduleSvc)
	router.NewCourtRouter(ctrl).Setup(e, mw)
}
