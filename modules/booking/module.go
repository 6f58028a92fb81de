package booking

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/core/queue"
	accountRepository "github.com/EngStrategy/arenahub-backend-sub000/modules/account/repository"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/repository"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/router"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/service"
	courtRepository "github.com/EngStrategy/arenahub-backend-sub000/modules/court/repository"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, tasks *queue.Queue) {
	bookingRepo := repository.NewBookingRepository(db)
	courtRepo := courtRepository.NewCourtRepository(db)
	scheduleRepo := courtRepository.NewScheduleRepository(db)
	accountRepo := accountRepository.NewAccountRepository(db)

	svc := service.NewBookingService(bookingRepo, courtRepo, scheduleRepo, accountRepo, tasks)

	ctrl := controller.NewBookingController(svc)
	router.NewBookingRouter(ctrl).Setup(e, mw)
}
