package notification

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/repository"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/router"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init wires the notification HTTP surface and registers the async task
// handlers on the worker mux.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, mux *asynq.ServeMux) {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	mux.HandleFunc(constants.TaskBookingConfirmed, svc.HandleBookingConfirmed)
	mux.HandleFunc(constants.TaskBookingCancelled, svc.HandleBookingCancelled)
	mux.HandleFunc(constants.TaskSeriesCreated, svc.HandleSeriesCreated)
}
