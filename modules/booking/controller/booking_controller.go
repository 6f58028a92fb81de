package controller

import (
	"github.com/EngStrategy/arenahub-backend-sub000/core/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/core/params"
	accountentity "github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BookingController struct {
	controller.BaseController
	service service.BookingServiceInterface
}

func NewBookingController(svc service.BookingServiceInterface) *BookingController {
	return &BookingController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (ctrl *BookingController) Create(c echo.Context) error {
	athleteID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.service.CreateBooking(c.Request().Context(), athleteID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.CreatedResponse(c, resp, "Booking created")
}

func (ctrl *BookingController) Get(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}
	role := accountentity.Role(middleware.ActorRole(c))

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid booking id", err))
	}

	resp, appErr := ctrl.service.GetBooking(c.Request().Context(), actorID, role, bookingID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Booking retrieved")
}

func (ctrl *BookingController) ListMine(c echo.Context) error {
	athleteID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	qp := params.NewQueryParams(c)
	resp, appErr := ctrl.service.ListMyBookings(c.Request().Context(), athleteID, qp)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Bookings retrieved")
}

// CourtAgenda returns the bookings of one court on one date, operator only.
func (ctrl *BookingController) CourtAgenda(c echo.Context) error {
	operatorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	courtID, err := uuid.Parse(c.Param("court_id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid court id", err))
	}

	resp, appErr := ctrl.service.CourtAgenda(c.Request().Context(), operatorID, courtID, c.QueryParam("date"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Agenda retrieved")
}

// ListPublic is unauthenticated: open matches other athletes can join.
func (ctrl *BookingController) ListPublic(c echo.Context) error {
	resp, appErr := ctrl.service.ListPublicBookings(c.Request().Context(), c.QueryParam("date"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Public bookings retrieved")
}

func (ctrl *BookingController) Transition(c echo.Context) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}
	role := accountentity.Role(middleware.ActorRole(c))

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid booking id", err))
	}

	var req dto.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.service.TransitionStatus(c.Request().Context(), actorID, role, bookingID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Booking status updated")
}

func (ctrl *BookingController) CancelSeries(c echo.Context) error {
	athleteID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	seriesID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid series id", err))
	}

	resp, appErr := ctrl.service.CancelSeries(c.Request().Context(), athleteID, seriesID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Series cancelled")
}
