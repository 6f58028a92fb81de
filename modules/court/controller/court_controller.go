package controller

import (
	"strconv"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/controller"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CourtController struct {
	controller.BaseController
	courts   service.CourtServiceInterface
	schedule service.ScheduleServiceInterface
}

func NewCourtController(courts service.CourtServiceInterface, schedule service.ScheduleServiceInterface) *CourtController {
	return &CourtController{
		BaseController: controller.NewBaseController(),
		courts:         courts,
		schedule:       schedule,
	}
}

func (ctrl *CourtController) Create(c echo.Context) error {
	operatorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	var req dto.CreateCourtRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.courts.CreateCourt(c.Request().Context(), operatorID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.CreatedResponse(c, resp, "Court created")
}

func (ctrl *CourtController) Get(c echo.Context) error {
	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid court id", err))
	}

	resp, appErr := ctrl.courts.GetCourt(c.Request().Context(), courtID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Court retrieved")
}

func (ctrl *CourtController) GetBySlug(c echo.Context) error {
	resp, appErr := ctrl.courts.GetCourtBySlug(c.Request().Context(), c.Param("slug"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Court retrieved")
}

func (ctrl *CourtController) ListMine(c echo.Context) error {
	operatorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	resp, appErr := ctrl.courts.ListMyCourts(c.Request().Context(), operatorID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Courts retrieved")
}

func (ctrl *CourtController) Update(c echo.Context) error {
	operatorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid court id", err))
	}

	var req dto.UpdateCourtRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.courts.UpdateCourt(c.Request().Context(), operatorID, courtID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Court updated")
}

func (ctrl *CourtController) UploadPhoto(c echo.Context) error {
	operatorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid court id", err))
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Missing photo file", err))
	}

	src, err := file.Open()
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInternalServer, "Failed to read photo", err))
	}
	defer src.Close()

	resp, appErr := ctrl.courts.UploadPhoto(c.Request().Context(), operatorID, courtID,
		file.Filename, file.Header.Get("Content-Type"), src)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Photo uploaded")
}

func (ctrl *CourtController) UpdateSchedule(c echo.Context) error {
	operatorID, ok := middleware.ActorID(c)
	if !ok {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrUnauthorized, "Missing actor identity", nil))
	}

	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid court id", err))
	}

	var req dto.UpdateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidRequestData, "Invalid request body", err))
	}

	resp, appErr := ctrl.schedule.UpdateWeeklySchedule(c.Request().Context(), operatorID, courtID, &req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Schedule updated")
}

func (ctrl *CourtController) GetSchedule(c echo.Context) error {
	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid court id", err))
	}

	resp, appErr := ctrl.schedule.GetWeeklySchedule(c.Request().Context(), courtID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Schedule retrieved")
}

// ListSlots returns the slot templates of one weekday, 0 (Sunday) to 6.
func (ctrl *CourtController) ListSlots(c echo.Context) error {
	courtID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Invalid court id", err))
	}

	weekday, err := strconv.Atoi(c.QueryParam("weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		return ctrl.ErrorResponse(c, errors.NewAppError(errors.ErrInvalidInput, "Weekday must be 0 (Sunday) to 6 (Saturday)", err))
	}

	resp, appErr := ctrl.schedule.ListSlots(c.Request().Context(), courtID, time.Weekday(weekday))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, resp, "Slots retrieved")
}
