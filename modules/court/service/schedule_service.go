package service

import (
	"context"
	"fmt"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/cache"
	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/repository"

	"github.com/google/uuid"
)

// ScheduleService owns a court's weekly opening hours and the slot templates
// generated from them.
type ScheduleService struct {
	courts    repository.CourtRepositoryInterface
	schedules repository.ScheduleRepositoryInterface
	generator *SlotGenerator
	cache     *cache.Cache
}

type ScheduleServiceInterface interface {
	UpdateWeeklySchedule(ctx context.Context, operatorID, courtID uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, *errors.AppError)
	GetWeeklySchedule(ctx context.Context, courtID uuid.UUID) (*dto.ScheduleResponse, *errors.AppError)
	ListSlots(ctx context.Context, courtID uuid.UUID, weekday time.Weekday) ([]dto.SlotResponse, *errors.AppError)
}

func NewScheduleService(courts repository.CourtRepositoryInterface, schedules repository.ScheduleRepositoryInterface, c *cache.Cache) ScheduleServiceInterface {
	return &ScheduleService{
		courts:    courts,
		schedules: schedules,
		generator: NewSlotGenerator(),
		cache:     c,
	}
}

// UpdateWeeklySchedule replaces the court's whole weekly schedule and
// regenerates every slot template from it. Existing bookings keep their
// creation-time snapshots and are not touched.
func (s *ScheduleService) UpdateWeeklySchedule(ctx context.Context, operatorID, courtID uuid.UUID, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, *errors.AppError) {
	logger.Info("ScheduleService:UpdateWeeklySchedule:Start", "court_id", courtID, "intervals", len(req.Intervals))

	court, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load court", err)
	}
	if court == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Court not found", nil)
	}
	if court.OperatorID != operatorID {
		return nil, errors.NewAppError(errors.ErrAccessDenied, "Court belongs to another operator", nil)
	}

	intervals, appErr := parseIntervals(courtID, req.Intervals)
	if appErr != nil {
		return nil, appErr
	}

	slotCount := 0
	err = s.schedules.ReplaceSchedule(ctx, courtID, intervals, func(interval *entity.OperatingInterval) []entity.TimeSlot {
		slots := s.generator.Generate(interval, court.SlotDurationMinutes)
		slotCount += len(slots)
		return slots
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to replace schedule", err)
	}

	s.invalidateSlotCache(ctx, courtID)

	logger.Info("ScheduleService:UpdateWeeklySchedule:Success",
		"court_id", courtID, "intervals", len(intervals), "slots", slotCount)

	return s.GetWeeklySchedule(ctx, courtID)
}

func (s *ScheduleService) GetWeeklySchedule(ctx context.Context, courtID uuid.UUID) (*dto.ScheduleResponse, *errors.AppError) {
	intervals, err := s.schedules.GetIntervalsByCourtID(ctx, courtID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load schedule", err)
	}

	slots, err := s.schedules.GetSlotsByCourtID(ctx, courtID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slots", err)
	}

	resp := &dto.ScheduleResponse{
		CourtID:   courtID,
		Intervals: make([]dto.IntervalResponse, 0, len(intervals)),
		SlotCount: len(slots),
	}
	for i := range intervals {
		resp.Intervals = append(resp.Intervals, dto.ToIntervalResponse(&intervals[i]))
	}

	return resp, nil
}

// ListSlots returns the slot templates for one weekday, cached per court.
func (s *ScheduleService) ListSlots(ctx context.Context, courtID uuid.UUID, weekday time.Weekday) ([]dto.SlotResponse, *errors.AppError) {
	key := slotCacheKey(courtID, weekday)

	var cached []dto.SlotResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	slots, err := s.schedules.GetSlotsByCourtAndWeekday(ctx, courtID, weekday)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slots", err)
	}

	resp := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		resp = append(resp, dto.ToSlotResponse(&slots[i]))
	}

	s.cache.SetJSON(ctx, key, resp, constants.SlotCacheTTLSeconds*time.Second)
	return resp, nil
}

func (s *ScheduleService) invalidateSlotCache(ctx context.Context, courtID uuid.UUID) {
	keys := make([]string, 0, constants.DaysPerWeek)
	for d := time.Sunday; d <= time.Saturday; d++ {
		keys = append(keys, slotCacheKey(courtID, d))
	}
	s.cache.Delete(ctx, keys...)
}

func slotCacheKey(courtID uuid.UUID, weekday time.Weekday) string {
	return fmt.Sprintf("%s%s:%d", constants.SlotCacheKeyPrefix, courtID, weekday)
}

func parseIntervals(courtID uuid.UUID, reqs []dto.IntervalRequest) ([]entity.OperatingInterval, *errors.AppError) {
	intervals := make([]entity.OperatingInterval, 0, len(reqs))

	for _, req := range reqs {
		start, err := entity.ParseTimeOfDay(req.StartTime)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid interval start time", err)
		}
		end, err := entity.ParseTimeOfDay(req.EndTime)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid interval end time", err)
		}

		status := entity.IntervalStatus(req.Status)
		if status == "" {
			status = entity.IntervalAvailable
		}

		interval := entity.OperatingInterval{
			CourtID:    courtID,
			Weekday:    time.Weekday(req.Weekday),
			StartTime:  start,
			EndTime:    end,
			PriceCents: req.PriceCents,
			Status:     status,
		}
		if err := interval.Validate(); err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
		}

		for i := range intervals {
			if intervals[i].Overlaps(&interval) {
				return nil, errors.NewAppError(errors.ErrInvalidInput,
					fmt.Sprintf("intervals overlap on weekday %d", req.Weekday), nil)
			}
		}

		intervals = append(intervals, interval)
	}

	return intervals, nil
}
