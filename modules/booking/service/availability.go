package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/utils"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/repository"
	courtentity "github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"
)

// ValidateContiguous checks that the selected slots form one continuous
// block on one court: sorted by start time, each slot's end is the next
// slot's start. Callers run this before the per-slot checks.
func ValidateContiguous(slots []courtentity.TimeSlot) *errors.AppError {
	if len(slots) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "No slots selected", nil)
	}

	sorted := make([]courtentity.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].CourtID != sorted[0].CourtID {
			return errors.NewAppError(errors.ErrNonContiguousSelection,
				"Selected slots belong to different courts", nil)
		}
		if sorted[i].StartTime != sorted[i-1].EndTime {
			return errors.NewAppError(errors.ErrNonContiguousSelection,
				fmt.Sprintf("Selected slots have a gap between %s and %s",
					sorted[i-1].EndTime, sorted[i].StartTime), nil)
		}
	}

	return nil
}

// SortSlots orders slots by start time in place.
func SortSlots(slots []courtentity.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}

// AvailabilityChecker decides whether a set of slot templates is legally
// bookable for one calendar date. The conflict check runs against whatever
// query surface it is handed, so the same checker works inside the booking
// transaction.
type AvailabilityChecker struct{}

func NewAvailabilityChecker() *AvailabilityChecker {
	return &AvailabilityChecker{}
}

// CheckBookable runs the per-slot checks in order: availability status,
// past-time (same-day only), then the conflict query. The first failing
// slot aborts the whole attempt; partial reservation is never observable.
func (c *AvailabilityChecker) CheckBookable(ctx context.Context, q repository.ConflictQuerier, slots []courtentity.TimeSlot, targetDate time.Time, now time.Time) *errors.AppError {
	sameDay := utils.SameDate(targetDate, now)

	for i := range slots {
		slot := &slots[i]

		if slot.Status != courtentity.SlotAvailable {
			return errors.NewAppError(errors.ErrSlotUnavailable,
				fmt.Sprintf("Slot %s-%s is %s", slot.StartTime, slot.EndTime, slot.Status), nil)
		}

		if sameDay && slot.StartTime.OnDate(targetDate).Before(now) {
			return errors.NewAppError(errors.ErrPastCutoff,
				fmt.Sprintf("Slot %s-%s has already started today", slot.StartTime, slot.EndTime), nil)
		}

		count, err := q.CountActiveClaims(ctx, slot.CourtID, targetDate, slot.StartTime, slot.EndTime)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to check slot conflicts", err)
		}
		if count > 0 {
			return errors.NewAppError(errors.ErrSlotConflict,
				fmt.Sprintf("Slot %s-%s is already booked for %s",
					slot.StartTime, slot.EndTime, targetDate.Format("2006-01-02")), nil)
		}
	}

	return nil
}
