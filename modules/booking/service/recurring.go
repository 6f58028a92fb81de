package service

import (
	"context"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/core/utils"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/repository"
	courtentity "github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
)

// SlotResolver re-resolves wall-clock times into the weekday-specific slot
// template rows. Slot templates are per weekday: the same interval on a
// different weekday is a different row with its own id and price.
type SlotResolver interface {
	FindSlotByWeekdayAndTimes(ctx context.Context, courtID uuid.UUID, weekday time.Weekday, start, end courtentity.TimeOfDay) (*courtentity.TimeSlot, error)
}

// MaterializeResult is what series creation reports back: the series, the
// occurrences that were persisted, and every date that had to be skipped.
type MaterializeResult struct {
	Series       *entity.RecurringSeries
	Occurrences  []entity.Booking
	SkippedDates []time.Time
}

// RecurringBookingEngine materializes a weekly recurring series eagerly at
// creation time. There is no scheduler: every future occurrence inside the
// bounded horizon is generated inline, and individual date conflicts are
// skipped, never fatal. Only infrastructure failures abort the series.
type RecurringBookingEngine struct {
	bookings repository.BookingRepositoryInterface
	slots    SlotResolver
	checker  *AvailabilityChecker
}

func NewRecurringBookingEngine(bookings repository.BookingRepositoryInterface, slots SlotResolver) *RecurringBookingEngine {
	return &RecurringBookingEngine{
		bookings: bookings,
		slots:    slots,
		checker:  NewAvailabilityChecker(),
	}
}

// Materialize projects the confirmed seed booking into weekly occurrences
// up to seed date + period. The whole projection runs in one transaction:
// every occurrence's availability is checked against state visible at that
// point, and a storage failure rolls the series back entirely.
func (e *RecurringBookingEngine) Materialize(ctx context.Context, seed *entity.Booking, seedSlots []courtentity.TimeSlot, period entity.RecurrencePeriod, now time.Time) (*MaterializeResult, *errors.AppError) {
	if !period.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Recurrence period must be 1, 3 or 6 months", nil)
	}
	if len(seedSlots) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Seed booking has no slots", nil)
	}

	SortSlots(seedSlots)
	endDate := period.EndDateFrom(seed.BookingDate)

	logger.Info("RecurringBookingEngine:Materialize:Start",
		"seed_booking_id", seed.ID,
		"period_months", period.Months(),
		"end_date", endDate.Format("2006-01-02"))

	result := &MaterializeResult{
		SkippedDates: []time.Time{},
		Occurrences:  []entity.Booking{},
	}

	err := e.bookings.WithinTx(ctx, func(tx repository.BookingTxRepository) error {
		series := &entity.RecurringSeries{
			AthleteID:     seed.AthleteID,
			CourtID:       seed.CourtID,
			SeedBookingID: seed.ID,
			StartDate:     seed.BookingDate,
			EndDate:       endDate,
			PeriodMonths:  period,
			Status:        entity.SeriesActive,
		}
		if err := tx.InsertSeries(ctx, series); err != nil {
			return err
		}
		if err := tx.MarkSeedRecurring(ctx, seed.ID, series.ID); err != nil {
			return err
		}
		result.Series = series

		for candidate := seed.BookingDate.AddDate(0, 0, 7); !candidate.After(endDate); candidate = candidate.AddDate(0, 0, 7) {
			occurrence, skipErr, fatal := e.materializeDate(ctx, tx, seed, seedSlots, series, candidate, now)
			if fatal != nil {
				return fatal
			}
			if skipErr != nil {
				logger.Warn("RecurringBookingEngine:Materialize:DateSkipped",
					"series_id", series.ID,
					"date", candidate.Format("2006-01-02"),
					"reason", skipErr.Code,
					"detail", skipErr.Message)
				result.SkippedDates = append(result.SkippedDates, candidate)
				continue
			}
			result.Occurrences = append(result.Occurrences, *occurrence)
		}

		return nil
	})
	if err != nil {
		if ae, ok := err.(*errors.AppError); ok {
			return nil, ae
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to materialize recurring series", err)
	}

	logger.Info("RecurringBookingEngine:Materialize:Success",
		"series_id", result.Series.ID,
		"occurrences", len(result.Occurrences),
		"skipped", len(result.SkippedDates))

	return result, nil
}

// materializeDate handles one candidate date. It returns the persisted
// occurrence, or a non-fatal skip reason (a RecurrenceDateConflict), or a
// fatal error that aborts the whole materialization.
func (e *RecurringBookingEngine) materializeDate(ctx context.Context, tx repository.BookingTxRepository, seed *entity.Booking, seedSlots []courtentity.TimeSlot, series *entity.RecurringSeries, candidate time.Time, now time.Time) (*entity.Booking, *errors.AppError, error) {
	resolved := make([]courtentity.TimeSlot, 0, len(seedSlots))
	for i := range seedSlots {
		slot, err := e.slots.FindSlotByWeekdayAndTimes(ctx, seed.CourtID, candidate.Weekday(), seedSlots[i].StartTime, seedSlots[i].EndTime)
		if err != nil {
			return nil, nil, err
		}
		if slot == nil {
			// The court is not open at this wall-clock time on this weekday.
			return nil, errors.NewAppError(errors.ErrRecurrenceDateConflict,
				"No matching slot template for weekday "+candidate.Weekday().String(), nil), nil
		}
		resolved = append(resolved, *slot)
	}

	if appErr := e.checker.CheckBookable(ctx, tx, resolved, candidate, now); appErr != nil {
		if appErr.Code == errors.ErrInternalServer {
			return nil, nil, appErr
		}
		return nil, errors.NewAppError(errors.ErrRecurrenceDateConflict, appErr.Message, appErr), nil
	}

	total := int64(0)
	for i := range resolved {
		total += resolved[i].PriceCents
	}

	occurrence := &entity.Booking{
		ReferenceCode:   utils.GenerateReferenceCode(),
		CourtID:         seed.CourtID,
		AthleteID:       seed.AthleteID,
		BookingDate:     candidate,
		StartTime:       resolved[0].StartTime,
		EndTime:         resolved[len(resolved)-1].EndTime,
		TotalPriceCents: total,
		Sport:           seed.Sport,
		Status:          seed.Status,
		IsRecurring:     true,
		// Occurrences are never public, whatever the seed was.
		IsPublic: false,
		SeriesID: &series.ID,
	}

	if err := tx.InsertBooking(ctx, occurrence); err != nil {
		return nil, nil, err
	}
	if err := tx.InsertClaims(ctx, entity.ClaimsFromSlots(occurrence.ID, seed.CourtID, candidate, resolved)); err != nil {
		return nil, nil, err
	}

	return occurrence, nil, nil
}
