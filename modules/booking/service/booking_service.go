package service

import (
	"context"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/core/params"
	"github.com/EngStrategy/arenahub-backend-sub000/core/queue"
	"github.com/EngStrategy/arenahub-backend-sub000/core/utils"
	accountentity "github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"
	accountrepo "github.com/EngStrategy/arenahub-backend-sub000/modules/account/repository"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/repository"
	courtentity "github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"
	courtrepo "github.com/EngStrategy/arenahub-backend-sub000/modules/court/repository"

	"github.com/google/uuid"
)

// BookingService orchestrates the reservation lifecycle: creation with
// availability checks, status transitions, cancellation and the recurring
// series fan-out.
type BookingService struct {
	bookings  repository.BookingRepositoryInterface
	courts    courtrepo.CourtRepositoryInterface
	schedule  courtrepo.ScheduleRepositoryInterface
	accounts  accountrepo.AccountRepositoryInterface
	checker   *AvailabilityChecker
	policy    *CancellationPolicy
	recurring *RecurringBookingEngine
	tasks     *queue.Queue
	now       func() time.Time
}

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, athleteID uuid.UUID, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, *errors.AppError)
	GetBooking(ctx context.Context, actorID uuid.UUID, role accountentity.Role, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	ListMyBookings(ctx context.Context, athleteID uuid.UUID, qp *params.QueryParams) ([]dto.BookingResponse, *errors.AppError)
	CourtAgenda(ctx context.Context, operatorID, courtID uuid.UUID, date string) ([]dto.BookingResponse, *errors.AppError)
	ListPublicBookings(ctx context.Context, date string) ([]dto.BookingResponse, *errors.AppError)
	TransitionStatus(ctx context.Context, actorID uuid.UUID, role accountentity.Role, bookingID uuid.UUID, req *dto.TransitionRequest) (*dto.BookingResponse, *errors.AppError)
	CancelSeries(ctx context.Context, athleteID, seriesID uuid.UUID) (*dto.SeriesResponse, *errors.AppError)
}

func NewBookingService(
	bookings repository.BookingRepositoryInterface,
	courts courtrepo.CourtRepositoryInterface,
	schedule courtrepo.ScheduleRepositoryInterface,
	accounts accountrepo.AccountRepositoryInterface,
	tasks *queue.Queue,
) BookingServiceInterface {
	return &BookingService{
		bookings:  bookings,
		courts:    courts,
		schedule:  schedule,
		accounts:  accounts,
		checker:   NewAvailabilityChecker(),
		policy:    NewCancellationPolicy(),
		recurring: NewRecurringBookingEngine(bookings, schedule),
		tasks:     tasks,
		now:       func() time.Time { return time.Now().In(utils.Location()) },
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, athleteID uuid.UUID, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, *errors.AppError) {
	logger.Info("BookingService:CreateBooking:Start",
		"athlete_id", athleteID, "court_id", req.CourtID, "date", req.Date, "slots", len(req.SlotIDs))

	now := s.now()

	date, err := time.ParseInLocation("2006-01-02", req.Date, utils.Location())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Date must be in YYYY-MM-DD format", err)
	}
	if date.Before(utils.DateOf(now)) {
		return nil, errors.NewAppError(errors.ErrPastCutoff, "Cannot book a past date", nil)
	}

	var period entity.RecurrencePeriod
	if req.RecurrenceMonths != 0 {
		period, err = entity.ParseRecurrencePeriod(req.RecurrenceMonths)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
		}
	}

	court, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load court", err)
	}
	if court == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Court not found", nil)
	}
	if !court.Active {
		return nil, errors.NewAppError(errors.ErrSlotUnavailable, "Court is not accepting bookings", nil)
	}

	slots, appErr := s.resolveSlots(ctx, court, date, req.SlotIDs)
	if appErr != nil {
		return nil, appErr
	}

	total := int64(0)
	for i := range slots {
		total += slots[i].PriceCents
	}

	booking := &entity.Booking{
		ReferenceCode:   utils.GenerateReferenceCode(),
		CourtID:         court.ID,
		AthleteID:       athleteID,
		BookingDate:     date,
		StartTime:       slots[0].StartTime,
		EndTime:         slots[len(slots)-1].EndTime,
		TotalPriceCents: total,
		Sport:           court.Sport,
		Status:          entity.StatusPending,
		IsPublic:        req.IsPublic,
	}

	txErr := s.bookings.WithinTx(ctx, func(tx repository.BookingTxRepository) error {
		if appErr := s.checker.CheckBookable(ctx, tx, slots, date, now); appErr != nil {
			return appErr
		}
		if err := tx.InsertBooking(ctx, booking); err != nil {
			return err
		}
		return tx.InsertClaims(ctx, entity.ClaimsFromSlots(booking.ID, court.ID, date, slots))
	})
	if txErr != nil {
		if ae, ok := txErr.(*errors.AppError); ok {
			return nil, ae
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create booking", txErr)
	}

	logger.Info("BookingService:CreateBooking:Success",
		"booking_id", booking.ID, "reference_code", booking.ReferenceCode)

	s.notifyBooking(ctx, constants.TaskBookingConfirmed, booking, court)

	resp := &dto.CreateBookingResponse{Booking: dto.ToBookingResponse(booking)}

	if period != 0 {
		result, appErr := s.recurring.Materialize(ctx, booking, slots, period, now)
		if appErr != nil {
			// The seed booking is already committed; surface the series
			// failure instead of silently returning a non-recurring booking.
			return nil, appErr
		}
		booking.IsRecurring = true
		booking.SeriesID = &result.Series.ID
		resp.Booking = dto.ToBookingResponse(booking)
		resp.Series = dto.ToSeriesResponse(result.Series, len(result.Occurrences), result.SkippedDates)
		s.notifySeries(ctx, result, court)
	}

	return resp, nil
}

// resolveSlots loads the requested slot templates and validates that they
// belong to the court, match the target date's weekday and form one
// contiguous block. The returned slice is sorted by start time.
func (s *BookingService) resolveSlots(ctx context.Context, court *courtentity.Court, date time.Time, slotIDs []uuid.UUID) ([]courtentity.TimeSlot, *errors.AppError) {
	slots, err := s.schedule.GetSlotsByIDs(ctx, slotIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slots", err)
	}
	if len(slots) != len(slotIDs) {
		return nil, errors.NewAppError(errors.ErrNotFound, "One or more slots do not exist", nil)
	}

	for i := range slots {
		if slots[i].CourtID != court.ID {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Slot does not belong to the given court", nil)
		}
		if slots[i].Weekday != date.Weekday() {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Slot does not match the weekday of the requested date", nil)
		}
	}

	if appErr := ValidateContiguous(slots); appErr != nil {
		return nil, appErr
	}
	SortSlots(slots)

	return slots, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actorID uuid.UUID, role accountentity.Role, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	booking, appErr := s.authorizedBooking(ctx, actorID, role, bookingID)
	if appErr != nil {
		return nil, appErr
	}
	resp := dto.ToBookingResponse(booking)
	return &resp, nil
}

func (s *BookingService) ListMyBookings(ctx context.Context, athleteID uuid.UUID, qp *params.QueryParams) ([]dto.BookingResponse, *errors.AppError) {
	bookings, err := s.bookings.ListByAthlete(ctx, athleteID, qp.Limit, qp.Offset())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list bookings", err)
	}
	return toResponses(bookings), nil
}

// CourtAgenda lists every booking of one court on one date, for the
// operator that owns the court.
func (s *BookingService) CourtAgenda(ctx context.Context, operatorID, courtID uuid.UUID, date string) ([]dto.BookingResponse, *errors.AppError) {
	day, err := time.ParseInLocation("2006-01-02", date, utils.Location())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Date must be in YYYY-MM-DD format", err)
	}

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

	bookings, err := s.bookings.ListByCourtAndDate(ctx, courtID, day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list court agenda", err)
	}
	return toResponses(bookings), nil
}

// ListPublicBookings lists bookings flagged public for one date, so other
// athletes can find open matches to join.
func (s *BookingService) ListPublicBookings(ctx context.Context, date string) ([]dto.BookingResponse, *errors.AppError) {
	day, err := time.ParseInLocation("2006-01-02", date, utils.Location())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Date must be in YYYY-MM-DD format", err)
	}

	bookings, err := s.bookings.ListPublicByDate(ctx, day)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list public bookings", err)
	}
	return toResponses(bookings), nil
}

// TransitionStatus applies one state-machine transition on behalf of an
// actor. Authorization is checked before the transition itself: the actor
// must be allowed to see the booking, then allowed to request the target
// status, and only then does the state machine rule on the move. Athlete
// cancellations additionally pass the operator's cancellation lead time.
func (s *BookingService) TransitionStatus(ctx context.Context, actorID uuid.UUID, role accountentity.Role, bookingID uuid.UUID, req *dto.TransitionRequest) (*dto.BookingResponse, *errors.AppError) {
	target := entity.BookingStatus(req.Status)
	if !target.IsValid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown booking status "+req.Status, nil)
	}

	booking, appErr := s.authorizedBooking(ctx, actorID, role, bookingID)
	if appErr != nil {
		return nil, appErr
	}

	if !entity.ActorMayTrigger(role, target) {
		return nil, errors.NewAppError(errors.ErrAccessDenied,
			"Actor is not allowed to set status "+string(target), nil)
	}
	if !booking.Status.CanTransitionTo(target) {
		return nil, errors.NewAppError(errors.ErrInvalidStateTransition,
			"Cannot transition from "+string(booking.Status)+" to "+string(target), nil)
	}

	if target == entity.StatusCancelled && role == accountentity.RoleAthlete {
		if appErr := s.checkCancellationWindow(ctx, booking); appErr != nil {
			return nil, appErr
		}
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, target); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update booking status", err)
	}
	booking.Status = target

	logger.Info("BookingService:TransitionStatus:Success",
		"booking_id", booking.ID, "status", target, "actor_id", actorID, "role", role)

	if target == entity.StatusCancelled {
		court, err := s.courts.GetByID(ctx, booking.CourtID)
		if err == nil && court != nil {
			s.notifyBooking(ctx, constants.TaskBookingCancelled, booking, court)
		}
	}

	resp := dto.ToBookingResponse(booking)
	return &resp, nil
}

// CancelSeries cancels a recurring series: every future occurrence that
// has not reached a terminal state is cancelled, past occurrences are left
// untouched, and the series itself is marked cancelled. The per-booking
// lead time does not apply; ending the series is always allowed.
func (s *BookingService) CancelSeries(ctx context.Context, athleteID, seriesID uuid.UUID) (*dto.SeriesResponse, *errors.AppError) {
	series, err := s.bookings.GetSeriesByID(ctx, seriesID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load series", err)
	}
	if series == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Series not found", nil)
	}
	if series.AthleteID != athleteID {
		return nil, errors.NewAppError(errors.ErrAccessDenied, "Series belongs to another athlete", nil)
	}
	if series.Status == entity.SeriesCancelled {
		return nil, errors.NewAppError(errors.ErrInvalidStateTransition, "Series is already cancelled", nil)
	}

	today := utils.DateOf(s.now())
	future, err := s.bookings.ListSeriesBookingsFrom(ctx, seriesID, today)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load series bookings", err)
	}

	cancelled := 0
	for i := range future {
		if future[i].Status.IsTerminal() {
			continue
		}
		if err := s.bookings.UpdateStatus(ctx, future[i].ID, entity.StatusCancelled); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to cancel series booking", err)
		}
		cancelled++
	}

	if err := s.bookings.UpdateSeriesStatus(ctx, seriesID, entity.SeriesCancelled); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to cancel series", err)
	}
	series.Status = entity.SeriesCancelled

	logger.Info("BookingService:CancelSeries:Success",
		"series_id", seriesID, "cancelled_bookings", cancelled)

	return dto.ToSeriesResponse(series, cancelled, nil), nil
}

// authorizedBooking loads a booking and verifies the actor may act on it:
// the athlete that made it, or the operator that owns its court.
func (s *BookingService) authorizedBooking(ctx context.Context, actorID uuid.UUID, role accountentity.Role, bookingID uuid.UUID) (*entity.Booking, *errors.AppError) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}

	switch role {
	case accountentity.RoleAthlete:
		if booking.AthleteID != actorID {
			return nil, errors.NewAppError(errors.ErrAccessDenied, "Booking belongs to another athlete", nil)
		}
	case accountentity.RoleOperator:
		court, err := s.courts.GetByID(ctx, booking.CourtID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load court", err)
		}
		if court == nil || court.OperatorID != actorID {
			return nil, errors.NewAppError(errors.ErrAccessDenied, "Court belongs to another operator", nil)
		}
	default:
		return nil, errors.NewAppError(errors.ErrAccessDenied, "Unknown actor role", nil)
	}

	return booking, nil
}

// checkCancellationWindow enforces the operator-configured lead time on an
// athlete cancellation request.
func (s *BookingService) checkCancellationWindow(ctx context.Context, booking *entity.Booking) *errors.AppError {
	court, err := s.courts.GetByID(ctx, booking.CourtID)
	if err != nil || court == nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load court", err)
	}
	operator, err := s.accounts.GetOperatorByID(ctx, court.OperatorID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load operator policy", err)
	}

	var configured *int
	if operator != nil {
		configured = operator.CancellationLeadHours
	}
	leadHours := s.policy.LeadHoursFor(configured)

	if !s.policy.CanCancel(booking, leadHours, s.now()) {
		return errors.NewAppError(errors.ErrPastCutoff,
			"Cancellation window has closed; this court requires notice", nil)
	}
	return nil
}

func (s *BookingService) notifyBooking(ctx context.Context, taskType string, b *entity.Booking, court *courtentity.Court) {
	athlete, err := s.accounts.GetAthleteByID(ctx, b.AthleteID)
	if err != nil || athlete == nil {
		logger.Warn("BookingService:Notify:AthleteLookupFailed", "booking_id", b.ID, "error", err)
		return
	}
	s.tasks.Enqueue(taskType, queue.BookingTaskPayload{
		BookingID:      b.ID,
		ReferenceCode:  b.ReferenceCode,
		AthleteID:      athlete.ID,
		AthleteEmail:   athlete.Email,
		CourtName:      court.Name,
		BookingDate:    b.BookingDate.Format("2006-01-02"),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		TotalPriceCent: b.TotalPriceCents,
	})
}

func (s *BookingService) notifySeries(ctx context.Context, result *MaterializeResult, court *courtentity.Court) {
	athlete, err := s.accounts.GetAthleteByID(ctx, result.Series.AthleteID)
	if err != nil || athlete == nil {
		logger.Warn("BookingService:Notify:AthleteLookupFailed", "series_id", result.Series.ID, "error", err)
		return
	}
	skipped := make([]string, 0, len(result.SkippedDates))
	for _, d := range result.SkippedDates {
		skipped = append(skipped, d.Format("2006-01-02"))
	}
	s.tasks.Enqueue(constants.TaskSeriesCreated, queue.SeriesTaskPayload{
		SeriesID:     result.Series.ID,
		AthleteID:    athlete.ID,
		AthleteEmail: athlete.Email,
		CourtName:    court.Name,
		StartDate:    result.Series.StartDate.Format("2006-01-02"),
		EndDate:      result.Series.EndDate.Format("2006-01-02"),
		Occurrences:  len(result.Occurrences),
		SkippedDates: skipped,
	})
}

func toResponses(bookings []entity.Booking) []dto.BookingResponse {
	out := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, dto.ToBookingResponse(&bookings[i]))
	}
	return out
}
