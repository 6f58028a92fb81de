package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/core/params"
	"github.com/EngStrategy/arenahub-backend-sub000/core/queue"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// NotificationService persists per-actor notifications. Rows are written by
// the asynq task handlers, never inline in the booking flow.
type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, actorID uuid.UUID, qp *params.QueryParams) (*entity.PaginatedNotifications, *errors.AppError) {
	result, err := s.repo.GetByActorID(ctx, actorID, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get notifications", err)
	}
	return result, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, actorID uuid.UUID, ids []uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, actorID, ids); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, actorID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, actorID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, actorID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, actorID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "Failed to count unread notifications", err)
	}
	return count, nil
}

// HandleBookingConfirmed processes a booking confirmation task.
func (s *NotificationService) HandleBookingConfirmed(ctx context.Context, t *asynq.Task) error {
	var p queue.BookingTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal booking confirmed payload: %w", err)
	}

	n := &entity.Notification{
		ActorID: p.AthleteID,
		Title:   "Booking confirmed",
		Message: fmt.Sprintf("Your booking %s at %s on %s from %s to %s is confirmed.",
			p.ReferenceCode, p.CourtName, p.BookingDate, p.StartTime, p.EndTime),
		Type: "booking_confirmed",
		Data: entity.JSONB{
			"booking_id":        p.BookingID.String(),
			"reference_code":    p.ReferenceCode,
			"total_price_cents": p.TotalPriceCent,
		},
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	logger.Info("NotificationService:HandleBookingConfirmed:Success",
		"booking_id", p.BookingID, "athlete_id", p.AthleteID)
	return nil
}

// HandleBookingCancelled processes a booking cancellation task.
func (s *NotificationService) HandleBookingCancelled(ctx context.Context, t *asynq.Task) error {
	var p queue.BookingTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal booking cancelled payload: %w", err)
	}

	n := &entity.Notification{
		ActorID: p.AthleteID,
		Title:   "Booking cancelled",
		Message: fmt.Sprintf("Your booking %s at %s on %s was cancelled.",
			p.ReferenceCode, p.CourtName, p.BookingDate),
		Type: "booking_cancelled",
		Data: entity.JSONB{
			"booking_id":     p.BookingID.String(),
			"reference_code": p.ReferenceCode,
		},
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	logger.Info("NotificationService:HandleBookingCancelled:Success",
		"booking_id", p.BookingID, "athlete_id", p.AthleteID)
	return nil
}

// HandleSeriesCreated processes a recurring series creation task. Skipped
// dates are spelled out so the athlete knows which weeks they do not have.
func (s *NotificationService) HandleSeriesCreated(ctx context.Context, t *asynq.Task) error {
	var p queue.SeriesTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal series created payload: %w", err)
	}

	msg := fmt.Sprintf("Your weekly booking at %s runs from %s to %s (%d occurrences).",
		p.CourtName, p.StartDate, p.EndDate, p.Occurrences)
	if len(p.SkippedDates) > 0 {
		msg += fmt.Sprintf(" %d dates were unavailable and skipped.", len(p.SkippedDates))
	}

	n := &entity.Notification{
		ActorID: p.AthleteID,
		Title:   "Recurring booking created",
		Message: msg,
		Type:    "series_created",
		Data: entity.JSONB{
			"series_id":     p.SeriesID.String(),
			"occurrences":   p.Occurrences,
			"skipped_dates": p.SkippedDates,
		},
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	logger.Info("NotificationService:HandleSeriesCreated:Success",
		"series_id", p.SeriesID, "athlete_id", p.AthleteID)
	return nil
}
