package dto

import (
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/entity"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CourtID          uuid.UUID   `json:"court_id" validate:"required"`
	Date             string      `json:"date" validate:"required"` // 2006-01-02
	SlotIDs          []uuid.UUID `json:"slot_ids" validate:"required,min=1"`
	IsPublic         bool        `json:"is_public"`
	RecurrenceMonths int         `json:"recurrence_months"` // 0 = single booking, else 1, 3 or 6
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	ReferenceCode   string     `json:"reference_code"`
	CourtID         uuid.UUID  `json:"court_id"`
	AthleteID       uuid.UUID  `json:"athlete_id"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Sport           string     `json:"sport"`
	Status          string     `json:"status"`
	IsRecurring     bool       `json:"is_recurring"`
	IsPublic        bool       `json:"is_public"`
	SeriesID        *uuid.UUID `json:"series_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type SeriesResponse struct {
	ID           uuid.UUID `json:"id"`
	CourtID      uuid.UUID `json:"court_id"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	PeriodMonths int       `json:"period_months"`
	Status       string    `json:"status"`
	Occurrences  int       `json:"occurrences"`
	SkippedDates []string  `json:"skipped_dates"`
}

// CreateBookingResponse always reports the skipped dates of a recurring
// request, possibly empty, never a silent partial success.
type CreateBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Series  *SeriesResponse `json:"series,omitempty"`
}

func ToBookingResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		ReferenceCode:   b.ReferenceCode,
		CourtID:         b.CourtID,
		AthleteID:       b.AthleteID,
		Date:            b.BookingDate.Format("2006-01-02"),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		TotalPriceCents: b.TotalPriceCents,
		Sport:           string(b.Sport),
		Status:          string(b.Status),
		IsRecurring:     b.IsRecurring,
		IsPublic:        b.IsPublic,
		SeriesID:        b.SeriesID,
		CreatedAt:       b.CreatedAt,
	}
}

func ToSeriesResponse(s *entity.RecurringSeries, occurrences int, skipped []time.Time) *SeriesResponse {
	dates := make([]string, 0, len(skipped))
	for _, d := range skipped {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return &SeriesResponse{
		ID:           s.ID,
		CourtID:      s.CourtID,
		StartDate:    s.StartDate.Format("2006-01-02"),
		EndDate:      s.EndDate.Format("2006-01-02"),
		PeriodMonths: s.PeriodMonths.Months(),
		Status:       string(s.Status),
		Occurrences:  occurrences,
		SkippedDates: dates,
	}
}
