package dto

import (
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
)

type CreateCourtRequest struct {
	Name                string `json:"name" validate:"required"`
	Sport               string `json:"sport" validate:"required"`
	Description         string `json:"description"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}

type UpdateCourtRequest struct {
	Name                string `json:"name"`
	Sport               string `json:"sport"`
	Description         string `json:"description"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
	Active              *bool  `json:"active"`
}

type IntervalRequest struct {
	Weekday    int    `json:"weekday" validate:"min=0,max=6"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	PriceCents int64  `json:"price_cents" validate:"min=0"`
	Status     string `json:"status"`
}

// UpdateScheduleRequest is a full weekly schedule replacement, never a patch.
type UpdateScheduleRequest struct {
	Intervals []IntervalRequest `json:"intervals" validate:"required"`
}

type CourtResponse struct {
	ID                  uuid.UUID `json:"id"`
	OperatorID          uuid.UUID `json:"operator_id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	Sport               string    `json:"sport"`
	Description         *string   `json:"description,omitempty"`
	PhotoURL            *string   `json:"photo_url,omitempty"`
	SlotDurationMinutes int       `json:"slot_duration_minutes"`
	Active              bool      `json:"active"`
	CreatedAt           time.Time `json:"created_at"`
}

type IntervalResponse struct {
	ID         uuid.UUID `json:"id"`
	Weekday    int       `json:"weekday"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	PriceCents int64     `json:"price_cents"`
	Status     string    `json:"status"`
}

type SlotResponse struct {
	ID         uuid.UUID `json:"id"`
	CourtID    uuid.UUID `json:"court_id"`
	Weekday    int       `json:"weekday"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	PriceCents int64     `json:"price_cents"`
	Status     string    `json:"status"`
}

type ScheduleResponse struct {
	CourtID   uuid.UUID          `json:"court_id"`
	Intervals []IntervalResponse `json:"intervals"`
	SlotCount int                `json:"slot_count"`
}

func ToCourtResponse(c *entity.Court) *CourtResponse {
	return &CourtResponse{
		ID:                  c.ID,
		OperatorID:          c.OperatorID,
		Name:                c.Name,
		Slug:                c.Slug,
		Sport:               string(c.Sport),
		Description:         c.Description,
		PhotoURL:            c.PhotoURL,
		SlotDurationMinutes: c.SlotDurationMinutes,
		Active:              c.Active,
		CreatedAt:           c.CreatedAt,
	}
}

func ToIntervalResponse(iv *entity.OperatingInterval) IntervalResponse {
	return IntervalResponse{
		ID:         iv.ID,
		Weekday:    int(iv.Weekday),
		StartTime:  iv.StartTime.String(),
		EndTime:    iv.EndTime.String(),
		PriceCents: iv.PriceCents,
		Status:     string(iv.Status),
	}
}

func ToSlotResponse(s *entity.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		CourtID:    s.CourtID,
		Weekday:    int(s.Weekday),
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
		PriceCents: s.PriceCents,
		Status:     string(s.Status),
	}
}
