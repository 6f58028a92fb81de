package entity

import (
	"time"

	coreEntity "github.com/EngStrategy/arenahub-backend-sub000/core/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/core/utils"
	courtentity "github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
)

// Booking is one reservation of contiguous time slots on one calendar date.
// StartTime, EndTime and TotalPriceCents are snapshots taken at creation
// time and stay authoritative even if the court's slot templates are later
// regenerated with different prices or boundaries.
type Booking struct {
	ReferenceCode   string                `db:"reference_code" json:"reference_code"`
	CourtID         uuid.UUID             `db:"court_id" json:"court_id"`
	AthleteID       uuid.UUID             `db:"athlete_id" json:"athlete_id"`
	BookingDate     time.Time             `db:"booking_date" json:"booking_date"`
	StartTime       courtentity.TimeOfDay `db:"start_time" json:"start_time"`
	EndTime         courtentity.TimeOfDay `db:"end_time" json:"end_time"`
	TotalPriceCents int64                 `db:"total_price_cents" json:"total_price_cents"`
	Sport           courtentity.SportType `db:"sport" json:"sport"`
	Status          BookingStatus         `db:"status" json:"status"`
	IsRecurring     bool                  `db:"is_recurring" json:"is_recurring"`
	IsPublic        bool                  `db:"is_public" json:"is_public"`
	SeriesID        *uuid.UUID            `db:"series_id" json:"series_id,omitempty"`
	coreEntity.BaseEntity
}

// StartsAt anchors the booking's snapshot start onto its calendar date in
// the platform timezone, regardless of the zone the date was scanned with.
func (b *Booking) StartsAt() time.Time {
	y, m, d := b.BookingDate.Date()
	return time.Date(y, m, d, b.StartTime.Hour(), b.StartTime.Minute(), 0, 0, utils.Location())
}

// SlotClaim is one occupied slot template of a booking, denormalized with
// court, date and snapshot times so the conflict query and the partial
// unique index never need a join. Cancelled mirrors the booking status.
type SlotClaim struct {
	ID          uuid.UUID             `db:"id" json:"id"`
	BookingID   uuid.UUID             `db:"booking_id" json:"booking_id"`
	SlotID      uuid.UUID             `db:"slot_id" json:"slot_id"`
	CourtID     uuid.UUID             `db:"court_id" json:"court_id"`
	BookingDate time.Time             `db:"booking_date" json:"booking_date"`
	StartTime   courtentity.TimeOfDay `db:"start_time" json:"start_time"`
	EndTime     courtentity.TimeOfDay `db:"end_time" json:"end_time"`
	Cancelled   bool                  `db:"cancelled" json:"cancelled"`
	CreatedAt   time.Time             `db:"created_at" json:"created_at"`
}

// ClaimsFromSlots builds the claims a booking takes over the given slot
// templates for one calendar date.
func ClaimsFromSlots(bookingID, courtID uuid.UUID, date time.Time, slots []courtentity.TimeSlot) []SlotClaim {
	claims := make([]SlotClaim, 0, len(slots))
	for i := range slots {
		claims = append(claims, SlotClaim{
			BookingID:   bookingID,
			SlotID:      slots[i].ID,
			CourtID:     courtID,
			BookingDate: date,
			StartTime:   slots[i].StartTime,
			EndTime:     slots[i].EndTime,
		})
	}
	return claims
}
