package service

import (
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"
)

// SlotGenerator turns an operating interval into its fixed-duration bookable
// slots. Generation is pure and idempotent: rerunning it on an unchanged
// interval yields an identical list, which is what makes "regenerate
// everything" a safe update strategy for operator hour edits.
type SlotGenerator struct{}

func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// Generate emits contiguous slots [cursor, cursor+duration) starting at the
// interval start. A trailing remainder shorter than the duration is dropped;
// the union of the emitted slots therefore covers the interval exactly only
// when its length is a multiple of the duration.
func (g *SlotGenerator) Generate(interval *entity.OperatingInterval, slotDurationMinutes int) []entity.TimeSlot {
	slots := []entity.TimeSlot{}
	if slotDurationMinutes <= 0 {
		return slots
	}

	status := entity.SlotStatusFromInterval(interval.Status)

	cursor := interval.StartTime
	for cursor.Before(interval.EndTime) {
		next, wrapped := cursor.Add(slotDurationMinutes)
		if wrapped {
			// Midnight wrap: overnight intervals are unsupported, stop
			// instead of looping forever.
			break
		}
		if next.After(interval.EndTime) {
			break
		}

		slots = append(slots, entity.TimeSlot{
			CourtID:    interval.CourtID,
			IntervalID: interval.ID,
			Weekday:    interval.Weekday,
			StartTime:  cursor,
			EndTime:    next,
			PriceCents: interval.PriceCents,
			Status:     status,
		})

		cursor = next
	}

	return slots
}
