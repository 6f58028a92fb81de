package entity

import (
	"time"

	coreEntity "github.com/EngStrategy/arenahub-backend-sub000/core/entity"

	"github.com/google/uuid"
)

// SlotStatus is the availability status of one bookable slot template.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "AVAILABLE"
	SlotMaintenance SlotStatus = "MAINTENANCE"
	SlotUnavailable SlotStatus = "UNAVAILABLE"
)

// SlotStatusFromInterval derives the status slots inherit from their owning
// interval's operability flag.
func SlotStatusFromInterval(s IntervalStatus) SlotStatus {
	switch s {
	case IntervalAvailable:
		return SlotAvailable
	case IntervalMaintenance:
		return SlotMaintenance
	default:
		return SlotUnavailable
	}
}

// TimeSlot is a weekly recurring bookable unit generated from one
// OperatingInterval. It carries no calendar date: the same row stands for
// every future occurrence of its weekday until the schedule is regenerated.
type TimeSlot struct {
	CourtID    uuid.UUID    `db:"court_id" json:"court_id"`
	IntervalID uuid.UUID    `db:"interval_id" json:"interval_id"`
	Weekday    time.Weekday `db:"weekday" json:"weekday"`
	StartTime  TimeOfDay    `db:"start_time" json:"start_time"`
	EndTime    TimeOfDay    `db:"end_time" json:"end_time"`
	PriceCents int64        `db:"price_cents" json:"price_cents"`
	Status     SlotStatus   `db:"status" json:"status"`
	coreEntity.BaseEntity
}
