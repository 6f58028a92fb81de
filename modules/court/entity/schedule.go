package entity

import (
	"fmt"
	"time"

	coreEntity "github.com/EngStrategy/arenahub-backend-sub000/core/entity"

	"github.com/google/uuid"
)

// IntervalStatus is the operability flag an operator places on one opening
// window of the weekly schedule.
type IntervalStatus string

const (
	IntervalAvailable   IntervalStatus = "AVAILABLE"
	IntervalMaintenance IntervalStatus = "MAINTENANCE"
	IntervalDisabled    IntervalStatus = "DISABLED"
)

// OperatingInterval is one contiguous priced opening window on one weekday
// of a court's weekly schedule.
type OperatingInterval struct {
	CourtID    uuid.UUID      `db:"court_id" json:"court_id"`
	Weekday    time.Weekday   `db:"weekday" json:"weekday"`
	StartTime  TimeOfDay      `db:"start_time" json:"start_time"`
	EndTime    TimeOfDay      `db:"end_time" json:"end_time"`
	PriceCents int64          `db:"price_cents" json:"price_cents"`
	Status     IntervalStatus `db:"status" json:"status"`
	coreEntity.BaseEntity
}

// Validate enforces start < end. EndOfDay (24:00) is accepted as an
// exclusive end; overnight windows are not supported.
func (oi *OperatingInterval) Validate() error {
	if oi.Weekday < time.Sunday || oi.Weekday > time.Saturday {
		return fmt.Errorf("invalid weekday %d", oi.Weekday)
	}
	if oi.StartTime >= EndOfDay {
		return fmt.Errorf("interval start %s must be before midnight", oi.StartTime)
	}
	if !oi.StartTime.Before(oi.EndTime) {
		return fmt.Errorf("interval start %s must be before end %s", oi.StartTime, oi.EndTime)
	}
	if oi.PriceCents < 0 {
		return fmt.Errorf("interval price must not be negative")
	}
	return nil
}

// Overlaps reports whether two intervals on the same weekday share time.
func (oi *OperatingInterval) Overlaps(other *OperatingInterval) bool {
	if oi.Weekday != other.Weekday {
		return false
	}
	return oi.StartTime.Before(other.EndTime) && other.StartTime.Before(oi.EndTime)
}
