package entity

import (
	"fmt"
	"time"

	coreEntity "github.com/EngStrategy/arenahub-backend-sub000/core/entity"

	"github.com/google/uuid"
)

// RecurrencePeriod is the bounded horizon of a weekly recurring series,
// in calendar months.
type RecurrencePeriod int

const (
	PeriodOneMonth    RecurrencePeriod = 1
	PeriodThreeMonths RecurrencePeriod = 3
	PeriodSixMonths   RecurrencePeriod = 6
)

func (p RecurrencePeriod) Valid() bool {
	return p == PeriodOneMonth || p == PeriodThreeMonths || p == PeriodSixMonths
}

func (p RecurrencePeriod) Months() int { return int(p) }

// EndDateFrom computes the series end with exact calendar arithmetic, not a
// fixed day count.
func (p RecurrencePeriod) EndDateFrom(start time.Time) time.Time {
	return start.AddDate(0, p.Months(), 0)
}

func ParseRecurrencePeriod(months int) (RecurrencePeriod, error) {
	p := RecurrencePeriod(months)
	if !p.Valid() {
		return 0, fmt.Errorf("invalid recurrence period %d, want 1, 3 or 6 months", months)
	}
	return p, nil
}

type SeriesStatus string

const (
	SeriesActive    SeriesStatus = "ACTIVE"
	SeriesCancelled SeriesStatus = "CANCELLED"
)

// RecurringSeries groups the weekly occurrences materialized from one seed
// booking. Dates and period are immutable after creation; only the status
// is mutated, by cancellation.
type RecurringSeries struct {
	AthleteID     uuid.UUID        `db:"athlete_id" json:"athlete_id"`
	CourtID       uuid.UUID        `db:"court_id" json:"court_id"`
	SeedBookingID uuid.UUID        `db:"seed_booking_id" json:"seed_booking_id"`
	StartDate     time.Time        `db:"start_date" json:"start_date"`
	EndDate       time.Time        `db:"end_date" json:"end_date"`
	PeriodMonths  RecurrencePeriod `db:"period_months" json:"period_months"`
	Status        SeriesStatus     `db:"status" json:"status"`
	coreEntity.BaseEntity
}
