package service

import (
	"testing"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
	"github.com/EngStrategy/arenahub-backend-sub000/core/utils"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/entity"

	"github.com/stretchr/testify/assert"
)

func TestLeadHoursFor(t *testing.T) {
	p := NewCancellationPolicy()

	twelve := 12
	zero := 0
	negative := -5

	assert.Equal(t, constants.DefaultCancellationLeadHour, p.LeadHoursFor(nil))
	assert.Equal(t, 12, p.LeadHoursFor(&twelve))
	assert.Equal(t, 0, p.LeadHoursFor(&zero))
	assert.Equal(t, constants.DefaultCancellationLeadHour, p.LeadHoursFor(&negative))
}

func TestCanCancel(t *testing.T) {
	p := NewCancellationPolicy()
	loc := utils.Location()

	// Booking on 2026-09-10 starting 18:00; with 24h lead the cutoff is
	// 2026-09-09 18:00.
	booking := &entity.Booking{
		BookingDate: time.Date(2026, time.September, 10, 0, 0, 0, 0, loc),
		StartTime:   18 * 60,
		EndTime:     19 * 60,
		Status:      entity.StatusPending,
	}
	cutoff := time.Date(2026, time.September, 9, 18, 0, 0, 0, loc)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "well before cutoff", now: cutoff.Add(-48 * time.Hour), want: true},
		{name: "exactly at cutoff", now: cutoff, want: true},
		{name: "one second past cutoff", now: cutoff.Add(time.Second), want: false},
		{name: "after booking start", now: cutoff.Add(30 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.CanCancel(booking, 24, tt.now))
		})
	}
}

func TestCanCancelZeroLead(t *testing.T) {
	p := NewCancellationPolicy()
	loc := utils.Location()

	booking := &entity.Booking{
		BookingDate: time.Date(2026, time.September, 10, 0, 0, 0, 0, loc),
		StartTime:   18 * 60,
		Status:      entity.StatusPending,
	}
	start := time.Date(2026, time.September, 10, 18, 0, 0, 0, loc)

	assert.True(t, p.CanCancel(booking, 0, start))
	assert.False(t, p.CanCancel(booking, 0, start.Add(time.Minute)))
}

func TestCanCancelTerminalBooking(t *testing.T) {
	p := NewCancellationPolicy()
	loc := utils.Location()

	for _, status := range []entity.BookingStatus{entity.StatusPaid, entity.StatusCancelled, entity.StatusAbsent} {
		booking := &entity.Booking{
			BookingDate: time.Date(2026, time.September, 10, 0, 0, 0, 0, loc),
			StartTime:   18 * 60,
			Status:      status,
		}
		// Even far before the cutoff, terminal bookings stay closed.
		now := time.Date(2026, time.September, 1, 0, 0, 0, 0, loc)
		assert.False(t, p.CanCancel(booking, 24, now), status)
	}
}
