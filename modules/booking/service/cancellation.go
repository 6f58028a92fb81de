package service

import (
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/entity"
)

// CancellationPolicy decides whether a cancellation request is inside the
// operator-configured lead time.
type CancellationPolicy struct{}

func NewCancellationPolicy() *CancellationPolicy {
	return &CancellationPolicy{}
}

// LeadHoursFor resolves an operator's configured lead time, applying the
// platform default when unset.
func (p *CancellationPolicy) LeadHoursFor(configured *int) int {
	if configured == nil || *configured < 0 {
		return constants.DefaultCancellationLeadHour
	}
	return *configured
}

// CanCancel permits cancellation iff now is at or before
// bookingStart - leadHours and the booking is not already terminal.
// The cutoff instant itself is still allowed; one second past it is not.
func (p *CancellationPolicy) CanCancel(b *entity.Booking, leadHours int, now time.Time) bool {
	if b.Status.IsTerminal() {
		return false
	}
	cutoff := b.StartsAt().Add(-time.Duration(leadHours) * time.Hour)
	return !now.After(cutoff)
}
