package utils

import (
	"sync"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/config"
	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
)

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns the platform's fixed civil timezone. All schedules,
// slots and bookings are interpreted in this single zone.
func Location() *time.Location {
	locOnce.Do(func() {
		name := constants.DefaultTimezone
		if cfg, ok := config.GetSafe(); ok && cfg.Scheduling.Timezone != "" {
			name = cfg.Scheduling.Timezone
		}
		l, err := time.LoadLocation(name)
		if err != nil {
			l = time.UTC
		}
		loc = l
	})
	return loc
}

// DateOf truncates t to its calendar date in the platform timezone.
func DateOf(t time.Time) time.Time {
	t = t.In(Location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location())
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOf(a).Equal(DateOf(b))
}
