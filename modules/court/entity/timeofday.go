package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a civil wall-clock time stored as minutes since midnight.
// EndOfDay (24:00) is permitted as the exclusive end of an operating
// interval; it is never a valid start.
type TimeOfDay int

const EndOfDay TimeOfDay = 24 * 60

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS" ("24:00" allowed).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if len(s) > 5 {
		s = s[:5]
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if m < 0 || m > 59 || h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t > other }

// Add advances the time by the given number of minutes. wrapped is true when
// the result crosses midnight; overnight intervals are not supported, so
// callers stop generation instead of wrapping around.
func (t TimeOfDay) Add(minutes int) (next TimeOfDay, wrapped bool) {
	sum := int(t) + minutes
	if sum > int(EndOfDay) {
		return TimeOfDay(sum % int(EndOfDay)), true
	}
	return TimeOfDay(sum), false
}

// OnDate anchors the wall-clock time onto the given calendar date.
func (t TimeOfDay) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value stores the time as whole minutes, matching the INT columns the
// schema declares for start_time and end_time.
func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TimeOfDay) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case int64:
		if v < 0 || v > int64(EndOfDay) {
			return fmt.Errorf("minutes since midnight out of range: %d", v)
		}
		*t = TimeOfDay(v)
	case int:
		return t.Scan(int64(v))
	case []byte:
		var minutes int64
		if _, err := fmt.Sscanf(string(v), "%d", &minutes); err != nil {
			return fmt.Errorf("invalid minutes value %q: %w", v, err)
		}
		return t.Scan(minutes)
	default:
		return fmt.Errorf("cannot scan type %T into TimeOfDay", value)
	}
	return nil
}
