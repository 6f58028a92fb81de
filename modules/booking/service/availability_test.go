package service

import (
	"context"
	"testing"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/utils"
	courtentity "github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type claimKey struct {
	courtID uuid.UUID
	date    string
	start   courtentity.TimeOfDay
	end     courtentity.TimeOfDay
}

// fakeConflicts counts claims from a fixed set and optionally fails.
type fakeConflicts struct {
	claimed map[claimKey]int
	err     error
}

func (f *fakeConflicts) CountActiveClaims(_ context.Context, courtID uuid.UUID, date time.Time, start, end courtentity.TimeOfDay) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.claimed[claimKey{courtID, date.Format("2006-01-02"), start, end}], nil
}

func slotAt(courtID uuid.UUID, start, end courtentity.TimeOfDay) courtentity.TimeSlot {
	s := courtentity.TimeSlot{
		CourtID:    courtID,
		Weekday:    time.Monday,
		StartTime:  start,
		EndTime:    end,
		PriceCents: 8000,
		Status:     courtentity.SlotAvailable,
	}
	s.ID = uuid.New()
	return s
}

func TestValidateContiguous(t *testing.T) {
	courtID := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		slots    []courtentity.TimeSlot
		wantCode errors.ErrorCode // empty means valid
	}{
		{
			name:  "single slot",
			slots: []courtentity.TimeSlot{slotAt(courtID, 480, 540)},
		},
		{
			name: "two adjacent slots",
			slots: []courtentity.TimeSlot{
				slotAt(courtID, 480, 540),
				slotAt(courtID, 540, 600),
			},
		},
		{
			name: "unsorted input is tolerated",
			slots: []courtentity.TimeSlot{
				slotAt(courtID, 540, 600),
				slotAt(courtID, 480, 540),
			},
		},
		{
			name:     "empty selection",
			slots:    nil,
			wantCode: errors.ErrInvalidInput,
		},
		{
			name: "gap between slots",
			slots: []courtentity.TimeSlot{
				slotAt(courtID, 480, 540),
				slotAt(courtID, 600, 660),
			},
			wantCode: errors.ErrNonContiguousSelection,
		},
		{
			name: "mixed courts",
			slots: []courtentity.TimeSlot{
				slotAt(courtID, 480, 540),
				slotAt(other, 540, 600),
			},
			wantCode: errors.ErrNonContiguousSelection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContiguous(tt.slots)
			if tt.wantCode == "" {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, tt.wantCode, err.Code)
			}
		})
	}
}

func TestValidateContiguousDoesNotReorderInput(t *testing.T) {
	courtID := uuid.New()
	slots := []courtentity.TimeSlot{
		slotAt(courtID, 540, 600),
		slotAt(courtID, 480, 540),
	}

	require.Nil(t, ValidateContiguous(slots))
	assert.Equal(t, courtentity.TimeOfDay(540), slots[0].StartTime)
}

func TestCheckBookable(t *testing.T) {
	courtID := uuid.New()
	loc := utils.Location()
	targetDate := time.Date(2026, time.September, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, loc)

	checker := NewAvailabilityChecker()

	t.Run("free future slots pass", func(t *testing.T) {
		slots := []courtentity.TimeSlot{slotAt(courtID, 480, 540), slotAt(courtID, 540, 600)}
		err := checker.CheckBookable(context.Background(), &fakeConflicts{}, slots, targetDate, now)
		assert.Nil(t, err)
	})

	t.Run("maintenance slot rejected", func(t *testing.T) {
		s := slotAt(courtID, 480, 540)
		s.Status = courtentity.SlotMaintenance
		err := checker.CheckBookable(context.Background(), &fakeConflicts{}, []courtentity.TimeSlot{s}, targetDate, now)
		require.NotNil(t, err)
		assert.Equal(t, errors.ErrSlotUnavailable, err.Code)
	})

	t.Run("same day past start rejected", func(t *testing.T) {
		sameDayNow := time.Date(2026, time.September, 7, 10, 0, 0, 0, loc)
		slots := []courtentity.TimeSlot{slotAt(courtID, 480, 540)} // 08:00, already gone
		err := checker.CheckBookable(context.Background(), &fakeConflicts{}, slots, targetDate, sameDayNow)
		require.NotNil(t, err)
		assert.Equal(t, errors.ErrPastCutoff, err.Code)
	})

	t.Run("seconds after the start still count as past", func(t *testing.T) {
		justStarted := time.Date(2026, time.September, 7, 8, 0, 30, 0, loc)
		slots := []courtentity.TimeSlot{slotAt(courtID, 480, 540)}
		err := checker.CheckBookable(context.Background(), &fakeConflicts{}, slots, targetDate, justStarted)
		require.NotNil(t, err)
		assert.Equal(t, errors.ErrPastCutoff, err.Code)
	})

	t.Run("exactly at the start passes", func(t *testing.T) {
		atStart := time.Date(2026, time.September, 7, 8, 0, 0, 0, loc)
		slots := []courtentity.TimeSlot{slotAt(courtID, 480, 540)}
		err := checker.CheckBookable(context.Background(), &fakeConflicts{}, slots, targetDate, atStart)
		assert.Nil(t, err)
	})

	t.Run("same time on a future date passes", func(t *testing.T) {
		slots := []courtentity.TimeSlot{slotAt(courtID, 480, 540)}
		err := checker.CheckBookable(context.Background(), &fakeConflicts{}, slots, targetDate, now)
		assert.Nil(t, err)
	})

	t.Run("claimed slot conflicts", func(t *testing.T) {
		slots := []courtentity.TimeSlot{slotAt(courtID, 480, 540), slotAt(courtID, 540, 600)}
		conflicts := &fakeConflicts{claimed: map[claimKey]int{
			{courtID, targetDate.Format("2006-01-02"), 540, 600}: 1,
		}}
		err := checker.CheckBookable(context.Background(), conflicts, slots, targetDate, now)
		require.NotNil(t, err)
		assert.Equal(t, errors.ErrSlotConflict, err.Code)
	})

	t.Run("status check comes before conflict check", func(t *testing.T) {
		s := slotAt(courtID, 480, 540)
		s.Status = courtentity.SlotUnavailable
		conflicts := &fakeConflicts{claimed: map[claimKey]int{
			{courtID, targetDate.Format("2006-01-02"), 480, 540}: 1,
		}}
		err := checker.CheckBookable(context.Background(), conflicts, []courtentity.TimeSlot{s}, targetDate, now)
		require.NotNil(t, err)
		assert.Equal(t, errors.ErrSlotUnavailable, err.Code)
	})

	t.Run("storage failure surfaces as internal error", func(t *testing.T) {
		slots := []courtentity.TimeSlot{slotAt(courtID, 480, 540)}
		conflicts := &fakeConflicts{err: context.DeadlineExceeded}
		err := checker.CheckBookable(context.Background(), conflicts, slots, targetDate, now)
		require.NotNil(t, err)
		assert.Equal(t, errors.ErrInternalServer, err.Code)
	})
}
