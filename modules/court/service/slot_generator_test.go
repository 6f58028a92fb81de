package service

import (
	"testing"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) entity.TimeOfDay {
	t.Helper()
	tod, err := entity.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestSlotGeneratorGenerate(t *testing.T) {
	courtID := uuid.New()
	intervalID := uuid.New()

	tests := []struct {
		name      string
		start     string
		end       string
		duration  int
		wantCount int
		wantLast  string // end time of the last slot, empty when no slots
	}{
		{name: "morning block of four", start: "08:00", end: "12:00", duration: 60, wantCount: 4, wantLast: "12:00"},
		{name: "ninety minute slots", start: "08:00", end: "12:00", duration: 90, wantCount: 2, wantLast: "11:00"},
		{name: "trailing remainder dropped", start: "08:00", end: "09:30", duration: 60, wantCount: 1, wantLast: "09:00"},
		{name: "interval shorter than slot", start: "08:00", end: "08:30", duration: 60, wantCount: 0},
		{name: "up to midnight", start: "22:00", end: "24:00", duration: 60, wantCount: 2, wantLast: "24:00"},
		{name: "zero duration", start: "08:00", end: "12:00", duration: 0, wantCount: 0},
		{name: "negative duration", start: "08:00", end: "12:00", duration: -30, wantCount: 0},
	}

	g := NewSlotGenerator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval := &entity.OperatingInterval{
				CourtID:    courtID,
				Weekday:    time.Wednesday,
				StartTime:  mustParse(t, tt.start),
				EndTime:    mustParse(t, tt.end),
				PriceCents: 8000,
				Status:     entity.IntervalAvailable,
			}
			interval.ID = intervalID

			slots := g.Generate(interval, tt.duration)
			require.Len(t, slots, tt.wantCount)

			if tt.wantCount == 0 {
				return
			}

			assert.Equal(t, interval.StartTime, slots[0].StartTime)
			assert.Equal(t, mustParse(t, tt.wantLast), slots[len(slots)-1].EndTime)

			for i, s := range slots {
				assert.Equal(t, courtID, s.CourtID)
				assert.Equal(t, intervalID, s.IntervalID)
				assert.Equal(t, time.Wednesday, s.Weekday)
				assert.Equal(t, int64(8000), s.PriceCents)
				assert.Equal(t, entity.SlotAvailable, s.Status)
				if i > 0 {
					assert.Equal(t, slots[i-1].EndTime, s.StartTime, "slots must be contiguous")
				}
			}
		})
	}
}

func TestSlotGeneratorStatusInheritance(t *testing.T) {
	g := NewSlotGenerator()

	interval := &entity.OperatingInterval{
		Weekday:    time.Saturday,
		StartTime:  mustParse(t, "10:00"),
		EndTime:    mustParse(t, "12:00"),
		PriceCents: 12000,
		Status:     entity.IntervalMaintenance,
	}

	slots := g.Generate(interval, 60)
	require.Len(t, slots, 2)
	for _, s := range slots {
		assert.Equal(t, entity.SlotMaintenance, s.Status)
	}
}

func TestSlotGeneratorIdempotent(t *testing.T) {
	g := NewSlotGenerator()

	interval := &entity.OperatingInterval{
		CourtID:    uuid.New(),
		Weekday:    time.Monday,
		StartTime:  mustParse(t, "08:00"),
		EndTime:    mustParse(t, "22:00"),
		PriceCents: 9000,
		Status:     entity.IntervalAvailable,
	}

	first := g.Generate(interval, 60)
	second := g.Generate(interval, 60)

	assert.Equal(t, first, second)
}
