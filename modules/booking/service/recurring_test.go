package service

import (
	"context"
	"testing"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/utils"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/repository"
	courtentity "github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo is an in-memory stand-in for the booking storage. Its
// transaction view writes straight into the shared maps, which matches the
// read-your-writes behaviour the engine relies on.
type fakeBookingRepo struct {
	bookings      map[uuid.UUID]*entity.Booking
	claims        map[claimKey]int
	claimsByOwner map[uuid.UUID][]claimKey
	series        map[uuid.UUID]*entity.RecurringSeries
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:      map[uuid.UUID]*entity.Booking{},
		claims:        map[claimKey]int{},
		claimsByOwner: map[uuid.UUID][]claimKey{},
		series:        map[uuid.UUID]*entity.RecurringSeries{},
	}
}

func (f *fakeBookingRepo) CountActiveClaims(_ context.Context, courtID uuid.UUID, date time.Time, start, end courtentity.TimeOfDay) (int, error) {
	return f.claims[claimKey{courtID, date.Format("2006-01-02"), start, end}], nil
}

func (f *fakeBookingRepo) WithinTx(_ context.Context, fn func(tx repository.BookingTxRepository) error) error {
	return fn(&fakeTx{repo: f})
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) ListByAthlete(_ context.Context, _ uuid.UUID, _, _ int) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListByCourtAndDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]entity.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListPublicByDate(_ context.Context, _ time.Time) ([]entity.Booking, error) {
	return nil, nil
}

// UpdateStatus mirrors the real repository: cancelling a booking also
// releases its slot claims so the slot frees immediately.
func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	if b, ok := f.bookings[id]; ok {
		b.Status = status
	}
	if status == entity.StatusCancelled {
		for _, k := range f.claimsByOwner[id] {
			if f.claims[k] > 0 {
				f.claims[k]--
			}
		}
		delete(f.claimsByOwner, id)
	}
	return nil
}

func (f *fakeBookingRepo) GetSeriesByID(_ context.Context, id uuid.UUID) (*entity.RecurringSeries, error) {
	return f.series[id], nil
}

func (f *fakeBookingRepo) ListSeriesBookingsFrom(_ context.Context, seriesID uuid.UUID, from time.Time) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range f.bookings {
		if b.SeriesID != nil && *b.SeriesID == seriesID && !b.BookingDate.Before(from) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateSeriesStatus(_ context.Context, id uuid.UUID, status entity.SeriesStatus) error {
	if s, ok := f.series[id]; ok {
		s.Status = status
	}
	return nil
}

type fakeTx struct {
	repo *fakeBookingRepo
}

func (t *fakeTx) CountActiveClaims(ctx context.Context, courtID uuid.UUID, date time.Time, start, end courtentity.TimeOfDay) (int, error) {
	return t.repo.CountActiveClaims(ctx, courtID, date, start, end)
}

func (t *fakeTx) InsertBooking(_ context.Context, b *entity.Booking) error {
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	clone := *b
	t.repo.bookings[b.ID] = &clone
	return nil
}

func (t *fakeTx) InsertClaims(_ context.Context, claims []entity.SlotClaim) error {
	for _, c := range claims {
		k := claimKey{c.CourtID, c.BookingDate.Format("2006-01-02"), c.StartTime, c.EndTime}
		t.repo.claims[k]++
		t.repo.claimsByOwner[c.BookingID] = append(t.repo.claimsByOwner[c.BookingID], k)
	}
	return nil
}

func (t *fakeTx) InsertSeries(_ context.Context, s *entity.RecurringSeries) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	t.repo.series[s.ID] = s
	return nil
}

func (t *fakeTx) MarkSeedRecurring(_ context.Context, bookingID, seriesID uuid.UUID) error {
	if b, ok := t.repo.bookings[bookingID]; ok {
		b.IsRecurring = true
		b.SeriesID = &seriesID
	}
	return nil
}

type resolverKey struct {
	weekday time.Weekday
	start   courtentity.TimeOfDay
	end     courtentity.TimeOfDay
}

// fakeResolver serves slot templates per weekday from a fixed table.
type fakeResolver struct {
	slots map[resolverKey]courtentity.TimeSlot
}

func (f *fakeResolver) FindSlotByWeekdayAndTimes(_ context.Context, _ uuid.UUID, weekday time.Weekday, start, end courtentity.TimeOfDay) (*courtentity.TimeSlot, error) {
	if s, ok := f.slots[resolverKey{weekday, start, end}]; ok {
		clone := s
		return &clone, nil
	}
	return nil, nil
}

func resolverForAllWeekdays(courtID uuid.UUID, start, end courtentity.TimeOfDay) *fakeResolver {
	r := &fakeResolver{slots: map[resolverKey]courtentity.TimeSlot{}}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		s := courtentity.TimeSlot{
			CourtID:    courtID,
			Weekday:    wd,
			StartTime:  start,
			EndTime:    end,
			PriceCents: 8000,
			Status:     courtentity.SlotAvailable,
		}
		s.ID = uuid.New()
		r.slots[resolverKey{wd, start, end}] = s
	}
	return r
}

func seedBooking(courtID uuid.UUID, date time.Time) *entity.Booking {
	b := &entity.Booking{
		ReferenceCode:   "SEED1234",
		CourtID:         courtID,
		AthleteID:       uuid.New(),
		BookingDate:     date,
		StartTime:       18 * 60,
		EndTime:         19 * 60,
		TotalPriceCents: 8000,
		Sport:           courtentity.SportBeachTennis,
		Status:          entity.StatusPending,
		IsPublic:        true,
	}
	b.ID = uuid.New()
	return b
}

func TestMaterializeOneMonth(t *testing.T) {
	loc := utils.Location()
	courtID := uuid.New()
	// 2026-09-07 is a Monday; one month of weekly Mondays after it:
	// 09-14, 09-21, 09-28 and 10-05.
	seedDate := time.Date(2026, time.September, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, loc)

	repo := newFakeBookingRepo()
	seed := seedBooking(courtID, seedDate)
	repo.bookings[seed.ID] = seed

	seedSlots := []courtentity.TimeSlot{slotAt(courtID, 18*60, 19*60)}
	engine := NewRecurringBookingEngine(repo, resolverForAllWeekdays(courtID, 18*60, 19*60))

	result, appErr := engine.Materialize(context.Background(), seed, seedSlots, entity.PeriodOneMonth, now)
	require.Nil(t, appErr)
	require.NotNil(t, result.Series)

	assert.Len(t, result.Occurrences, 4)
	assert.Empty(t, result.SkippedDates)

	assert.Equal(t, seedDate, result.Series.StartDate)
	assert.Equal(t, seedDate.AddDate(0, 1, 0), result.Series.EndDate)
	assert.Equal(t, entity.SeriesActive, result.Series.Status)
	assert.Equal(t, seed.ID, result.Series.SeedBookingID)

	assert.True(t, repo.bookings[seed.ID].IsRecurring, "seed must be flagged recurring")
	require.NotNil(t, repo.bookings[seed.ID].SeriesID)

	wantDates := []string{"2026-09-14", "2026-09-21", "2026-09-28", "2026-10-05"}
	for i, occ := range result.Occurrences {
		assert.Equal(t, wantDates[i], occ.BookingDate.Format("2006-01-02"))
		assert.True(t, occ.IsRecurring)
		assert.False(t, occ.IsPublic, "occurrences are never public")
		assert.Equal(t, seed.Status, occ.Status)
		assert.Equal(t, seed.AthleteID, occ.AthleteID)
		require.NotNil(t, occ.SeriesID)
		assert.Equal(t, result.Series.ID, *occ.SeriesID)
		assert.NotEmpty(t, occ.ReferenceCode)
		assert.NotEqual(t, seed.ReferenceCode, occ.ReferenceCode)
	}

	// Every occurrence claimed its slot.
	for _, d := range wantDates {
		assert.Equal(t, 1, repo.claims[claimKey{courtID, d, 18 * 60, 19 * 60}])
	}
}

func TestMaterializeSkipsConflictedDates(t *testing.T) {
	loc := utils.Location()
	courtID := uuid.New()
	seedDate := time.Date(2026, time.September, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, loc)

	repo := newFakeBookingRepo()
	seed := seedBooking(courtID, seedDate)
	repo.bookings[seed.ID] = seed

	// Another athlete already holds 2026-09-21.
	repo.claims[claimKey{courtID, "2026-09-21", 18 * 60, 19 * 60}] = 1

	seedSlots := []courtentity.TimeSlot{slotAt(courtID, 18*60, 19*60)}
	engine := NewRecurringBookingEngine(repo, resolverForAllWeekdays(courtID, 18*60, 19*60))

	result, appErr := engine.Materialize(context.Background(), seed, seedSlots, entity.PeriodOneMonth, now)
	require.Nil(t, appErr)

	assert.Len(t, result.Occurrences, 3)
	require.Len(t, result.SkippedDates, 1)
	assert.Equal(t, "2026-09-21", result.SkippedDates[0].Format("2006-01-02"))

	// The conflicted date keeps the other athlete's single claim.
	assert.Equal(t, 1, repo.claims[claimKey{courtID, "2026-09-21", 18 * 60, 19 * 60}])
}

func TestMaterializeSkipsDatesWithoutSlotTemplate(t *testing.T) {
	loc := utils.Location()
	courtID := uuid.New()
	seedDate := time.Date(2026, time.September, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, loc)

	repo := newFakeBookingRepo()
	seed := seedBooking(courtID, seedDate)
	repo.bookings[seed.ID] = seed

	// Resolver knows no weekday at all: the schedule was replaced and the
	// court no longer opens at this hour.
	engine := NewRecurringBookingEngine(repo, &fakeResolver{slots: map[resolverKey]courtentity.TimeSlot{}})

	seedSlots := []courtentity.TimeSlot{slotAt(courtID, 18*60, 19*60)}
	result, appErr := engine.Materialize(context.Background(), seed, seedSlots, entity.PeriodOneMonth, now)
	require.Nil(t, appErr)

	assert.Empty(t, result.Occurrences)
	assert.Len(t, result.SkippedDates, 4)
	require.NotNil(t, result.Series, "series exists even when every date is skipped")
	assert.Equal(t, entity.SeriesActive, result.Series.Status)
}

func TestMaterializeRejectsInvalidPeriod(t *testing.T) {
	loc := utils.Location()
	courtID := uuid.New()
	seed := seedBooking(courtID, time.Date(2026, time.September, 7, 0, 0, 0, 0, loc))

	repo := newFakeBookingRepo()
	engine := NewRecurringBookingEngine(repo, resolverForAllWeekdays(courtID, 18*60, 19*60))

	seedSlots := []courtentity.TimeSlot{slotAt(courtID, 18*60, 19*60)}
	_, appErr := engine.Materialize(context.Background(), seed, seedSlots, entity.RecurrencePeriod(2), time.Now())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	assert.Empty(t, repo.series)
}

func TestMaterializeRejectsEmptySeedSlots(t *testing.T) {
	loc := utils.Location()
	courtID := uuid.New()
	seed := seedBooking(courtID, time.Date(2026, time.September, 7, 0, 0, 0, 0, loc))

	repo := newFakeBookingRepo()
	engine := NewRecurringBookingEngine(repo, resolverForAllWeekdays(courtID, 18*60, 19*60))

	_, appErr := engine.Materialize(context.Background(), seed, nil, entity.PeriodOneMonth, time.Now())
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}
