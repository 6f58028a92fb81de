package service

import (
	"context"
	"testing"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/utils"
	accountentity "github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/entity"
	courtentity "github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourtRepo struct {
	courts map[uuid.UUID]*courtentity.Court
}

func (f *fakeCourtRepo) Create(_ context.Context, c *courtentity.Court) (*courtentity.Court, error) {
	f.courts[c.ID] = c
	return c, nil
}

func (f *fakeCourtRepo) GetByID(_ context.Context, id uuid.UUID) (*courtentity.Court, error) {
	return f.courts[id], nil
}

func (f *fakeCourtRepo) GetBySlug(_ context.Context, _ string) (*courtentity.Court, error) {
	return nil, nil
}

func (f *fakeCourtRepo) GetByOperatorID(_ context.Context, _ uuid.UUID) ([]courtentity.Court, error) {
	return nil, nil
}

func (f *fakeCourtRepo) Update(_ context.Context, _ *courtentity.Court) error { return nil }

func (f *fakeCourtRepo) SetPhotoURL(_ context.Context, _ uuid.UUID, _ string) error { return nil }

type fakeScheduleRepo struct {
	byID     map[uuid.UUID]courtentity.TimeSlot
	resolver *fakeResolver
}

func (f *fakeScheduleRepo) ReplaceSchedule(_ context.Context, _ uuid.UUID, _ []courtentity.OperatingInterval, _ func(*courtentity.OperatingInterval) []courtentity.TimeSlot) error {
	return nil
}

func (f *fakeScheduleRepo) GetIntervalsByCourtID(_ context.Context, _ uuid.UUID) ([]courtentity.OperatingInterval, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) GetSlotsByCourtID(_ context.Context, _ uuid.UUID) ([]courtentity.TimeSlot, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) GetSlotsByCourtAndWeekday(_ context.Context, _ uuid.UUID, _ time.Weekday) ([]courtentity.TimeSlot, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) GetSlotsByIDs(_ context.Context, ids []uuid.UUID) ([]courtentity.TimeSlot, error) {
	var out []courtentity.TimeSlot
	for _, id := range ids {
		if s, ok := f.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) FindSlotByWeekdayAndTimes(ctx context.Context, courtID uuid.UUID, weekday time.Weekday, start, end courtentity.TimeOfDay) (*courtentity.TimeSlot, error) {
	return f.resolver.FindSlotByWeekdayAndTimes(ctx, courtID, weekday, start, end)
}

type fakeAccountRepo struct {
	operators map[uuid.UUID]*accountentity.Operator
	athletes  map[uuid.UUID]*accountentity.Athlete
}

func (f *fakeAccountRepo) CreateOperator(_ context.Context, op *accountentity.Operator) (*accountentity.Operator, error) {
	return op, nil
}

func (f *fakeAccountRepo) CreateAthlete(_ context.Context, a *accountentity.Athlete) (*accountentity.Athlete, error) {
	return a, nil
}

func (f *fakeAccountRepo) GetOperatorByID(_ context.Context, id uuid.UUID) (*accountentity.Operator, error) {
	return f.operators[id], nil
}

func (f *fakeAccountRepo) GetAthleteByID(_ context.Context, id uuid.UUID) (*accountentity.Athlete, error) {
	return f.athletes[id], nil
}

func (f *fakeAccountRepo) GetOperatorByEmail(_ context.Context, _ string) (*accountentity.Operator, error) {
	return nil, nil
}

func (f *fakeAccountRepo) GetAthleteByEmail(_ context.Context, _ string) (*accountentity.Athlete, error) {
	return nil, nil
}

func (f *fakeAccountRepo) UpdateOperatorLeadHours(_ context.Context, _ uuid.UUID, _ int) error {
	return nil
}

// fixture wires a BookingService over in-memory storage with a frozen clock.
type fixture struct {
	svc       *BookingService
	repo      *fakeBookingRepo
	courtID   uuid.UUID
	operator  uuid.UUID
	athlete   uuid.UUID
	slotIDs   []uuid.UUID
	now       time.Time
	targetDay string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc := utils.Location()

	operatorID := uuid.New()
	athleteID := uuid.New()
	courtID := uuid.New()

	court := &courtentity.Court{
		OperatorID:          operatorID,
		Name:                "Arena Centro 1",
		Sport:               courtentity.SportBeachTennis,
		SlotDurationMinutes: 60,
		Active:              true,
	}
	court.ID = courtID

	// Two contiguous Monday evening slots.
	s1 := slotAt(courtID, 18*60, 19*60)
	s2 := slotAt(courtID, 19*60, 20*60)

	resolver := resolverForAllWeekdays(courtID, 18*60, 19*60)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		s := slotAt(courtID, 19*60, 20*60)
		s.Weekday = wd
		resolver.slots[resolverKey{wd, 19 * 60, 20 * 60}] = s
	}

	repo := newFakeBookingRepo()
	schedule := &fakeScheduleRepo{
		byID:     map[uuid.UUID]courtentity.TimeSlot{s1.ID: s1, s2.ID: s2},
		resolver: resolver,
	}
	accounts := &fakeAccountRepo{
		operators: map[uuid.UUID]*accountentity.Operator{operatorID: {
			Name:    "Arena Centro",
			Contact: accountentity.Contact{Email: "operator@example.com"},
		}},
		athletes: map[uuid.UUID]*accountentity.Athlete{athleteID: {
			Name:    "Ana",
			Contact: accountentity.Contact{Email: "ana@example.com"},
		}},
	}
	accounts.operators[operatorID].ID = operatorID
	accounts.athletes[athleteID].ID = athleteID

	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, loc)

	svc := &BookingService{
		bookings:  repo,
		courts:    &fakeCourtRepo{courts: map[uuid.UUID]*courtentity.Court{courtID: court}},
		schedule:  schedule,
		accounts:  accounts,
		checker:   NewAvailabilityChecker(),
		policy:    NewCancellationPolicy(),
		recurring: NewRecurringBookingEngine(repo, schedule),
		tasks:     nil,
		now:       func() time.Time { return now },
	}

	return &fixture{
		svc:       svc,
		repo:      repo,
		courtID:   courtID,
		operator:  operatorID,
		athlete:   athleteID,
		slotIDs:   []uuid.UUID{s1.ID, s2.ID},
		now:       now,
		targetDay: "2026-09-07", // the following Monday
	}
}

func TestCreateBooking(t *testing.T) {
	fx := newFixture(t)

	resp, appErr := fx.svc.CreateBooking(context.Background(), fx.athlete, &dto.CreateBookingRequest{
		CourtID:  fx.courtID,
		Date:     fx.targetDay,
		SlotIDs:  fx.slotIDs,
		IsPublic: true,
	})
	require.Nil(t, appErr)
	require.Nil(t, resp.Series)

	b := resp.Booking
	assert.Equal(t, "PENDING", b.Status)
	assert.Equal(t, "18:00", b.StartTime)
	assert.Equal(t, "20:00", b.EndTime)
	assert.Equal(t, int64(16000), b.TotalPriceCents)
	assert.True(t, b.IsPublic)
	assert.False(t, b.IsRecurring)
	assert.NotEmpty(t, b.ReferenceCode)

	assert.Equal(t, 1, fx.repo.claims[claimKey{fx.courtID, fx.targetDay, 18 * 60, 19 * 60}])
	assert.Equal(t, 1, fx.repo.claims[claimKey{fx.courtID, fx.targetDay, 19 * 60, 20 * 60}])
}

func TestCreateBookingConflict(t *testing.T) {
	fx := newFixture(t)
	fx.repo.claims[claimKey{fx.courtID, fx.targetDay, 19 * 60, 20 * 60}] = 1

	_, appErr := fx.svc.CreateBooking(context.Background(), fx.athlete, &dto.CreateBookingRequest{
		CourtID: fx.courtID,
		Date:    fx.targetDay,
		SlotIDs: fx.slotIDs,
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotConflict, appErr.Code)
	assert.Empty(t, fx.repo.bookings, "nothing may persist on conflict")
}

// Cancelling a booking releases its slot claims, so the same slot and date
// can be booked again by someone else.
func TestCancelThenRebook(t *testing.T) {
	fx := newFixture(t)
	req := &dto.CreateBookingRequest{
		CourtID: fx.courtID,
		Date:    fx.targetDay,
		SlotIDs: []uuid.UUID{fx.slotIDs[0]},
	}

	first, appErr := fx.svc.CreateBooking(context.Background(), fx.athlete, req)
	require.Nil(t, appErr)

	otherAthlete := uuid.New()
	_, appErr = fx.svc.CreateBooking(context.Background(), otherAthlete, req)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotConflict, appErr.Code)

	_, appErr = fx.svc.TransitionStatus(context.Background(), fx.athlete, accountentity.RoleAthlete,
		first.Booking.ID, &dto.TransitionRequest{Status: "CANCELLED"})
	require.Nil(t, appErr)

	rebooked, appErr := fx.svc.CreateBooking(context.Background(), otherAthlete, req)
	require.Nil(t, appErr)
	assert.Equal(t, "PENDING", rebooked.Booking.Status)
	assert.Equal(t, 1, fx.repo.claims[claimKey{fx.courtID, fx.targetDay, 18 * 60, 19 * 60}])
}

func TestCreateBookingValidation(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name     string
		req      dto.CreateBookingRequest
		wantCode errors.ErrorCode
	}{
		{
			name:     "past date",
			req:      dto.CreateBookingRequest{CourtID: fx.courtID, Date: "2026-08-30", SlotIDs: fx.slotIDs},
			wantCode: errors.ErrPastCutoff,
		},
		{
			name:     "malformed date",
			req:      dto.CreateBookingRequest{CourtID: fx.courtID, Date: "07/09/2026", SlotIDs: fx.slotIDs},
			wantCode: errors.ErrInvalidInput,
		},
		{
			name:     "unknown court",
			req:      dto.CreateBookingRequest{CourtID: uuid.New(), Date: fx.targetDay, SlotIDs: fx.slotIDs},
			wantCode: errors.ErrNotFound,
		},
		{
			name:     "unknown slot",
			req:      dto.CreateBookingRequest{CourtID: fx.courtID, Date: fx.targetDay, SlotIDs: []uuid.UUID{uuid.New()}},
			wantCode: errors.ErrNotFound,
		},
		{
			name:     "weekday mismatch",
			req:      dto.CreateBookingRequest{CourtID: fx.courtID, Date: "2026-09-08", SlotIDs: fx.slotIDs},
			wantCode: errors.ErrInvalidInput,
		},
		{
			name:     "gap in selection",
			req:      dto.CreateBookingRequest{CourtID: fx.courtID, Date: fx.targetDay, SlotIDs: []uuid.UUID{fx.slotIDs[0], fx.slotIDs[0]}},
			wantCode: errors.ErrNonContiguousSelection,
		},
		{
			name:     "bad recurrence period",
			req:      dto.CreateBookingRequest{CourtID: fx.courtID, Date: fx.targetDay, SlotIDs: fx.slotIDs, RecurrenceMonths: 2},
			wantCode: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, appErr := fx.svc.CreateBooking(context.Background(), fx.athlete, &tt.req)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestCreateBookingRecurring(t *testing.T) {
	fx := newFixture(t)

	resp, appErr := fx.svc.CreateBooking(context.Background(), fx.athlete, &dto.CreateBookingRequest{
		CourtID:          fx.courtID,
		Date:             fx.targetDay,
		SlotIDs:          fx.slotIDs,
		RecurrenceMonths: 1,
	})
	require.Nil(t, appErr)
	require.NotNil(t, resp.Series)

	assert.True(t, resp.Booking.IsRecurring)
	assert.Equal(t, resp.Series.ID, *resp.Booking.SeriesID)
	assert.Equal(t, 4, resp.Series.Occurrences)
	assert.Empty(t, resp.Series.SkippedDates)
	assert.Equal(t, 1, resp.Series.PeriodMonths)
}

func TestTransitionStatus(t *testing.T) {
	fx := newFixture(t)

	create := func(t *testing.T) uuid.UUID {
		t.Helper()
		resp, appErr := fx.svc.CreateBooking(context.Background(), fx.athlete, &dto.CreateBookingRequest{
			CourtID: fx.courtID,
			Date:    fx.targetDay,
			SlotIDs: []uuid.UUID{fx.slotIDs[0]},
		})
		require.Nil(t, appErr)
		id := resp.Booking.ID
		t.Cleanup(func() { delete(fx.repo.bookings, id); fx.repo.claims = map[claimKey]int{} })
		return id
	}

	t.Run("operator marks paid", func(t *testing.T) {
		id := create(t)
		resp, appErr := fx.svc.TransitionStatus(context.Background(), fx.operator, accountentity.RoleOperator, id, &dto.TransitionRequest{Status: "PAID"})
		require.Nil(t, appErr)
		assert.Equal(t, "PAID", resp.Status)
	})

	t.Run("athlete cannot mark paid", func(t *testing.T) {
		id := create(t)
		_, appErr := fx.svc.TransitionStatus(context.Background(), fx.athlete, accountentity.RoleAthlete, id, &dto.TransitionRequest{Status: "PAID"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrAccessDenied, appErr.Code)
	})

	t.Run("foreign operator denied", func(t *testing.T) {
		id := create(t)
		_, appErr := fx.svc.TransitionStatus(context.Background(), uuid.New(), accountentity.RoleOperator, id, &dto.TransitionRequest{Status: "PAID"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrAccessDenied, appErr.Code)
	})

	t.Run("athlete cancels inside the window", func(t *testing.T) {
		id := create(t)
		resp, appErr := fx.svc.TransitionStatus(context.Background(), fx.athlete, accountentity.RoleAthlete, id, &dto.TransitionRequest{Status: "CANCELLED"})
		require.Nil(t, appErr)
		assert.Equal(t, "CANCELLED", resp.Status)
	})

	t.Run("athlete cancellation past the cutoff", func(t *testing.T) {
		id := create(t)
		// Booking starts 18:00 on Sep 7; with the default 24h lead the
		// window closes Sep 6 18:00.
		fx.repo.bookings[id].BookingDate = time.Date(2026, time.September, 7, 0, 0, 0, 0, utils.Location())
		lateNow := time.Date(2026, time.September, 6, 19, 0, 0, 0, utils.Location())
		fx.svc.now = func() time.Time { return lateNow }
		defer func() { fx.svc.now = func() time.Time { return fx.now } }()

		_, appErr := fx.svc.TransitionStatus(context.Background(), fx.athlete, accountentity.RoleAthlete, id, &dto.TransitionRequest{Status: "CANCELLED"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrPastCutoff, appErr.Code)
	})

	t.Run("terminal booking rejects further moves", func(t *testing.T) {
		id := create(t)
		_, appErr := fx.svc.TransitionStatus(context.Background(), fx.operator, accountentity.RoleOperator, id, &dto.TransitionRequest{Status: "PAID"})
		require.Nil(t, appErr)

		_, appErr = fx.svc.TransitionStatus(context.Background(), fx.operator, accountentity.RoleOperator, id, &dto.TransitionRequest{Status: "CANCELLED"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidStateTransition, appErr.Code)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		id := create(t)
		_, appErr := fx.svc.TransitionStatus(context.Background(), fx.operator, accountentity.RoleOperator, id, &dto.TransitionRequest{Status: "DONE"})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})
}

func TestCancelSeries(t *testing.T) {
	fx := newFixture(t)

	resp, appErr := fx.svc.CreateBooking(context.Background(), fx.athlete, &dto.CreateBookingRequest{
		CourtID:          fx.courtID,
		Date:             fx.targetDay,
		SlotIDs:          []uuid.UUID{fx.slotIDs[0]},
		RecurrenceMonths: 1,
	})
	require.Nil(t, appErr)
	seriesID := resp.Series.ID

	t.Run("foreign athlete denied", func(t *testing.T) {
		_, appErr := fx.svc.CancelSeries(context.Background(), uuid.New(), seriesID)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrAccessDenied, appErr.Code)
	})

	t.Run("owner cancels all future occurrences", func(t *testing.T) {
		result, appErr := fx.svc.CancelSeries(context.Background(), fx.athlete, seriesID)
		require.Nil(t, appErr)
		assert.Equal(t, "CANCELLED", result.Status)
		// Seed plus four weekly occurrences, all in the future.
		assert.Equal(t, 5, result.Occurrences)

		for _, b := range fx.repo.bookings {
			if b.SeriesID != nil && *b.SeriesID == seriesID {
				assert.Equal(t, entity.StatusCancelled, b.Status)
			}
		}
	})

	t.Run("already cancelled series rejected", func(t *testing.T) {
		_, appErr := fx.svc.CancelSeries(context.Background(), fx.athlete, seriesID)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidStateTransition, appErr.Code)
	})
}
