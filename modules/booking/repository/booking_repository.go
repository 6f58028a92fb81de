package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/booking/entity"
	courtentity "github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ConflictQuerier is the slice of booking storage the availability checker
// depends on. Both the plain repository and its in-transaction view satisfy
// it, so the same check runs inside the booking transaction.
type ConflictQuerier interface {
	CountActiveClaims(ctx context.Context, courtID uuid.UUID, date time.Time, start, end courtentity.TimeOfDay) (int, error)
}

// BookingTxRepository is the write surface available inside one booking
// transaction: the conflict check and the inserts it guards are a single
// all-or-nothing unit.
type BookingTxRepository interface {
	ConflictQuerier
	InsertBooking(ctx context.Context, b *entity.Booking) error
	InsertClaims(ctx context.Context, claims []entity.SlotClaim) error
	InsertSeries(ctx context.Context, s *entity.RecurringSeries) error
	MarkSeedRecurring(ctx context.Context, bookingID, seriesID uuid.UUID) error
}

// BookingRepositoryInterface defines the repository contract
type BookingRepositoryInterface interface {
	ConflictQuerier
	WithinTx(ctx context.Context, fn func(tx BookingTxRepository) error) error

	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	ListByAthlete(ctx context.Context, athleteID uuid.UUID, limit, offset int) ([]entity.Booking, error)
	ListByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]entity.Booking, error)
	ListPublicByDate(ctx context.Context, date time.Time) ([]entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	GetSeriesByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSeries, error)
	ListSeriesBookingsFrom(ctx context.Context, seriesID uuid.UUID, from time.Time) ([]entity.Booking, error)
	UpdateSeriesStatus(ctx context.Context, id uuid.UUID, status entity.SeriesStatus) error
}

// BookingRepository handles booking database operations
type BookingRepository struct {
	DB database.IDatabase
	queries
}

func NewBookingRepository(db database.IDatabase) *BookingRepository {
	return &BookingRepository{DB: db, queries: queries{ext: db.SQLx()}}
}

func (r *BookingRepository) WithinTx(ctx context.Context, fn func(tx BookingTxRepository) error) error {
	txx, err := r.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.Error("BookingRepository:WithinTx:Begin", "error", err)
		return err
	}
	defer txx.Rollback()

	if err := fn(queries{ext: txx}); err != nil {
		return err
	}

	if err := txx.Commit(); err != nil {
		logger.Error("BookingRepository:WithinTx:Commit", "error", err)
		return err
	}
	return nil
}

const bookingColumns = `id, reference_code, court_id, athlete_id, booking_date, start_time, end_time,
       total_price_cents, sport, status, is_recurring, is_public, series_id, created_at, updated_at`

const seriesColumns = `id, athlete_id, court_id, seed_booking_id, start_date, end_date, period_months,
       status, created_at, updated_at`

// queries runs against either the pool or one transaction.
type queries struct {
	ext sqlx.ExtContext
}

// CountActiveClaims is the conflict query: claims of non-cancelled bookings
// for the same court, date and exact slot boundaries.
func (q queries) CountActiveClaims(ctx context.Context, courtID uuid.UUID, date time.Time, start, end courtentity.TimeOfDay) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM booking_slots
		WHERE court_id = $1 AND booking_date = $2 AND start_time = $3 AND end_time = $4
		  AND cancelled = false
	`

	var count int
	err := sqlx.GetContext(ctx, q.ext, &count, query, courtID, date, start, end)
	if err != nil {
		logger.Error("BookingRepository:CountActiveClaims", "error", err)
		return 0, err
	}

	return count, nil
}

func (q queries) InsertBooking(ctx context.Context, b *entity.Booking) error {
	query := `
		INSERT INTO bookings (reference_code, court_id, athlete_id, booking_date, start_time, end_time,
		                      total_price_cents, sport, status, is_recurring, is_public, series_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + bookingColumns

	err := sqlx.GetContext(ctx, q.ext, b, query,
		b.ReferenceCode, b.CourtID, b.AthleteID, b.BookingDate, b.StartTime, b.EndTime,
		b.TotalPriceCents, b.Sport, b.Status, b.IsRecurring, b.IsPublic, b.SeriesID)
	if err != nil {
		logger.Error("BookingRepository:InsertBooking", "error", err)
		return err
	}

	return nil
}

func (q queries) InsertClaims(ctx context.Context, claims []entity.SlotClaim) error {
	query := `
		INSERT INTO booking_slots (booking_id, slot_id, court_id, booking_date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for i := range claims {
		c := &claims[i]
		_, err := q.ext.ExecContext(ctx, query,
			c.BookingID, c.SlotID, c.CourtID, c.BookingDate, c.StartTime, c.EndTime)
		if err != nil {
			logger.Error("BookingRepository:InsertClaims", "error", err)
			return err
		}
	}

	return nil
}

func (q queries) InsertSeries(ctx context.Context, s *entity.RecurringSeries) error {
	query := `
		INSERT INTO recurring_series (athlete_id, court_id, seed_booking_id, start_date, end_date, period_months, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + seriesColumns

	err := sqlx.GetContext(ctx, q.ext, s, query,
		s.AthleteID, s.CourtID, s.SeedBookingID, s.StartDate, s.EndDate, s.PeriodMonths, s.Status)
	if err != nil {
		logger.Error("BookingRepository:InsertSeries", "error", err)
		return err
	}

	return nil
}

func (q queries) MarkSeedRecurring(ctx context.Context, bookingID, seriesID uuid.UUID) error {
	query := `UPDATE bookings SET is_recurring = true, series_id = $2, updated_at = NOW() WHERE id = $1`
	_, err := q.ext.ExecContext(ctx, query, bookingID, seriesID)
	if err != nil {
		logger.Error("BookingRepository:MarkSeedRecurring", "error", err)
		return err
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b entity.Booking
	err := r.DB.GetContext(ctx, &b, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", "error", err)
		return nil, err
	}

	return &b, nil
}

func (r *BookingRepository) ListByAthlete(ctx context.Context, athleteID uuid.UUID, limit, offset int) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE athlete_id = $1
		ORDER BY booking_date DESC, start_time DESC
		LIMIT $2 OFFSET $3
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, athleteID, limit, offset)
	if err != nil {
		logger.Error("BookingRepository:ListByAthlete", "error", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) ListByCourtAndDate(ctx context.Context, courtID uuid.UUID, date time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE court_id = $1 AND booking_date = $2
		ORDER BY start_time
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, courtID, date)
	if err != nil {
		logger.Error("BookingRepository:ListByCourtAndDate", "error", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) ListPublicByDate(ctx context.Context, date time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE is_public = true AND booking_date = $1 AND status NOT IN ('CANCELLED', 'ABSENT')
		ORDER BY start_time
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, date)
	if err != nil {
		logger.Error("BookingRepository:ListPublicByDate", "error", err)
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus flips a booking's status. Cancellation also releases the
// booking's slot claims so the conflict query and the partial unique index
// stop counting them.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	txx, err := r.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.Error("BookingRepository:UpdateStatus:Begin", "error", err)
		return err
	}
	defer txx.Rollback()

	if _, err := txx.ExecContext(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, status); err != nil {
		logger.Error("BookingRepository:UpdateStatus", "error", err)
		return err
	}

	if status == entity.StatusCancelled {
		if _, err := txx.ExecContext(ctx,
			`UPDATE booking_slots SET cancelled = true WHERE booking_id = $1`, id); err != nil {
			logger.Error("BookingRepository:UpdateStatus:ReleaseClaims", "error", err)
			return err
		}
	}

	if err := txx.Commit(); err != nil {
		logger.Error("BookingRepository:UpdateStatus:Commit", "error", err)
		return err
	}
	return nil
}

func (r *BookingRepository) GetSeriesByID(ctx context.Context, id uuid.UUID) (*entity.RecurringSeries, error) {
	query := `SELECT ` + seriesColumns + ` FROM recurring_series WHERE id = $1`

	var s entity.RecurringSeries
	err := r.DB.GetContext(ctx, &s, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetSeriesByID", "error", err)
		return nil, err
	}

	return &s, nil
}

func (r *BookingRepository) ListSeriesBookingsFrom(ctx context.Context, seriesID uuid.UUID, from time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE series_id = $1 AND booking_date >= $2
		ORDER BY booking_date
	`

	var bookings []entity.Booking
	err := r.DB.SelectContext(ctx, &bookings, query, seriesID, from)
	if err != nil {
		logger.Error("BookingRepository:ListSeriesBookingsFrom", "error", err)
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) UpdateSeriesStatus(ctx context.Context, id uuid.UUID, status entity.SeriesStatus) error {
	query := `UPDATE recurring_series SET status = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		logger.Error("BookingRepository:UpdateSeriesStatus", "error", err)
		return err
	}
	return nil
}
