package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
)

// ScheduleRepository handles operating interval and time slot persistence.
type ScheduleRepository struct {
	DB database.IDatabase
}

func NewScheduleRepository(db database.IDatabase) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

// ScheduleRepositoryInterface defines the repository contract
type ScheduleRepositoryInterface interface {
	// ReplaceSchedule swaps a court's whole weekly schedule in one
	// transaction: intervals and their generated slots are deleted and
	// re-inserted, never patched.
	ReplaceSchedule(ctx context.Context, courtID uuid.UUID, intervals []entity.OperatingInterval, slotsByInterval func(interval *entity.OperatingInterval) []entity.TimeSlot) error

	GetIntervalsByCourtID(ctx context.Context, courtID uuid.UUID) ([]entity.OperatingInterval, error)
	GetSlotsByCourtID(ctx context.Context, courtID uuid.UUID) ([]entity.TimeSlot, error)
	GetSlotsByCourtAndWeekday(ctx context.Context, courtID uuid.UUID, weekday time.Weekday) ([]entity.TimeSlot, error)
	GetSlotsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.TimeSlot, error)
	FindSlotByWeekdayAndTimes(ctx context.Context, courtID uuid.UUID, weekday time.Weekday, start, end entity.TimeOfDay) (*entity.TimeSlot, error)
}

const intervalColumns = `id, court_id, weekday, start_time, end_time, price_cents, status, created_at, updated_at`
const slotColumns = `id, court_id, interval_id, weekday, start_time, end_time, price_cents, status, created_at, updated_at`

func (r *ScheduleRepository) ReplaceSchedule(ctx context.Context, courtID uuid.UUID, intervals []entity.OperatingInterval, slotsByInterval func(interval *entity.OperatingInterval) []entity.TimeSlot) error {
	tx, err := r.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.Error("ScheduleRepository:ReplaceSchedule:Begin", "error", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM time_slots WHERE court_id = $1`, courtID); err != nil {
		logger.Error("ScheduleRepository:ReplaceSchedule:DeleteSlots", "error", err)
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM operating_intervals WHERE court_id = $1`, courtID); err != nil {
		logger.Error("ScheduleRepository:ReplaceSchedule:DeleteIntervals", "error", err)
		return err
	}

	insertInterval := `
		INSERT INTO operating_intervals (court_id, weekday, start_time, end_time, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + intervalColumns

	insertSlot := `
		INSERT INTO time_slots (court_id, interval_id, weekday, start_time, end_time, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for i := range intervals {
		var created entity.OperatingInterval
		err := tx.GetContext(ctx, &created, insertInterval,
			courtID, intervals[i].Weekday, intervals[i].StartTime, intervals[i].EndTime,
			intervals[i].PriceCents, intervals[i].Status)
		if err != nil {
			logger.Error("ScheduleRepository:ReplaceSchedule:InsertInterval", "error", err)
			return err
		}

		for _, slot := range slotsByInterval(&created) {
			_, err := tx.ExecContext(ctx, insertSlot,
				slot.CourtID, slot.IntervalID, slot.Weekday,
				slot.StartTime, slot.EndTime, slot.PriceCents, slot.Status)
			if err != nil {
				logger.Error("ScheduleRepository:ReplaceSchedule:InsertSlot", "error", err)
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("ScheduleRepository:ReplaceSchedule:Commit", "error", err)
		return err
	}

	return nil
}

func (r *ScheduleRepository) GetIntervalsByCourtID(ctx context.Context, courtID uuid.UUID) ([]entity.OperatingInterval, error) {
	query := `SELECT ` + intervalColumns + ` FROM operating_intervals WHERE court_id = $1 ORDER BY weekday, start_time`

	var intervals []entity.OperatingInterval
	err := r.DB.SelectContext(ctx, &intervals, query, courtID)
	if err != nil {
		logger.Error("ScheduleRepository:GetIntervalsByCourtID", "error", err)
		return nil, err
	}

	return intervals, nil
}

func (r *ScheduleRepository) GetSlotsByCourtID(ctx context.Context, courtID uuid.UUID) ([]entity.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE court_id = $1 ORDER BY weekday, start_time`

	var slots []entity.TimeSlot
	err := r.DB.SelectContext(ctx, &slots, query, courtID)
	if err != nil {
		logger.Error("ScheduleRepository:GetSlotsByCourtID", "error", err)
		return nil, err
	}

	return slots, nil
}

func (r *ScheduleRepository) GetSlotsByCourtAndWeekday(ctx context.Context, courtID uuid.UUID, weekday time.Weekday) ([]entity.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE court_id = $1 AND weekday = $2 ORDER BY start_time`

	var slots []entity.TimeSlot
	err := r.DB.SelectContext(ctx, &slots, query, courtID, weekday)
	if err != nil {
		logger.Error("ScheduleRepository:GetSlotsByCourtAndWeekday", "error", err)
		return nil, err
	}

	return slots, nil
}

func (r *ScheduleRepository) GetSlotsByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.TimeSlot, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = ANY($1) ORDER BY start_time`

	var slots []entity.TimeSlot
	err := r.DB.SelectContext(ctx, &slots, query, uuidArray(ids))
	if err != nil {
		logger.Error("ScheduleRepository:GetSlotsByIDs", "error", err)
		return nil, err
	}

	return slots, nil
}

func (r *ScheduleRepository) FindSlotByWeekdayAndTimes(ctx context.Context, courtID uuid.UUID, weekday time.Weekday, start, end entity.TimeOfDay) (*entity.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE court_id = $1 AND weekday = $2 AND start_time = $3 AND end_time = $4
	`

	var slot entity.TimeSlot
	err := r.DB.GetContext(ctx, &slot, query, courtID, weekday, start, end)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ScheduleRepository:FindSlotByWeekdayAndTimes", "error", err)
		return nil, err
	}

	return &slot, nil
}
