package repository

import (
	"context"
	"database/sql"

	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"

	"github.com/google/uuid"
)

// CourtRepository handles court database operations
type CourtRepository struct {
	DB database.IDatabase
}

func NewCourtRepository(db database.IDatabase) *CourtRepository {
	return &CourtRepository{DB: db}
}

// CourtRepositoryInterface defines the repository contract
type CourtRepositoryInterface interface {
	Create(ctx context.Context, court *entity.Court) (*entity.Court, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Court, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Court, error)
	GetByOperatorID(ctx context.Context, operatorID uuid.UUID) ([]entity.Court, error)
	Update(ctx context.Context, court *entity.Court) error
	SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error
}

const courtColumns = `id, operator_id, name, slug, sport, description, photo_url,
       slot_duration_minutes, active, created_at, updated_at`

func (r *CourtRepository) Create(ctx context.Context, court *entity.Court) (*entity.Court, error) {
	query := `
		INSERT INTO courts (operator_id, name, slug, sport, description, slot_duration_minutes, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + courtColumns

	var created entity.Court
	err := r.DB.GetContext(ctx, &created, query,
		court.OperatorID, court.Name, court.Slug, court.Sport,
		court.Description, court.SlotDurationMinutes, court.Active)
	if err != nil {
		logger.Error("CourtRepository:Create", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *CourtRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE id = $1`

	var court entity.Court
	err := r.DB.GetContext(ctx, &court, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CourtRepository:GetByID", "error", err)
		return nil, err
	}

	return &court, nil
}

func (r *CourtRepository) GetBySlug(ctx context.Context, slug string) (*entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE slug = $1`

	var court entity.Court
	err := r.DB.GetContext(ctx, &court, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CourtRepository:GetBySlug", "error", err)
		return nil, err
	}

	return &court, nil
}

func (r *CourtRepository) GetByOperatorID(ctx context.Context, operatorID uuid.UUID) ([]entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE operator_id = $1 ORDER BY created_at`

	var courts []entity.Court
	err := r.DB.SelectContext(ctx, &courts, query, operatorID)
	if err != nil {
		logger.Error("CourtRepository:GetByOperatorID", "error", err)
		return nil, err
	}

	return courts, nil
}

func (r *CourtRepository) Update(ctx context.Context, court *entity.Court) error {
	query := `
		UPDATE courts
		SET name = $2, slug = $3, sport = $4, description = $5,
		    slot_duration_minutes = $6, active = $7, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		court.ID, court.Name, court.Slug, court.Sport, court.Description,
		court.SlotDurationMinutes, court.Active)
	if err != nil {
		logger.Error("CourtRepository:Update", "error", err)
		return err
	}

	return nil
}

func (r *CourtRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	query := `UPDATE courts SET photo_url = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, url)
	if err != nil {
		logger.Error("CourtRepository:SetPhotoURL", "error", err)
		return err
	}
	return nil
}
