package repository

import (
	"context"
	"database/sql"

	"github.com/EngStrategy/arenahub-backend-sub000/core/database"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"

	"github.com/google/uuid"
)

// AccountRepository handles operator and athlete database operations
type AccountRepository struct {
	DB database.IDatabase
}

func NewAccountRepository(db database.IDatabase) *AccountRepository {
	return &AccountRepository{DB: db}
}

// AccountRepositoryInterface defines the repository contract
type AccountRepositoryInterface interface {
	CreateOperator(ctx context.Context, op *entity.Operator) (*entity.Operator, error)
	CreateAthlete(ctx context.Context, ath *entity.Athlete) (*entity.Athlete, error)
	GetOperatorByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error)
	GetAthleteByID(ctx context.Context, id uuid.UUID) (*entity.Athlete, error)
	GetOperatorByEmail(ctx context.Context, email string) (*entity.Operator, error)
	GetAthleteByEmail(ctx context.Context, email string) (*entity.Athlete, error)
	UpdateOperatorLeadHours(ctx context.Context, id uuid.UUID, leadHours int) error
}

const operatorColumns = `id, name, email, phone, password_hash, address, cancellation_lead_hours, created_at, updated_at`
const athleteColumns = `id, name, email, phone, password_hash, created_at, updated_at`

func (r *AccountRepository) CreateOperator(ctx context.Context, op *entity.Operator) (*entity.Operator, error) {
	query := `
		INSERT INTO operators (name, email, phone, password_hash, address, cancellation_lead_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + operatorColumns

	var created entity.Operator
	err := r.DB.GetContext(ctx, &created, query,
		op.Name, op.Email, op.Phone, op.PasswordHash, op.Address, op.CancellationLeadHours)
	if err != nil {
		logger.Error("AccountRepository:CreateOperator", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *AccountRepository) CreateAthlete(ctx context.Context, ath *entity.Athlete) (*entity.Athlete, error) {
	query := `
		INSERT INTO athletes (name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + athleteColumns

	var created entity.Athlete
	err := r.DB.GetContext(ctx, &created, query, ath.Name, ath.Email, ath.Phone, ath.PasswordHash)
	if err != nil {
		logger.Error("AccountRepository:CreateAthlete", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *AccountRepository) GetOperatorByID(ctx context.Context, id uuid.UUID) (*entity.Operator, error) {
	var op entity.Operator
	err := r.DB.GetContext(ctx, &op, `SELECT `+operatorColumns+` FROM operators WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AccountRepository:GetOperatorByID", "error", err)
		return nil, err
	}
	return &op, nil
}

func (r *AccountRepository) GetAthleteByID(ctx context.Context, id uuid.UUID) (*entity.Athlete, error) {
	var ath entity.Athlete
	err := r.DB.GetContext(ctx, &ath, `SELECT `+athleteColumns+` FROM athletes WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AccountRepository:GetAthleteByID", "error", err)
		return nil, err
	}
	return &ath, nil
}

func (r *AccountRepository) GetOperatorByEmail(ctx context.Context, email string) (*entity.Operator, error) {
	var op entity.Operator
	err := r.DB.GetContext(ctx, &op, `SELECT `+operatorColumns+` FROM operators WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AccountRepository:GetOperatorByEmail", "error", err)
		return nil, err
	}
	return &op, nil
}

func (r *AccountRepository) GetAthleteByEmail(ctx context.Context, email string) (*entity.Athlete, error) {
	var ath entity.Athlete
	err := r.DB.GetContext(ctx, &ath, `SELECT `+athleteColumns+` FROM athletes WHERE email = $1`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AccountRepository:GetAthleteByEmail", "error", err)
		return nil, err
	}
	return &ath, nil
}

func (r *AccountRepository) UpdateOperatorLeadHours(ctx context.Context, id uuid.UUID, leadHours int) error {
	query := `UPDATE operators SET cancellation_lead_hours = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, leadHours)
	if err != nil {
		logger.Error("AccountRepository:UpdateOperatorLeadHours", "error", err)
		return err
	}
	return nil
}
