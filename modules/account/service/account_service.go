package service

import (
	"context"

	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/core/middleware"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountService handles registration, login and profile management for
// both actor kinds.
type AccountService struct {
	repo repository.AccountRepositoryInterface
	mw   *middleware.Middleware
}

type AccountServiceInterface interface {
	RegisterOperator(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, *errors.AppError)
	RegisterAthlete(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError)
	GetProfile(ctx context.Context, actorID uuid.UUID, role entity.Role) (*dto.ProfileResponse, *errors.AppError)
	UpdateCancellationPolicy(ctx context.Context, operatorID uuid.UUID, req *dto.UpdateCancellationPolicyRequest) (*dto.ProfileResponse, *errors.AppError)
}

func NewAccountService(repo repository.AccountRepositoryInterface, mw *middleware.Middleware) AccountServiceInterface {
	return &AccountService{repo: repo, mw: mw}
}

func (s *AccountService) RegisterOperator(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, *errors.AppError) {
	logger.Info("AccountService:RegisterOperator:Start", "email", req.Email)

	existing, err := s.repo.GetOperatorByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check operator email", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Email already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), constants.BcryptCost)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	op := &entity.Operator{
		Name:         req.Name,
		Contact:      entity.Contact{Email: req.Email, Phone: req.Phone},
		PasswordHash: string(hash),
	}
	if req.Address != "" {
		op.Address = &req.Address
	}

	created, err := s.repo.CreateOperator(ctx, op)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create operator", err)
	}

	return s.tokenFor(created.ID, entity.RoleOperator, dto.ToOperatorProfile(created))
}

func (s *AccountService) RegisterAthlete(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, *errors.AppError) {
	logger.Info("AccountService:RegisterAthlete:Start", "email", req.Email)

	existing, err := s.repo.GetAthleteByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check athlete email", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Email already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), constants.BcryptCost)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	ath := &entity.Athlete{
		Name:         req.Name,
		Contact:      entity.Contact{Email: req.Email, Phone: req.Phone},
		PasswordHash: string(hash),
	}

	created, err := s.repo.CreateAthlete(ctx, ath)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create athlete", err)
	}

	return s.tokenFor(created.ID, entity.RoleAthlete, dto.ToAthleteProfile(created))
}

func (s *AccountService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, *errors.AppError) {
	switch entity.Role(req.Role) {
	case entity.RoleOperator:
		op, err := s.repo.GetOperatorByEmail(ctx, req.Email)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up operator", err)
		}
		if op == nil || bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)) != nil {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid credentials", nil)
		}
		return s.tokenFor(op.ID, entity.RoleOperator, dto.ToOperatorProfile(op))

	case entity.RoleAthlete:
		ath, err := s.repo.GetAthleteByEmail(ctx, req.Email)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to look up athlete", err)
		}
		if ath == nil || bcrypt.CompareHashAndPassword([]byte(ath.PasswordHash), []byte(req.Password)) != nil {
			return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid credentials", nil)
		}
		return s.tokenFor(ath.ID, entity.RoleAthlete, dto.ToAthleteProfile(ath))

	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown role", nil)
	}
}

func (s *AccountService) GetProfile(ctx context.Context, actorID uuid.UUID, role entity.Role) (*dto.ProfileResponse, *errors.AppError) {
	switch role {
	case entity.RoleOperator:
		op, err := s.repo.GetOperatorByID(ctx, actorID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load operator", err)
		}
		if op == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "Operator not found", nil)
		}
		return dto.ToOperatorProfile(op), nil

	case entity.RoleAthlete:
		ath, err := s.repo.GetAthleteByID(ctx, actorID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load athlete", err)
		}
		if ath == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "Athlete not found", nil)
		}
		return dto.ToAthleteProfile(ath), nil

	default:
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Unknown role", nil)
	}
}

func (s *AccountService) UpdateCancellationPolicy(ctx context.Context, operatorID uuid.UUID, req *dto.UpdateCancellationPolicyRequest) (*dto.ProfileResponse, *errors.AppError) {
	if req.LeadHours < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Lead hours must not be negative", nil)
	}

	if err := s.repo.UpdateOperatorLeadHours(ctx, operatorID, req.LeadHours); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update cancellation policy", err)
	}

	return s.GetProfile(ctx, operatorID, entity.RoleOperator)
}

func (s *AccountService) tokenFor(actorID uuid.UUID, role entity.Role, profile *dto.ProfileResponse) (*dto.TokenResponse, *errors.AppError) {
	token, err := s.mw.IssueToken(actorID, string(role))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to issue token", err)
	}
	return &dto.TokenResponse{AccessToken: token, Profile: *profile}, nil
}
