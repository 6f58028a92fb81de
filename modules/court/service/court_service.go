package service

import (
	"context"
	"io"

	"github.com/EngStrategy/arenahub-backend-sub000/core/constants"
	"github.com/EngStrategy/arenahub-backend-sub000/core/errors"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"
	"github.com/EngStrategy/arenahub-backend-sub000/core/storage"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/dto"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/entity"
	"github.com/EngStrategy/arenahub-backend-sub000/modules/court/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// CourtService handles court catalog business logic.
type CourtService struct {
	repo     repository.CourtRepositoryInterface
	uploader *storage.Uploader
}

type CourtServiceInterface interface {
	CreateCourt(ctx context.Context, operatorID uuid.UUID, req *dto.CreateCourtRequest) (*dto.CourtResponse, *errors.AppError)
	GetCourt(ctx context.Context, id uuid.UUID) (*dto.CourtResponse, *errors.AppError)
	GetCourtBySlug(ctx context.Context, courtSlug string) (*dto.CourtResponse, *errors.AppError)
	ListMyCourts(ctx context.Context, operatorID uuid.UUID) ([]dto.CourtResponse, *errors.AppError)
	UpdateCourt(ctx context.Context, operatorID, courtID uuid.UUID, req *dto.UpdateCourtRequest) (*dto.CourtResponse, *errors.AppError)
	UploadPhoto(ctx context.Context, operatorID, courtID uuid.UUID, filename, contentType string, body io.Reader) (*dto.CourtResponse, *errors.AppError)
}

func NewCourtService(repo repository.CourtRepositoryInterface, uploader *storage.Uploader) CourtServiceInterface {
	return &CourtService{repo: repo, uploader: uploader}
}

func (s *CourtService) CreateCourt(ctx context.Context, operatorID uuid.UUID, req *dto.CreateCourtRequest) (*dto.CourtResponse, *errors.AppError) {
	logger.Info("CourtService:CreateCourt:Start", "operator_id", operatorID, "name", req.Name)

	duration := req.SlotDurationMinutes
	if duration <= 0 {
		duration = constants.DefaultSlotDurationMinutes
	}

	court := &entity.Court{
		OperatorID:          operatorID,
		Name:                req.Name,
		Slug:                slug.Make(req.Name) + "-" + uuid.NewString()[:8],
		Sport:               entity.SportType(req.Sport),
		SlotDurationMinutes: duration,
		Active:              true,
	}
	if req.Description != "" {
		court.Description = &req.Description
	}

	created, err := s.repo.Create(ctx, court)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create court", err)
	}

	return dto.ToCourtResponse(created), nil
}

func (s *CourtService) GetCourt(ctx context.Context, id uuid.UUID) (*dto.CourtResponse, *errors.AppError) {
	court, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get court", err)
	}
	if court == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Court not found", nil)
	}
	return dto.ToCourtResponse(court), nil
}

func (s *CourtService) GetCourtBySlug(ctx context.Context, courtSlug string) (*dto.CourtResponse, *errors.AppError) {
	court, err := s.repo.GetBySlug(ctx, courtSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get court", err)
	}
	if court == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Court not found", nil)
	}
	return dto.ToCourtResponse(court), nil
}

func (s *CourtService) ListMyCourts(ctx context.Context, operatorID uuid.UUID) ([]dto.CourtResponse, *errors.AppError) {
	courts, err := s.repo.GetByOperatorID(ctx, operatorID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list courts", err)
	}

	result := make([]dto.CourtResponse, 0, len(courts))
	for i := range courts {
		result = append(result, *dto.ToCourtResponse(&courts[i]))
	}
	return result, nil
}

func (s *CourtService) UpdateCourt(ctx context.Context, operatorID, courtID uuid.UUID, req *dto.UpdateCourtRequest) (*dto.CourtResponse, *errors.AppError) {
	court, appErr := s.ownedCourt(ctx, operatorID, courtID)
	if appErr != nil {
		return nil, appErr
	}

	if req.Name != "" && req.Name != court.Name {
		court.Name = req.Name
		court.Slug = slug.Make(req.Name) + "-" + uuid.NewString()[:8]
	}
	if req.Sport != "" {
		court.Sport = entity.SportType(req.Sport)
	}
	if req.Description != "" {
		court.Description = &req.Description
	}
	if req.SlotDurationMinutes > 0 {
		court.SlotDurationMinutes = req.SlotDurationMinutes
	}
	if req.Active != nil {
		court.Active = *req.Active
	}

	if err := s.repo.Update(ctx, court); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update court", err)
	}

	return dto.ToCourtResponse(court), nil
}

func (s *CourtService) UploadPhoto(ctx context.Context, operatorID, courtID uuid.UUID, filename, contentType string, body io.Reader) (*dto.CourtResponse, *errors.AppError) {
	court, appErr := s.ownedCourt(ctx, operatorID, courtID)
	if appErr != nil {
		return nil, appErr
	}

	url, err := s.uploader.Upload(ctx, "courts/"+courtID.String(), filename, contentType, body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to upload photo", err)
	}

	if err := s.repo.SetPhotoURL(ctx, courtID, url); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save photo URL", err)
	}

	court.PhotoURL = &url
	return dto.ToCourtResponse(court), nil
}

func (s *CourtService) ownedCourt(ctx context.Context, operatorID, courtID uuid.UUID) (*entity.Court, *errors.AppError) {
	court, err := s.repo.GetByID(ctx, courtID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get court", err)
	}
	if court == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Court not found", nil)
	}
	if court.OperatorID != operatorID {
		return nil, errors.NewAppError(errors.ErrAccessDenied, "Court belongs to another operator", nil)
	}
	return court, nil
}
