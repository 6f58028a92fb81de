package dto

import (
	"time"

	"github.com/EngStrategy/arenahub-backend-sub000/modules/account/entity"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=8"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type UpdateCancellationPolicyRequest struct {
	LeadHours int `json:"lead_hours" validate:"min=0"`
}

type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	Profile     ProfileResponse `json:"profile"`
}

type ProfileResponse struct {
	ID                    uuid.UUID `json:"id"`
	Role                  string    `json:"role"`
	Name                  string    `json:"name"`
	Email                 string    `json:"email"`
	Phone                 string    `json:"phone"`
	Address               *string   `json:"address,omitempty"`
	CancellationLeadHours *int      `json:"cancellation_lead_hours,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

func ToOperatorProfile(op *entity.Operator) *ProfileResponse {
	return &ProfileResponse{
		ID:                    op.ID,
		Role:                  string(entity.RoleOperator),
		Name:                  op.Name,
		Email:                 op.Email,
		Phone:                 op.Phone,
		Address:               op.Address,
		CancellationLeadHours: op.CancellationLeadHours,
		CreatedAt:             op.CreatedAt,
	}
}

func ToAthleteProfile(ath *entity.Athlete) *ProfileResponse {
	return &ProfileResponse{
		ID:        ath.ID,
		Role:      string(entity.RoleAthlete),
		Name:      ath.Name,
		Email:     ath.Email,
		Phone:     ath.Phone,
		CreatedAt: ath.CreatedAt,
	}
}
