package entity

import (
	coreEntity "github.com/EngStrategy/arenahub-backend-sub000/core/entity"

	"github.com/google/uuid"
)

// Role tags the two actor kinds of the platform.
type Role string

const (
	RoleOperator Role = "OPERATOR"
	RoleAthlete  Role = "ATHLETE"
)

type Contact struct {
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
}

// Actor is the capability shared by operators and athletes. The two kinds
// are separate types and separate tables, not subclasses of a common user
// entity; code that only needs an identity and a contact accepts an Actor.
type Actor interface {
	ActorID() uuid.UUID
	ActorRole() Role
	ContactInfo() Contact
}

// Operator runs one arena and offers its courts for booking.
type Operator struct {
	Name         string `db:"name" json:"name"`
	Contact      `json:"contact"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Address      *string `db:"address" json:"address,omitempty"`
	// CancellationLeadHours is the minimum notice, in hours, this operator
	// requires for cancellations. Nil means the platform default applies.
	CancellationLeadHours *int `db:"cancellation_lead_hours" json:"cancellation_lead_hours,omitempty"`
	coreEntity.BaseEntity
}

func (o *Operator) ActorID() uuid.UUID   { return o.ID }
func (o *Operator) ActorRole() Role      { return RoleOperator }
func (o *Operator) ContactInfo() Contact { return o.Contact }

// Athlete reserves courts.
type Athlete struct {
	Name         string `db:"name" json:"name"`
	Contact      `json:"contact"`
	PasswordHash string `db:"password_hash" json:"-"`
	coreEntity.BaseEntity
}

func (a *Athlete) ActorID() uuid.UUID   { return a.ID }
func (a *Athlete) ActorRole() Role      { return RoleAthlete }
func (a *Athlete) ContactInfo() Contact { return a.Contact }
