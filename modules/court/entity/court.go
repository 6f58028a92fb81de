package entity

import (
	coreEntity "github.com/EngStrategy/arenahub-backend-sub000/core/entity"

	"github.com/google/uuid"
)

// SportType identifies the sport a court is laid out for.
type SportType string

const (
	SportBeachTennis     SportType = "beach_tennis"
	SportFootvolley      SportType = "footvolley"
	SportVolleyball      SportType = "volleyball"
	SportSocietyFootball SportType = "society_football"
	SportTennis          SportType = "tennis"
)

// Court is a bookable physical resource owned by one operator. Its weekly
// opening hours live in operating_intervals; the bookable units derived from
// them live in time_slots.
type Court struct {
	OperatorID          uuid.UUID `db:"operator_id" json:"operator_id"`
	Name                string    `db:"name" json:"name"`
	Slug                string    `db:"slug" json:"slug"`
	Sport               SportType `db:"sport" json:"sport"`
	Description         *string   `db:"description" json:"description,omitempty"`
	PhotoURL            *string   `db:"photo_url" json:"photo_url,omitempty"`
	SlotDurationMinutes int       `db:"slot_duration_minutes" json:"slot_duration_minutes"`
	Active              bool      `db:"active" json:"active"`
	coreEntity.BaseEntity
}
