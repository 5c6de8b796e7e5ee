package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TransitionKind string

const (
	TransitionDeactivated TransitionKind = "deactivated"
	TransitionReactivated TransitionKind = "reactivated"
)

// DeactivationEvent is one entry in a user's transition log.
type DeactivationEvent struct {
	Kind    TransitionKind `json:"kind"`
	Reason  string         `json:"reason"`
	At      time.Time      `json:"at"`
	ActorID uuid.UUID      `json:"actor_id"`
}

// DeactivationHistory is the append-only audit log, one row per user.
// Events grow monotonically and are never reordered or truncated.
type DeactivationHistory struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	Events datatypes.JSONSlice[DeactivationEvent] `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DeactivationHistory) TableName() string {
	return "user_deactivation_history"
}

func (h *DeactivationHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
