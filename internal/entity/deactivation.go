package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deactivation is the single current-state record per user. A user is
// currently deactivated iff a row exists with ReactivatedAt null; a new
// deactivation overwrites the row and resets the reactivated fields.
type Deactivation struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	DeactivatedReason string    `gorm:"type:text;not null"`
	DeactivatedAt     time.Time `gorm:"not null"`
	DeactivatedBy     uuid.UUID `gorm:"type:uuid;not null"`

	ReactivatedReason *string `gorm:"type:text"`
	ReactivatedAt     *time.Time
	ReactivatedBy     *uuid.UUID `gorm:"type:uuid"`
}

func (Deactivation) TableName() string {
	return "deactivated_users"
}

func (d *Deactivation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
