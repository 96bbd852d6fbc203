package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase is embedded by records keyed on a random UUID. Users are keyed
// by their MC- uid instead and do not embed it.
type UUIDBase struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewID() string {
	return uuid.NewString()
}

func (b *UUIDBase) EnsureID() {
	if b.ID == "" {
		b.ID = NewID()
	}
}

// Touch marks a save at now. CreatedAt is only set on the first one.
func (b *UUIDBase) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// BeforeCreate covers inserts that skipped EnsureID.
func (b *UUIDBase) BeforeCreate(*gorm.DB) error {
	b.EnsureID()
	return nil
}
