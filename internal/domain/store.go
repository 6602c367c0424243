package domain

import (
	"time"

	"github.com/google/uuid"
)

// Store is the tenant root. Every catalog entity and order hangs off one
// store, and every mutation is gated on the acting user owning it.
type Store struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;index" json:"userId"`
	Name      string    `gorm:"size:140" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
