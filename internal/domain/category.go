package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products and points at the billboard shown on its page.
// Deleting the billboard does not cascade here; the operator removes
// dependents first.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID     uuid.UUID  `gorm:"type:uuid;index" json:"storeId"`
	BillboardID uuid.UUID  `gorm:"type:uuid;index" json:"billboardId"`
	Name        string     `gorm:"size:140" json:"name"`
	Billboard   *Billboard `gorm:"foreignKey:BillboardID" json:"billboard,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
