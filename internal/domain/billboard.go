package domain

import (
	"time"

	"github.com/google/uuid"
)

type Billboard struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID   uuid.UUID `gorm:"type:uuid;index" json:"storeId"`
	Label     string    `gorm:"size:180" json:"label"`
	ImageURL  string    `gorm:"size:255" json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
