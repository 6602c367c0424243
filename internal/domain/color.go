package domain

import (
	"time"

	"github.com/google/uuid"
)

// Color's value is a hex token ("#fff" at minimum), enforced by the usecase.
type Color struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID   uuid.UUID `gorm:"type:uuid;index" json:"storeId"`
	Name      string    `gorm:"size:140" json:"name"`
	Value     string    `gorm:"size:60" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
