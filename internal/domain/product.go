package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID    uuid.UUID       `gorm:"type:uuid;index" json:"storeId"`
	CategoryID uuid.UUID       `gorm:"type:uuid;index" json:"categoryId"`
	SizeID     uuid.UUID       `gorm:"type:uuid;index" json:"sizeId"`
	ColorID    uuid.UUID       `gorm:"type:uuid;index" json:"colorId"`
	Name       string          `gorm:"size:180" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	IsFeatured bool            `gorm:"default:false;index" json:"isFeatured"`
	IsArchived bool            `gorm:"default:false;index" json:"isArchived"`
	Images     []Image         `json:"images"`
	Category   *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Size       *Size           `gorm:"foreignKey:SizeID" json:"size,omitempty"`
	Color      *Color          `gorm:"foreignKey:ColorID" json:"color,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Image set is replaced wholesale on product update, never patched.
type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"productId"`
	URL       string    `gorm:"size:255" json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductFilter carries the optional equality predicates of the public
// product listing. FeaturedOnly is presence-based: the query parameter being
// there at all means "featured only", whatever its literal value.
type ProductFilter struct {
	CategoryID   *uuid.UUID
	ColorID      *uuid.UUID
	SizeID       *uuid.UUID
	FeaturedOnly bool
}
