package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order moves Unpaid -> Paid exactly once, via the fulfillment usecase.
// Address and phone come from the payment provider's session payload.
type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID   uuid.UUID   `gorm:"type:uuid;index" json:"storeId"`
	IsPaid    bool        `gorm:"default:false;index" json:"isPaid"`
	Address   string      `gorm:"size:255" json:"address"`
	Phone     string      `gorm:"size:50" json:"phone"`
	Items     []OrderItem `json:"orderItems"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"orderId"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// ProductIDs returns the distinct products referenced by the order's items.
func (o *Order) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
