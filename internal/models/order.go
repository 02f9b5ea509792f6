// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order belongs to a user and carries a fixed list of item snapshots.
// After creation only the Scanned and ValidationID fields of existing
// items ever change.
type Order struct {
	BaseModel
	UserID     uuid.UUID   `json:"userId" gorm:"type:uuid;not null;index"`
	Items      []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID"`
	TotalPrice float64     `json:"totalPrice" gorm:"type:decimal(10,2);not null;default:0"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';not null;index"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// OrderItem snapshots a cart line at order time; later product edits do
// not change it. Position preserves cart order so barcode scans claim
// the first unscanned matching line.
type OrderItem struct {
	BaseModel
	OrderID      uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	Position     int       `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Price        float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	ProductID    uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Scanned      bool      `json:"scanned" gorm:"default:false;not null"`
	ValidationID string    `json:"validationId,omitempty" gorm:"size:64"`
	CustomNote   string    `json:"customNote,omitempty" gorm:"type:text"`
}

// AllScanned reports whether every item in the order has been scanned.
func (o *Order) AllScanned() bool {
	for i := range o.Items {
		if !o.Items[i].Scanned {
			return false
		}
	}
	return len(o.Items) > 0
}
