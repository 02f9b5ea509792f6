// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Sku               string         `json:"sku" gorm:"uniqueIndex;size:100;not null"`
	Name              string         `json:"name" gorm:"size:255;not null"`
	Description       string         `json:"description" gorm:"type:text;not null"`
	Category          string         `json:"category" gorm:"size:100;index;not null"`
	Price             float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Variety           string         `json:"variety" gorm:"size:100"`
	ImageURL          string         `json:"imageUrl" gorm:"size:512"`
	StockLevel        int            `json:"stockLevel" gorm:"default:0;not null"`
	Barcode           string         `json:"barcode" gorm:"uniqueIndex;size:100;not null"`
	Ingredients       pq.StringArray `json:"ingredients" gorm:"type:text[]"`
	NutritionalValues StringMap      `json:"nutritionalValues" gorm:"type:jsonb"`
}
