// internal/models/memory.go
package models

import (
	"github.com/google/uuid"
)

// Memory is a public tribute post on the memory wall. Lights counts the
// "virtual candles" lit by visitors.
type Memory struct {
	BaseModel
	UserID   uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	PetName  string    `json:"petName" gorm:"size:100;not null"`
	ImageURL string    `json:"imageUrl" gorm:"size:512;not null"`
	Tribute  string    `json:"tribute" gorm:"type:text;not null"`
	Lights   int       `json:"lights" gorm:"default:0;not null"`
}
