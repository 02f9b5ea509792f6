// internal/models/pet.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Pet struct {
	BaseModel
	UserID          uuid.UUID  `json:"userId" gorm:"type:uuid;not null;index"`
	Name            string     `json:"name" gorm:"size:100;not null"`
	AvatarURL       string     `json:"avatarUrl" gorm:"size:512"`
	Birthday        *time.Time `json:"birthday,omitempty"`
	FavoriteTreats  string     `json:"favoriteTreats" gorm:"size:255"`
	AvatarBaseColor string     `json:"avatarBaseColor" gorm:"size:20;default:'#8d5524'"`
	AvatarAccessory string     `json:"avatarAccessory" gorm:"size:100;default:'None'"`
}

type PetMood struct {
	BaseModel
	PetID  uuid.UUID `json:"petId" gorm:"type:uuid;not null;index"`
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Mood   MoodType  `json:"mood" gorm:"type:varchar(20);not null"`
}
