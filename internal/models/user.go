// internal/models/user.go
package models

import (
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name          string         `json:"name" gorm:"size:100;not null"`
	Email         string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string         `json:"-" gorm:"size:255;not null"`
	IsAdmin       bool           `json:"isAdmin" gorm:"default:false"`
	LoyaltyPoints int            `json:"loyaltyPoints" gorm:"default:0"`
	Badges        pq.StringArray `json:"badges" gorm:"type:text[]"`

	// Relationships
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Pets   []Pet   `json:"pets,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// HasBadge reports whether the badge has already been awarded.
func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b == name {
			return true
		}
	}
	return false
}
