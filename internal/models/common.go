// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// StringMap holds free-form key/value pairs (e.g. "Protein" -> "30%"),
// persisted as a JSON document.
type StringMap map[string]string

func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type %T for StringMap", value)
	}
}

// Enums
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPacked     OrderStatus = "packed"
)

// Rank returns the position of the status in the fulfillment lifecycle.
// Unknown statuses rank below pending.
func (s OrderStatus) Rank() int {
	switch s {
	case OrderStatusPending:
		return 1
	case OrderStatusProcessing:
		return 2
	case OrderStatusPacked:
		return 3
	}
	return 0
}

type MoodType string

const (
	MoodHappy   MoodType = "Happy"
	MoodPlayful MoodType = "Playful"
	MoodSleepy  MoodType = "Sleepy"
	MoodAnxious MoodType = "Anxious"
	MoodHungry  MoodType = "Hungry"
)

var ValidMoods = []MoodType{MoodHappy, MoodPlayful, MoodSleepy, MoodAnxious, MoodHungry}

// Badge names awarded to users.
const BadgeKindnessKeeper = "Kindness Keeper"

// Loyalty points granted per successful order.
const LoyaltyPointsPerOrder = 10
