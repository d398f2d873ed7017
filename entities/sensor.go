package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sensor belongs to a device. MinValue/MaxValue, when set, bound the
// readings the sensor accepts.
type Sensor struct {
	ID                string   `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name              string   `gorm:"not null;type:varchar(100)" json:"name"`
	UnitOfMeasurement string   `gorm:"type:varchar(20)" json:"unit_of_measurement"`
	MinValue          *float64 `json:"min_value,omitempty"`
	MaxValue          *float64 `json:"max_value,omitempty"`
	DeviceID          string   `gorm:"index;not null;type:varchar(36)" json:"device_id"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

func (s *Sensor) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	s.CreatedAt = now
	s.UpdatedAt = now
	return
}
